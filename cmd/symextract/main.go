package main

import "github.com/mvp-joe/symextract/internal/cli"

func main() {
	cli.Execute()
}
