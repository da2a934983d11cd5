package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mvp-joe/symextract/internal/scan"
)

// writePretty prints each file followed by one indented line per symbol and
// a blank separator line.
func writePretty(w io.Writer, files []scan.FileSymbols) error {
	for _, f := range files {
		if _, err := fmt.Fprintln(w, f.Filename); err != nil {
			return err
		}
		for _, s := range f.Symbols {
			if _, err := fmt.Fprintf(w, "  %s %s (lines %d-%d)\n", s.Kind.Label(), s.Name, s.StartLine, s.EndLine); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// writeJSON prints files as a JSON array.
func writeJSON(w io.Writer, files []scan.FileSymbols) error {
	if files == nil {
		files = []scan.FileSymbols{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(files)
}

// writeFileErrors reports per-file failures as warnings.
func writeFileErrors(w io.Writer, errs []scan.FileError) {
	for _, e := range errs {
		fmt.Fprintf(w, "Warning: %s: %s\n", e.Filename, e.Error)
	}
}
