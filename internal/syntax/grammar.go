package syntax

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Grammar names.
const (
	GrammarC          = "c"
	GrammarCpp        = "cpp"
	GrammarPython     = "python"
	GrammarJavaScript = "javascript"
	GrammarTypeScript = "typescript"
	GrammarGo         = "go"
	GrammarRust       = "rust"
)

// Grammar is a tree-sitter language together with its name.
type Grammar struct {
	Name     string
	Language *sitter.Language
}

// Languages are immutable once built and may be shared across parsers.
var (
	cLang          = sitter.NewLanguage(tree_sitter_c.Language())
	cppLang        = sitter.NewLanguage(tree_sitter_cpp.Language())
	pythonLang     = sitter.NewLanguage(tree_sitter_python.Language())
	javascriptLang = sitter.NewLanguage(tree_sitter_javascript.Language())
	typescriptLang = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	goLang         = sitter.NewLanguage(tree_sitter_go.Language())
	rustLang       = sitter.NewLanguage(tree_sitter_rust.Language())
)

// grammars maps a file extension, dot included and case preserved, to its grammar.
var grammars = map[string]Grammar{
	".cpp": {Name: GrammarCpp, Language: cppLang},
	".cc":  {Name: GrammarCpp, Language: cppLang},
	".cxx": {Name: GrammarCpp, Language: cppLang},
	".h":   {Name: GrammarCpp, Language: cppLang},
	".hpp": {Name: GrammarCpp, Language: cppLang},
	".c":   {Name: GrammarC, Language: cLang},
	".py":  {Name: GrammarPython, Language: pythonLang},
	".js":  {Name: GrammarJavaScript, Language: javascriptLang},
	".ts":  {Name: GrammarTypeScript, Language: typescriptLang},
	".go":  {Name: GrammarGo, Language: goLang},
	".rs":  {Name: GrammarRust, Language: rustLang},
}

// GrammarFor returns the grammar registered for ext (e.g. ".py").
// Extensions are matched exactly; ".PY" is not ".py".
func GrammarFor(ext string) (Grammar, bool) {
	g, ok := grammars[ext]
	return g, ok
}

// Extensions lists every extension with a registered grammar.
func Extensions() []string {
	exts := make([]string, 0, len(grammars))
	for ext := range grammars {
		exts = append(exts, ext)
	}
	return exts
}

// GrammarByName returns the grammar with the given name (e.g. "python").
func GrammarByName(name string) (Grammar, bool) {
	for _, g := range grammars {
		if g.Name == name {
			return g, true
		}
	}
	return Grammar{}, false
}
