package extractor

import "errors"

// ErrUnknownGrammar is returned when a grammar override names no known grammar.
var ErrUnknownGrammar = errors.New("unknown grammar")
