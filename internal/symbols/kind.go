package symbols

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownKind indicates text that does not name a symbol kind.
var ErrUnknownKind = errors.New("unknown symbol kind")

// Kind classifies a symbol. The set is closed.
type Kind int

const (
	KindFunction Kind = iota + 1
	KindClass
	KindStruct
	KindVariable
	KindMethod
	KindEnum
	KindTrait
	KindInterface
	KindType
)

var kindNames = map[Kind]string{
	KindFunction:  "function",
	KindClass:     "class",
	KindStruct:    "struct",
	KindVariable:  "variable",
	KindMethod:    "method",
	KindEnum:      "enum",
	KindTrait:     "trait",
	KindInterface: "interface",
	KindType:      "type",
}

var nameToKind map[string]Kind

func init() {
	nameToKind = make(map[string]Kind, len(kindNames))
	for k, v := range kindNames {
		nameToKind[v] = k
	}
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	return []Kind{
		KindFunction, KindClass, KindStruct, KindVariable, KindMethod,
		KindEnum, KindTrait, KindInterface, KindType,
	}
}

// String returns the textual form used by filters and serialized output.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Label returns the bracketed upper-case tag used in human-readable listings, e.g. "[FUNCTION]".
func (k Kind) Label() string {
	return "[" + strings.ToUpper(k.String()) + "]"
}

// Valid reports whether k is one of the closed set of kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind converts the textual form back into a Kind.
func ParseKind(s string) (Kind, error) {
	if k, ok := nameToKind[s]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// KindSet is the optional kind filter. A nil set means no filtering.
type KindSet map[Kind]struct{}

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	set := make(KindSet, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}

// ParseKindSet parses a comma-separated list such as "function,class".
// An empty string yields a nil set.
func ParseKindSet(s string) (KindSet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	set := KindSet{}
	for _, part := range strings.Split(s, ",") {
		k, err := ParseKind(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		set[k] = struct{}{}
	}
	return set, nil
}

// Contains reports whether k is in the set.
func (s KindSet) Contains(k Kind) bool {
	_, ok := s[k]
	return ok
}

// String renders the set as sorted, comma-separated text.
func (s KindSet) String() string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k.String())
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
