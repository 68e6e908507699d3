package bom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrUnknownKey is returned for grouping keys that are not recognised.
var ErrUnknownKey = errors.New("unknown grouping key")

// keyLexer tokenizes grouping expressions such as
//
//	value, footprint, dnp, field("Vendor")
//	value + footprint + field:MPN
var keyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"|'[^']*'`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
	{Name: "Punct", Pattern: `[(),:+]`},
})

// keyList is the grammar root: one or more terms separated by ',' or '+'
type keyList struct {
	Terms []*keyTerm `parser:"@@ ( ( \",\" | \"+\" ) @@ )*"`
}

// keyTerm is a built-in key name or a field reference
type keyTerm struct {
	Field *string `parser:"\"field\" ( \"(\" @( String | Ident ) \")\" | \":\" @( String | Ident ) )"`
	Name  string  `parser:"| @Ident"`
}

var keyParser = participle.MustBuild[keyList](
	participle.Lexer(keyLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// ParseKeys parses a grouping expression into keys. Built-in key names
// are case-insensitive; field names are kept verbatim. An empty
// expression yields the default keys (value, footprint).
func ParseKeys(expr string) ([]Key, error) {
	if strings.TrimSpace(expr) == "" {
		return DefaultPredicate().Covers, nil
	}

	list, err := keyParser.ParseString("", expr)
	if err != nil {
		return nil, fmt.Errorf("invalid grouping expression %q: %w", expr, err)
	}

	keys := make([]Key, 0, len(list.Terms))
	for _, term := range list.Terms {
		var k Key
		if term.Field != nil {
			k = FieldKey(*term.Field)
		} else {
			k = Key(strings.ToLower(term.Name))
		}
		if !k.Valid() {
			return nil, fmt.Errorf("%w %q in %q", ErrUnknownKey, string(k), expr)
		}
		keys = append(keys, k)
	}
	return dedupeKeys(keys), nil
}

// ParsePredicate parses a grouping expression into a key predicate.
func ParsePredicate(expr string) (Predicate, error) {
	keys, err := ParseKeys(expr)
	if err != nil {
		return Predicate{}, err
	}
	return KeyPredicate(keys...), nil
}
