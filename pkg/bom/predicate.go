// Package bom partitions netlist components into bill-of-materials groups
// under an explicit equivalence predicate and collates one row per group.
package bom

import (
	"strings"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// Key names one component attribute that can take part in equivalence.
type Key string

// Built-in keys. Field keys are built with FieldKey.
const (
	KeyValue       Key = "value"
	KeyFootprint   Key = "footprint"
	KeyLibPart     Key = "libpart"
	KeyDatasheet   Key = "datasheet"
	KeyDescription Key = "description"
	KeyDNP         Key = "dnp"
	KeyRefPrefix   Key = "ref_prefix"
)

const fieldKeyPrefix = "field:"

var builtinKeys = []Key{KeyValue, KeyFootprint, KeyLibPart, KeyDatasheet, KeyDescription, KeyDNP, KeyRefPrefix}

// FieldKey returns the key comparing the named user field.
func FieldKey(name string) Key {
	return Key(fieldKeyPrefix + name)
}

// FieldName returns the field name of a field key.
func (k Key) FieldName() (string, bool) {
	if strings.HasPrefix(string(k), fieldKeyPrefix) {
		return strings.TrimPrefix(string(k), fieldKeyPrefix), true
	}
	return "", false
}

// Valid reports whether k is a built-in key or a non-empty field key.
func (k Key) Valid() bool {
	if name, ok := k.FieldName(); ok {
		return name != ""
	}
	for _, b := range builtinKeys {
		if k == b {
			return true
		}
	}
	return false
}

// Of returns the attribute value of c named by k. Missing fields are "".
func (k Key) Of(c *netlist.Component) string {
	switch k {
	case KeyValue:
		return c.Value
	case KeyFootprint:
		return c.Footprint
	case KeyLibPart:
		return c.LibPartName()
	case KeyDatasheet:
		return c.Datasheet
	case KeyDescription:
		return c.Field(netlist.FieldDescription)
	case KeyDNP:
		return c.DNPString()
	case KeyRefPrefix:
		return c.RefPrefix()
	}
	if name, ok := k.FieldName(); ok {
		return c.Field(name)
	}
	return ""
}

// Predicate is an equivalence relation over components. Equal must be
// reflexive, symmetric and transitive; GroupComponents cannot detect violations.
// Covers lists the keys Equal guarantees to be identical within a group.
type Predicate struct {
	Name   string
	Equal  func(a, b *netlist.Component) bool
	Covers []Key
}

// Covered reports whether the predicate guarantees k is uniform per group.
func (p Predicate) Covered(k Key) bool {
	for _, c := range p.Covers {
		if c == k {
			return true
		}
	}
	return false
}

// KeyPredicate returns the predicate "all keys compare equal".
func KeyPredicate(keys ...Key) Predicate {
	ks := dedupeKeys(keys)
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = string(k)
	}
	return Predicate{
		Name: strings.Join(names, "+"),
		Equal: func(a, b *netlist.Component) bool {
			for _, k := range ks {
				if k.Of(a) != k.Of(b) {
					return false
				}
			}
			return true
		},
		Covers: ks,
	}
}

// DefaultPredicate groups components with the same value and footprint.
func DefaultPredicate() Predicate {
	return KeyPredicate(KeyValue, KeyFootprint)
}

// WithExtraFields extends p so that the named fields must also match.
func WithExtraFields(p Predicate, names ...string) Predicate {
	if len(names) == 0 {
		return p
	}
	var extra []Key
	for _, name := range names {
		if name != "" && !p.Covered(FieldKey(name)) {
			extra = append(extra, FieldKey(name))
		}
	}
	extra = dedupeKeys(extra)
	if len(extra) == 0 {
		return p
	}

	base := p.Equal
	fields := KeyPredicate(extra...)
	return Predicate{
		Name: p.Name + "+" + fields.Name,
		Equal: func(a, b *netlist.Component) bool {
			return base(a, b) && fields.Equal(a, b)
		},
		Covers: append(append([]Key(nil), p.Covers...), extra...),
	}
}

func dedupeKeys(keys []Key) []Key {
	seen := make(map[Key]struct{}, len(keys))
	out := make([]Key, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
