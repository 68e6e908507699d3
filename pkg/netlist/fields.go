package netlist

// Field is a single named string value.
type Field struct {
	Name  string
	Value string
}

// Fields is an ordered name -> value mapping. The zero value is an empty,
// usable set. Lookups of missing names return "".
type Fields struct {
	list  []Field
	index map[string]int
}

// NewFields builds a Fields set from name/value pairs in order.
func NewFields(fields ...Field) Fields {
	var f Fields
	for _, fld := range fields {
		f.Set(fld.Name, fld.Value)
	}
	return f
}

// Set stores value under name. A name keeps the position of its first Set.
func (f *Fields) Set(name, value string) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if i, ok := f.index[name]; ok {
		f.list[i].Value = value
		return
	}
	f.index[name] = len(f.list)
	f.list = append(f.list, Field{Name: name, Value: value})
}

// Get returns the value stored under name, or "" if there is none.
func (f Fields) Get(name string) string {
	if i, ok := f.index[name]; ok {
		return f.list[i].Value
	}
	return ""
}

// Has reports whether name is present, even with an empty value.
func (f Fields) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Names returns field names in insertion order.
func (f Fields) Names() []string {
	names := make([]string, len(f.list))
	for i, fld := range f.list {
		names[i] = fld.Name
	}
	return names
}

// All returns a copy of the fields in insertion order.
func (f Fields) All() []Field {
	out := make([]Field, len(f.list))
	copy(out, f.list)
	return out
}

// Len returns the number of fields.
func (f Fields) Len() int {
	return len(f.list)
}
