package hexstruct

// Result holds the values produced by one successful parse. Field order
// is the declaration order of the named directives; anonymous padding
// directives do not appear. Results are created fresh per parse and are
// not retained by the package.
type Result struct {
	names  []string
	values map[string]any
}

func newResult(capacity int) *Result {
	return &Result{
		names:  make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

func (r *Result) set(name string, value any) {
	r.names = append(r.names, name)
	r.values[name] = value
}

// Len returns the number of named fields.
func (r *Result) Len() int {
	return len(r.names)
}

// Names returns the field names in declaration order. The returned
// slice is a copy.
func (r *Result) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Get returns the value for the named field.
func (r *Result) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Bytes returns the raw captured window for a field parsed without a
// conversion function. It returns false if the field is absent or its
// value is not []byte.
func (r *Result) Bytes(name string) ([]byte, bool) {
	v, ok := r.values[name]
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Map returns the fields as a map. The returned map is a copy; field
// order is only available through Names.
func (r *Result) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
