package rpc

// Value wraps a decoded XML-RPC result. The remote API is polymorphic and
// returns scalars, structs, or arrays of structs depending on the method;
// the projection helpers below let the operation layer pick the shape it
// expects without reparsing. Projections on a mismatched shape yield the
// zero value.
type Value struct {
	raw any
}

// NewValue is used by fakes in tests. Production values come out of Call.
func NewValue(raw any) Value {
	return Value{raw: raw}
}

func (v Value) Raw() any {
	return v.raw
}

func (v Value) String() string {
	s, _ := v.raw.(string)
	return s
}

// Int returns the scalar integer result. The wire decoder produces int64
// for both <int> and the <i8> extension.
func (v Value) Int() int64 {
	switch i := v.raw.(type) {
	case int64:
		return i
	case int32:
		return int64(i)
	case int:
		return int64(i)
	default:
		return 0
	}
}

func (v Value) Bool() bool {
	b, _ := v.raw.(bool)
	return b
}

// Map returns the result as a single record.
func (v Value) Map() map[string]any {
	m, _ := v.raw.(map[string]any)
	return m
}

// Records returns the result as a list of records, the shape every
// list* method of the API responds with.
func (v Value) Records() []map[string]any {
	list, ok := v.raw.([]any)
	if !ok {
		return nil
	}

	records := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil
		}
		records = append(records, record)
	}
	return records
}
