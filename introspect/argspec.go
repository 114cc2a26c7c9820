package introspect

import (
	"context"
	"fmt"
	"reflect"
)

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()

// Func pairs a function with the parameter names Go reflection cannot recover.
type Func struct {
	Fn     any
	Args   []string
	KwOnly []string
}

func (f Func) ComponentKind() Kind {
	return Callable
}

func (f Func) ListMembers() []Member {
	return nil
}

// ArgSpec returns the declared names. When Fn is set, the number of names must match
// its parameters (context.Context parameters excluded).
func (f Func) ArgSpec() (ArgSpec, error) {
	spec := ArgSpec{Args: f.Args, KwOnlyArgs: f.KwOnly}
	if f.Fn == nil {
		return spec, nil
	}
	t := reflect.TypeOf(f.Fn)
	if t.Kind() != reflect.Func {
		return ArgSpec{}, fmt.Errorf("%w: %T", ErrNotCallable, f.Fn)
	}
	if want := paramCount(t, 0); !t.IsVariadic() && want != len(spec.All()) {
		return ArgSpec{}, fmt.Errorf("%w: %d names for %d parameters", ErrArgSpecMismatch, len(spec.All()), want)
	}

	return spec, nil
}

// method is a member produced from a Go method. skip is 1 for method expressions,
// whose first parameter is the receiver.
type method struct {
	name  string
	sig   reflect.Type
	skip  int
	namer ArgNamer
}

func (m *method) ComponentKind() Kind {
	return Callable
}

func (m *method) ListMembers() []Member {
	return nil
}

func (m *method) ArgSpec() (ArgSpec, error) {
	if m.namer != nil {
		if names := m.namer.ArgNames(m.name); names != nil {
			if want := paramCount(m.sig, m.skip); !m.sig.IsVariadic() && want != len(names) {
				return ArgSpec{}, fmt.Errorf("%w: method %s declares %d names for %d parameters",
					ErrArgSpecMismatch, m.name, len(names), want)
			}
			return ArgSpec{Args: names}, nil
		}
	}

	return paramSpec(m.sig, m.skip), nil
}

// FullArgSpec resolves the argument names of a callable or class.
func FullArgSpec(v any) (ArgSpec, error) {
	switch c := v.(type) {
	case ArgSpecProvider:
		return c.ArgSpec()
	case reflect.Type:
		return classSpec(c), nil
	}

	if v != nil {
		if t := reflect.TypeOf(v); t.Kind() == reflect.Func {
			return paramSpec(t, 0), nil
		}
	}

	return ArgSpec{}, fmt.Errorf("%w: %T", ErrNotCallable, v)
}

// classSpec treats the exported fields of a struct type as its constructor arguments
func classSpec(t reflect.Type) ArgSpec {
	st := derefType(t)
	if st.Kind() != reflect.Struct {
		return ArgSpec{}
	}

	var spec ArgSpec
	for i := 0; i < st.NumField(); i++ {
		if f := st.Field(i); f.IsExported() {
			spec.Args = append(spec.Args, FieldName(f))
		}
	}

	return spec
}

// paramSpec derives keyword-only names from struct parameters. Other parameters have no
// recoverable names and contribute nothing.
func paramSpec(t reflect.Type, skip int) ArgSpec {
	var spec ArgSpec
	for i := skip; i < t.NumIn(); i++ {
		p := t.In(i)
		if p.Implements(contextType) {
			continue
		}
		st := derefType(p)
		if st.Kind() != reflect.Struct {
			continue
		}
		for j := 0; j < st.NumField(); j++ {
			if f := st.Field(j); f.IsExported() {
				spec.KwOnlyArgs = append(spec.KwOnlyArgs, FieldName(f))
			}
		}
	}

	return spec
}

func paramCount(t reflect.Type, skip int) int {
	n := 0
	for i := skip; i < t.NumIn(); i++ {
		if !t.In(i).Implements(contextType) {
			n++
		}
	}

	return n
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
