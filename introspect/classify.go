package introspect

import "reflect"

// ClassAttrs classifies the attributes of a class. It returns nil when v is not class-like.
// Methods taking no arguments and returning a single value are properties.
func ClassAttrs(v any) map[string]ClassAttr {
	switch c := v.(type) {
	case ClassAttrsProvider:
		return c.ClassAttrs()
	case reflect.Type:
		return typeAttrs(c)
	}

	return nil
}

func typeAttrs(t reflect.Type) map[string]ClassAttr {
	attrs := map[string]ClassAttr{}
	if st := derefType(t); st.Kind() == reflect.Struct {
		for i := 0; i < st.NumField(); i++ {
			f := st.Field(i)
			if !f.IsExported() {
				continue
			}
			attrs[FieldName(f)] = ClassAttr{Kind: PlainAttribute, Object: f}
		}
	}

	owner, skip := t, 1
	switch t.Kind() {
	case reflect.Interface:
		skip = 0
	case reflect.Pointer:
	default:
		owner = reflect.PointerTo(t)
	}
	for i := 0; i < owner.NumMethod(); i++ {
		m := owner.Method(i)
		kind := Method
		if m.Type.NumIn() == skip && m.Type.NumOut() == 1 {
			kind = Property
		}
		attrs[MethodName(m.Name)] = ClassAttr{Kind: kind, Object: m}
	}

	return attrs
}
