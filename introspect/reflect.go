package introspect

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map"
)

// hook methods are part of the introspection contract, not of the command surface
var hookMethods = map[string]bool{
	"ArgNames":      true,
	"ArgSpec":       true,
	"ClassAttrs":    true,
	"ComponentKind": true,
	"ListMembers":   true,
}

// KindOf classifies v.
func KindOf(v any) Kind {
	switch c := v.(type) {
	case nil:
		return Scalar
	case Introspectable:
		return c.ComponentKind()
	case reflect.Type:
		return ClassLike
	case *orderedmap.OrderedMap:
		return Mapping
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		if isIterator(rv.Type()) {
			return LazySequence
		}
		return Callable
	case reflect.Chan:
		return LazySequence
	case reflect.Slice, reflect.Array:
		return Sequence
	case reflect.Map:
		return Mapping
	case reflect.Struct:
		return Object
	case reflect.Pointer:
		if rv.IsNil() {
			return Scalar
		}
		if rv.Elem().Kind() == reflect.Struct {
			return Object
		}
		if rv.Elem().CanInterface() {
			return KindOf(rv.Elem().Interface())
		}
	}

	return Scalar
}

// IsClass reports whether v is class-like
func IsClass(v any) bool {
	return KindOf(v) == ClassLike
}

// IsRoutine reports whether v is a function or method
func IsRoutine(v any) bool {
	return KindOf(v) == Callable
}

// Members lists the members of v in a stable order. Maps are listed by sorted key,
// ordered maps in insertion order, structs by field declaration order followed by methods.
func Members(v any) []Member {
	switch c := v.(type) {
	case nil:
		return nil
	case Introspectable:
		return c.ListMembers()
	case reflect.Type:
		return typeMembers(c)
	case *orderedmap.OrderedMap:
		members := make([]Member, 0, c.Len())
		for pair := c.Oldest(); pair != nil; pair = pair.Next() {
			members = append(members, Member{Name: fmt.Sprint(pair.Key), Value: pair.Value})
		}
		return members
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		members := make([]Member, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			members = append(members, Member{Name: strconv.Itoa(i), Value: interfaceOf(rv.Index(i))})
		}
		return members
	case reflect.Map:
		return mapMembers(rv)
	case reflect.Func, reflect.Chan:
		return nil
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			return structMembers(rv)
		}
		return methodMembers(rv)
	case reflect.Struct:
		// copy into an addressable value so pointer-receiver methods are listed too
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		return structMembers(ptr)
	default:
		return methodMembers(rv)
	}
}

func mapMembers(rv reflect.Value) []Member {
	keys := rv.MapKeys()
	members := make([]Member, 0, len(keys))
	for _, k := range keys {
		members = append(members, Member{Name: fmt.Sprint(interfaceOf(k)), Value: interfaceOf(rv.MapIndex(k))})
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})

	return members
}

// structMembers expects a non-nil pointer to a struct
func structMembers(ptr reflect.Value) []Member {
	elem := ptr.Elem()
	st := elem.Type()
	members := make([]Member, 0, st.NumField()+ptr.NumMethod())
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := elem.Field(i)
		if !fv.CanInterface() {
			continue
		}
		members = append(members, Member{Name: FieldName(field), Value: fv.Interface()})
	}

	return append(members, methodMembers(ptr)...)
}

func methodMembers(rv reflect.Value) []Member {
	if !rv.IsValid() {
		return nil
	}
	namer, _ := interfaceOf(rv).(ArgNamer)
	rt := rv.Type()
	var members []Member
	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		if hookMethods[m.Name] {
			continue
		}
		members = append(members, Member{
			Name: MethodName(m.Name),
			Value: &method{
				name:  m.Name,
				sig:   rv.Method(i).Type(),
				namer: namer,
			},
		})
	}

	return members
}

// typeMembers lists the methods of a class. Pointer-receiver methods of struct types are included.
func typeMembers(t reflect.Type) []Member {
	owner := t
	skip := 1
	switch t.Kind() {
	case reflect.Interface:
		skip = 0
	case reflect.Pointer:
	default:
		owner = reflect.PointerTo(t)
	}

	var namer ArgNamer
	if owner.Kind() == reflect.Pointer {
		namer, _ = reflect.New(owner.Elem()).Interface().(ArgNamer)
	}

	var members []Member
	for i := 0; i < owner.NumMethod(); i++ {
		m := owner.Method(i)
		if hookMethods[m.Name] {
			continue
		}
		members = append(members, Member{
			Name: MethodName(m.Name),
			Value: &method{
				name:  m.Name,
				sig:   m.Type,
				skip:  skip,
				namer: namer,
			},
		})
	}

	return members
}

func interfaceOf(rv reflect.Value) any {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}

// isIterator matches the iter.Seq and iter.Seq2 function shapes
func isIterator(t reflect.Type) bool {
	if t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumOut() != 1 || yield.Out(0).Kind() != reflect.Bool {
		return false
	}

	return yield.NumIn() == 1 || yield.NumIn() == 2
}
