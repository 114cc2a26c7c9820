// Package introspect describes arbitrary Go values as CLI components.
//
// A component is any value reachable from the root of a command surface. Its
// Kind decides how it is completed:
//
//	Callable     - a function or method; its arguments become flags
//	ClassLike    - a reflect.Type; its struct fields are constructor flags and its methods are members
//	Sequence     - a slice or array; members are its indices
//	Mapping      - a map or ordered map; members are its keys
//	LazySequence - a channel or iterator; never enumerated
//	Object       - a struct value; members are its exported fields and methods
//	Scalar       - anything else
//
// Values which know their own shape implement Introspectable and bypass reflection.
package introspect

import "errors"

// Kind is the closed set of component shapes.
type Kind int

const (
	Scalar Kind = iota
	Object
	Callable
	ClassLike
	Sequence
	Mapping
	LazySequence
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Callable:
		return "callable"
	case ClassLike:
		return "class"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	case LazySequence:
		return "lazy-sequence"
	case Scalar:
		fallthrough
	default:
		return "scalar"
	}
}

// MemberKind is what the class-attribute classifier reports for a member of a class.
type MemberKind int

const (
	PlainAttribute MemberKind = iota
	Method
	Property
)

// String returns the string representation of a MemberKind
func (k MemberKind) String() string {
	switch k {
	case Method:
		return "method"
	case Property:
		return "property"
	default:
		return "plain-attribute"
	}
}

// Member is a named value belonging to a component
type Member struct {
	Name  string
	Value any
}

// ClassAttr is the classifier record for one attribute of a class.
// RecordField marks accessors generated for record types; those are hidden on the class.
type ClassAttr struct {
	Kind        MemberKind
	Object      any
	RecordField bool
}

// ArgSpec holds the declared argument names of a callable
type ArgSpec struct {
	Args       []string
	KwOnlyArgs []string
}

// All returns positional followed by keyword-only names.
func (a ArgSpec) All() []string {
	all := make([]string, 0, len(a.Args)+len(a.KwOnlyArgs))
	all = append(all, a.Args...)
	return append(all, a.KwOnlyArgs...)
}

// Introspectable is implemented by values which describe their own members.
type Introspectable interface {
	ComponentKind() Kind
	ListMembers() []Member
}

// ArgSpecProvider is implemented by callables which know their argument names.
type ArgSpecProvider interface {
	ArgSpec() (ArgSpec, error)
}

// ClassAttrsProvider is implemented by class-like values which classify their own members.
type ClassAttrsProvider interface {
	ClassAttrs() map[string]ClassAttr
}

// ArgNamer lets a receiver name the parameters of its methods. method is the Go method name.
// A nil result means the names are unknown and struct parameters are used instead.
type ArgNamer interface {
	ArgNames(method string) []string
}

var (
	ErrNotCallable     = errors.New("component is not callable")
	ErrArgSpecMismatch = errors.New("declared argument names do not match parameters")
)
