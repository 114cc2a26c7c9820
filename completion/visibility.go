package completion

import (
	"context"
	"log"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/napalu/firecomplete/introspect"
)

// DefaultDenylist holds bookkeeping types which never make sense as commands.
// Interface types match any value implementing them.
var DefaultDenylist = []reflect.Type{
	reflect.TypeOf(sync.Mutex{}),
	reflect.TypeOf(&sync.Mutex{}),
	reflect.TypeOf(sync.RWMutex{}),
	reflect.TypeOf(&sync.RWMutex{}),
	reflect.TypeOf(sync.Once{}),
	reflect.TypeOf(&sync.Once{}),
	reflect.TypeOf(sync.WaitGroup{}),
	reflect.TypeOf(&sync.WaitGroup{}),
	reflect.TypeOf(&log.Logger{}),
	reflect.TypeOf(&slog.Logger{}),
	reflect.TypeOf((*context.Context)(nil)).Elem(),
}

// Filter decides which members of a component are completable
type Filter struct {
	Denylist []reflect.Type
}

// NewFilter returns a filter hiding DefaultDenylist plus extra
func NewFilter(extra ...reflect.Type) *Filter {
	deny := make([]reflect.Type, 0, len(DefaultDenylist)+len(extra))
	deny = append(deny, DefaultDenylist...)
	return &Filter{Denylist: append(deny, extra...)}
}

var defaultFilter = NewFilter()

// MemberVisible reports whether a member should be offered as a completion, using DefaultDenylist.
//
// Names starting with "__" are always hidden. With verbose everything else is shown. Otherwise
// denylisted values, methods and properties of uninstantiated classes and names starting
// with "_" are hidden. classAttrs is only consulted when component is class-like; pass nil to have
// it computed, or an empty map to keep methods visible.
func MemberVisible(component any, name string, member any, classAttrs map[string]introspect.ClassAttr, verbose bool) bool {
	return defaultFilter.Visible(component, name, member, classAttrs, verbose)
}

// VisibleMembers lists the visible members of component using DefaultDenylist
func VisibleMembers(component any, classAttrs map[string]introspect.ClassAttr, verbose bool) []introspect.Member {
	return defaultFilter.VisibleMembers(component, classAttrs, verbose)
}

// Visible applies the visibility rules with the filter's denylist
func (f *Filter) Visible(component any, name string, member any, classAttrs map[string]introspect.ClassAttr, verbose bool) bool {
	if strings.HasPrefix(name, "__") {
		return false
	}
	if verbose {
		return true
	}
	if f.denied(member) {
		return false
	}
	if introspect.IsClass(component) {
		if classAttrs == nil {
			classAttrs = introspect.ClassAttrs(component)
		}
		if attr, ok := classAttrs[name]; ok {
			// methods and properties only exist on instances
			if attr.Kind == introspect.Method || attr.Kind == introspect.Property {
				return false
			}
			if attr.RecordField {
				return false
			}
		}
	}

	return !strings.HasPrefix(name, "_")
}

// VisibleMembers lists the members of component which pass Visible. The classifier runs at most once.
func (f *Filter) VisibleMembers(component any, classAttrs map[string]introspect.ClassAttr, verbose bool) []introspect.Member {
	members := introspect.Members(component)
	if classAttrs == nil {
		classAttrs = introspect.ClassAttrs(component)
		if classAttrs == nil {
			classAttrs = map[string]introspect.ClassAttr{}
		}
	}

	visible := make([]introspect.Member, 0, len(members))
	for _, m := range members {
		if f.Visible(component, m.Name, m.Value, classAttrs, verbose) {
			visible = append(visible, m)
		}
	}

	return visible
}

func (f *Filter) denied(member any) bool {
	if member == nil || f == nil {
		return false
	}
	t := reflect.TypeOf(member)
	for _, deny := range f.Denylist {
		if t == deny {
			return true
		}
		if deny.Kind() == reflect.Interface && t.Implements(deny) {
			return true
		}
	}

	return false
}
