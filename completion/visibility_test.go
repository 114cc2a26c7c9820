package completion

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"testing"

	"github.com/napalu/firecomplete/introspect"
	"github.com/stretchr/testify/assert"
)

type server struct {
	Name   string
	Mu     *sync.Mutex
	Log    *slog.Logger
	Ctx    context.Context
	Secret *secretStore
}

type secretStore struct {
	Key string
}

func (s *server) Serve() {}

func TestVisibleMembers(t *testing.T) {
	srv := &server{Mu: &sync.Mutex{}, Log: slog.Default(), Ctx: context.Background(), Secret: &secretStore{}}

	names := func(members []introspect.Member) []string {
		out := make([]string, 0, len(members))
		for _, m := range members {
			out = append(out, m.Name)
		}
		return out
	}

	t.Run("denylisted types hidden", func(t *testing.T) {
		assert.Equal(t, []string{"name", "secret", "serve"}, names(VisibleMembers(srv, nil, false)))
	})

	t.Run("verbose shows everything", func(t *testing.T) {
		assert.Equal(t, []string{"name", "mu", "log", "ctx", "secret", "serve"}, names(VisibleMembers(srv, nil, true)))
	})

	t.Run("extra denylist", func(t *testing.T) {
		f := NewFilter(reflect.TypeOf(&secretStore{}))
		assert.Equal(t, []string{"name", "serve"}, names(f.VisibleMembers(srv, nil, false)))
		assert.Len(t, DefaultDenylist, 11)
	})

	t.Run("class methods hidden unless attrs are given", func(t *testing.T) {
		class := reflect.TypeOf(server{})
		assert.Empty(t, VisibleMembers(class, nil, false))
		assert.Equal(t, []string{"serve"}, names(VisibleMembers(class, map[string]introspect.ClassAttr{}, false)))
	})
}

func TestMemberVisible(t *testing.T) {
	class := reflect.TypeOf(server{})
	recordAttrs := map[string]introspect.ClassAttr{
		"id": {Kind: introspect.PlainAttribute, RecordField: true},
	}

	tests := []struct {
		name       string
		component  any
		member     string
		value      any
		classAttrs map[string]introspect.ClassAttr
		verbose    bool
		want       bool
	}{
		{"plain name", map[string]int{}, "run", 1, nil, false, true},
		{"private name", map[string]int{}, "_run", 1, nil, false, false},
		{"private name verbose", map[string]int{}, "_run", 1, nil, true, true},
		{"dunder hidden", map[string]int{}, "__init__", 1, nil, false, false},
		{"dunder hidden verbose", map[string]int{}, "__init__", 1, nil, true, false},
		{"denylisted value", map[string]int{}, "lock", &sync.RWMutex{}, nil, false, false},
		{"denylisted value verbose", map[string]int{}, "lock", &sync.RWMutex{}, nil, true, true},
		{"nil value", map[string]int{}, "empty", nil, nil, false, true},
		{"class method", class, "serve", nil, nil, false, false},
		{"class method unrestricted", class, "serve", nil, map[string]introspect.ClassAttr{}, false, true},
		{"class method verbose", class, "serve", nil, nil, true, true},
		{"record field", class, "id", nil, recordAttrs, false, false},
		{"class attrs ignored on objects", &server{}, "id", nil, recordAttrs, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MemberVisible(tt.component, tt.member, tt.value, tt.classAttrs, tt.verbose))
		})
	}
}
