package introspect

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

// FieldName returns the member name of a struct field: the name given by a goopt struct tag
// (`goopt:"name:..."` or the legacy `long:"..."`) when there is one, otherwise the snake_case
// form of the Go identifier.
func FieldName(f reflect.StructField) string {
	if name := tagName(f.Tag); name != "" {
		return name
	}

	return strcase.ToSnake(f.Name)
}

// tagName reads the name key of a goopt tag. Tags are ';' separated key:value pairs.
func tagName(tag reflect.StructTag) string {
	if value, ok := tag.Lookup("goopt"); ok {
		for _, part := range strings.Split(value, ";") {
			key, name, found := strings.Cut(part, ":")
			if found && strings.TrimSpace(key) == "name" {
				return strings.TrimSpace(name)
			}
		}
		return ""
	}

	return strings.TrimSpace(tag.Get("long"))
}

// MethodName returns the member name of a Go method
func MethodName(name string) string {
	return strcase.ToSnake(name)
}
