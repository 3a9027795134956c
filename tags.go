package smartgraph

import (
	"fmt"
	"reflect"
	"strings"
)

// entityMetadata holds the parsed `sg` tag information for a specific struct type.
// It is computed once per Repository to avoid reflection on every lookup.
type entityMetadata struct {
	// Label is the graph node label, defaulting to the struct's name.
	Label string
	// PKField is the name of the struct field marked as the primary key.
	PKField string
	// PKProp is the property name of the primary key in the database.
	PKProp string
	// Mappings maps struct field names to their corresponding database property names.
	Mappings map[string]string
	// Fields lists the mapped struct fields in declaration order.
	Fields []string
}

// propertyOf returns the database property mapped to field, if any.
func (m *entityMetadata) propertyOf(field string) (string, bool) {
	p, ok := m.Mappings[field]
	return p, ok
}

// parseTagsFromType inspects a reflect.Type and extracts the node mapping from
// its `sg` struct tags. A tag is a comma-separated list of components:
//
//	pk             marks the primary key field (exactly one is required)
//	property:NAME  names the node property (required)
//	label:NAME     overrides the node label (any tagged field may carry it)
func parseTagsFromType(typ reflect.Type) (*entityMetadata, error) {
	// If the type is a pointer, get the underlying element's type.
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type %s is not a struct", typ.Name())
	}

	meta := &entityMetadata{
		Label:    typ.Name(),
		Mappings: make(map[string]string),
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("sg")

		// Skip fields that are not part of the mapping.
		if tag == "" || tag == "-" {
			continue
		}

		isPk := false
		propName := ""

		for _, part := range strings.Split(tag, ",") {
			part = strings.TrimSpace(part)
			switch {
			case part == "pk":
				isPk = true
			case strings.HasPrefix(part, "property:"):
				propName = strings.TrimPrefix(part, "property:")
			case strings.HasPrefix(part, "label:"):
				meta.Label = strings.TrimPrefix(part, "label:")
			case part == "":
			default:
				return nil, fmt.Errorf("field %s has unknown tag component %q", field.Name, part)
			}
		}

		if propName == "" {
			return nil, fmt.Errorf("field %s is missing 'property' tag component", field.Name)
		}
		if isPk {
			if meta.PKField != "" {
				return nil, fmt.Errorf("struct %s defines more than one primary key", typ.Name())
			}
			meta.PKField = field.Name
			meta.PKProp = propName
		}
		meta.Mappings[field.Name] = propName
		meta.Fields = append(meta.Fields, field.Name)
	}

	if meta.PKField == "" {
		return nil, fmt.Errorf("no primary key ('pk') tag defined for struct %s", typ.Name())
	}
	if meta.Label == "" {
		return nil, fmt.Errorf("struct %s has an empty label", typ.Name())
	}

	return meta, nil
}

// parseTags gets metadata from a compile-time type T instead of a runtime
// reflect.Type, for the generic Repository.
func parseTags[T any]() (*entityMetadata, error) {
	var instance T
	return parseTagsFromType(reflect.TypeOf(instance))
}
