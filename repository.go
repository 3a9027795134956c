package smartgraph

import (
	"context"
	"fmt"
	"reflect"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/saulfrancisco-ruizacevedo/gocypher"

	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
)

// ErrNotFound is returned by Find operations when no node matches the criteria.
var ErrNotFound = errs.ErrNotFound

// Repository provides read-only lookups of nodes mapped onto a struct type T.
// It relies on `sg` struct tags to map struct fields to node properties.
type Repository[T any] struct {
	runner DBRunner
	meta   *entityMetadata
}

// NewRepository creates a new read-only repository for the type T.
// It parses the struct tags of T to understand its mapping to a Neo4j node.
//
// Parameters:
//   - runner: An instance of DBRunner, used to execute all Cypher queries.
//
// Returns:
//
//	A new Repository instance or an error if the struct tags are invalid.
func NewRepository[T any](runner DBRunner) (*Repository[T], error) {
	meta, err := parseTags[T]()
	if err != nil {
		return nil, err
	}
	return &Repository[T]{
		runner: runner,
		meta:   meta,
	}, nil
}

// Label returns the node label T is mapped to.
func (r *Repository[T]) Label() string {
	return r.meta.Label
}

// FindByID retrieves a single entity by its primary key.
//
// Parameters:
//   - ctx: The context for the query execution.
//   - id: The primary key value of the entity to find.
//
// Returns:
//
//	A pointer to the found entity, ErrNotFound if no node matches, or another
//	error if the query or mapping fails. More than one match is an
//	IntegrityError, since a primary key lookup must be unique.
func (r *Repository[T]) FindByID(ctx context.Context, id any) (*T, error) {
	found, err := r.find(ctx, r.meta.PKProp, id)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	if len(found) > 1 {
		return nil, errs.Integrity("Repository", "FindByID", nil,
			"expected 1 %s with %s=%v but found %d", r.meta.Label, r.meta.PKProp, id, len(found))
	}
	return found[0], nil
}

// FindByProperty retrieves every entity whose mapped field equals value.
//
// Parameters:
//   - ctx: The context for the query execution.
//   - field: The struct field name (not the property name) to match on.
//   - value: The value the property must equal.
//
// Returns:
//
//	The matching entities in result order; an empty slice when none match.
func (r *Repository[T]) FindByProperty(ctx context.Context, field string, value any) ([]*T, error) {
	prop, ok := r.meta.propertyOf(field)
	if !ok {
		return nil, fmt.Errorf("field %s is not mapped on %s", field, r.meta.Label)
	}
	return r.find(ctx, prop, value)
}

// FindOne returns the first entity whose mapped field equals value, or
// ErrNotFound.
func (r *Repository[T]) FindOne(ctx context.Context, field string, value any) (*T, error) {
	found, err := r.FindByProperty(ctx, field, value)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return found[0], nil
}

func (r *Repository[T]) find(ctx context.Context, prop string, value any) ([]*T, error) {
	// 1. Build the query using gocypher.
	props := map[string]any{prop: value}
	query, params, err := gocypher.NewQueryBuilder().
		Match(gocypher.N("n", r.meta.Label).WithProperties(props)).
		Return("n").
		Build()
	if err != nil {
		return nil, fmt.Errorf("build %s lookup: %w", r.meta.Label, err)
	}

	// 2. Execute the query using the runner.
	eagerResult, err := r.runner.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}

	// 3. Map every returned node.
	entities := make([]*T, 0, len(eagerResult.Records))
	for _, record := range eagerResult.Records {
		nodeValue, ok := record.Get("n")
		if !ok {
			return nil, fmt.Errorf("could not find return value 'n' in query result")
		}
		node, ok := nodeValue.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("return value 'n' is not a node")
		}

		entity := new(T)
		if err := mapNodeToStruct(node, entity, r.meta); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// mapNodeToStruct populates a struct's fields from a neo4j.Node's properties,
// based on the parsed metadata. Properties absent from the node leave the
// field at its zero value; values are converted to the field type when the
// stored type differs (int64 to int, []any to []string).
func mapNodeToStruct(node neo4j.Node, entity any, meta *entityMetadata) error {
	val := reflect.ValueOf(entity).Elem()

	for fieldName, propName := range meta.Mappings {
		field := val.FieldByName(fieldName)
		if !field.IsValid() || !field.CanSet() {
			continue
		}

		propValue, ok := node.Props[propName]
		if !ok || propValue == nil {
			continue
		}

		converted, err := convertValue(propValue, field.Type())
		if err != nil {
			return fmt.Errorf("property %s of %s node %s: %w", propName, meta.Label, node.ElementId, err)
		}
		field.Set(converted)
	}
	return nil
}

func convertValue(v any, to reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(to) {
		return rv, nil
	}

	if to.Kind() == reflect.Slice && rv.Kind() == reflect.Slice {
		out := reflect.MakeSlice(to, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := convertValue(rv.Index(i).Interface(), to.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	}

	// Strings only convert from strings; reflect would turn numbers into runes.
	if to.Kind() == reflect.String && rv.Kind() != reflect.String {
		return reflect.Value{}, fmt.Errorf("cannot assign %T to %s", v, to)
	}
	if rv.Type().ConvertibleTo(to) {
		return rv.Convert(to), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot assign %T to %s", v, to)
}
