// Package reflectx provides reflection shortcuts for reading and writing struct fields by dotted path.
// These helpers trade compile-time safety for convenience, so they belong in glue code and tests, not hot paths.
package reflectx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNoField is returned when a path segment doesn't name an exported field.
	ErrNoField = errors.New("no such field")
	// ErrNotStruct is returned when a path segment is applied to a non-struct value.
	ErrNotStruct = errors.New("not a struct")
	// ErrNotSettable is returned when the target wasn't addressable, usually because a non-pointer was passed.
	ErrNotSettable = errors.New("field is not settable")
	// ErrBadType is returned when an assigned value isn't assignable to the field's type.
	ErrBadType = errors.New("value type does not match field type")
)

func walk(target any, path string, forWrite bool) (reflect.Value, error) {
	val := reflect.ValueOf(target)
	if forWrite && val.Kind() != reflect.Pointer {
		return reflect.Value{}, fmt.Errorf("%w: pass a pointer to set fields", ErrNotSettable)
	}
	for _, segment := range strings.Split(path, ".") {
		for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
			if val.IsNil() {
				return reflect.Value{}, fmt.Errorf("%w: nil value at %q", ErrNoField, segment)
			}
			val = val.Elem()
		}
		if val.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("%w: %s is a %s", ErrNotStruct, segment, val.Kind())
		}
		val = val.FieldByName(segment)
		if !val.IsValid() {
			return reflect.Value{}, fmt.Errorf("%w: %q", ErrNoField, segment)
		}
	}
	return val, nil
}

// Field reads the value at a dotted path of exported field names, like "Server.Port".
// Pointers and interfaces along the path are dereferenced automatically.
func Field(target any, path string) (any, error) {
	val, err := walk(target, path, false)
	if err != nil {
		return nil, err
	}
	return val.Interface(), nil
}

// SetField writes value at a dotted path of exported field names.
// The target must be a pointer for the write to land.
func SetField(target any, path string, value any) error {
	field, err := walk(target, path, true)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("%w: %q", ErrNotSettable, path)
	}
	newVal := reflect.ValueOf(value)
	if !newVal.IsValid() {
		// Setting a field to nil only makes sense for nilable kinds.
		switch field.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			field.Set(reflect.Zero(field.Type()))
			return nil
		default:
			return fmt.Errorf("%w: cannot set %s to nil", ErrBadType, field.Kind())
		}
	}
	if !newVal.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("%w: %s is not assignable to %s", ErrBadType, newVal.Type(), field.Type())
	}
	field.Set(newVal)
	return nil
}

// ToMap converts a struct's exported fields to a map keyed by field name.
// Embedded structs are flattened one level, with the outer field winning on a name collision.
func ToMap(target any) (map[string]any, error) {
	val := reflect.ValueOf(target)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, fmt.Errorf("%w: nil pointer", ErrNotStruct)
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %s", ErrNotStruct, val.Kind())
	}
	out := map[string]any{}
	collect(val, out)
	return out, nil
}

func collect(val reflect.Value, out map[string]any) {
	t := val.Type()
	// Outer fields land first so promoted names can't shadow them.
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || (field.Anonymous && val.Field(i).Kind() == reflect.Struct) {
			continue
		}
		if _, taken := out[field.Name]; !taken {
			out[field.Name] = val.Field(i).Interface()
		}
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.IsExported() && field.Anonymous && val.Field(i).Kind() == reflect.Struct {
			collect(val.Field(i), out)
		}
	}
}
