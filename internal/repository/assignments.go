package repository

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lib/pq"

	"cms-admin/internal/apperrors"
)

// Assignment is a column value written by an insert or update
type Assignment struct {
	Column string
	Value  any
}

// Assignments lists the `db`-tagged fields of an input struct as column values.
// With a nil keys set every non-nil field is returned; otherwise only fields
// whose json name is in keys are returned, and nil fields become NULL.
func Assignments(input any, keys map[string]any) []Assignment {
	v := reflect.Indirect(reflect.ValueOf(input))
	typ := v.Type()

	var out []Assignment
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		column := field.Tag.Get("db")
		if column == "" || column == "-" {
			continue
		}
		name := JSONName(field)

		fv := v.Field(i)
		isNil := fv.Kind() == reflect.Pointer && fv.IsNil()
		if keys == nil {
			if isNil {
				continue
			}
		} else if _, ok := keys[name]; !ok {
			continue
		}

		var value any
		if !isNil {
			value = reflect.Indirect(fv).Interface()
		}
		out = append(out, Assignment{Column: column, Value: value})
	}
	return out
}

// JSONName returns the name a struct field is decoded from
func JSONName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" {
		return field.Name
	}
	return name
}

func (t *Table[T]) constraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code.Name() {
	case "unique_violation", "foreign_key_violation", "check_violation":
		if msg, ok := t.constraints[pqErr.Constraint]; ok {
			return apperrors.NewValidation(msg)
		}
		return apperrors.NewValidation(pqErr.Message)
	case "not_null_violation":
		return apperrors.NewValidation(pqErr.Column + " cannot be null")
	case "string_data_right_truncation":
		return apperrors.NewValidation("value too long: " + pqErr.Message)
	case "numeric_value_out_of_range":
		return apperrors.NewValidation("numeric value out of range")
	case "invalid_text_representation":
		return apperrors.NewValidation("invalid value: " + pqErr.Message)
	}
	return nil
}

func (t *Table[T]) referencedError(err error, id int64) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
		return apperrors.NewValidation(fmt.Sprintf("ID %d is still referenced by %s", id, pqErr.Table))
	}
	return nil
}
