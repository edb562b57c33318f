// Package validation valida estructuras con etiquetas `validate` (go-playground/validator).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Nombres de campo según la etiqueta json/yaml, que es lo que ve quien escribe el archivo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "yaml"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Error errores de validación de una estructura, uno por campo.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return strings.Join(e.Fields, "; ")
}

// Struct valida s según sus etiquetas. Devuelve *Error si algún campo no cumple.
func Struct(s any) error {
	if err := validate.Struct(s); err != nil {
		return format(err)
	}
	return nil
}

func format(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]string, 0, len(verrs))}
	for _, e := range verrs {
		out.Fields = append(out.Fields, formatField(e))
	}
	return out
}

func formatField(e validator.FieldError) string {
	field := e.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s es obligatorio", field)
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s debe tener como máximo %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, e.Param())
	case "nefield":
		return fmt.Sprintf("%s no puede ser igual a %s", field, e.Param())
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, e.Tag())
	}
}
