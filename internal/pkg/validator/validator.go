package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance to avoid creating multiple instances
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Field errors are keyed by the wire name, not the Go field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// Get returns the shared validator instance
func Get() *validator.Validate {
	return validate
}

// Mensagens converts a validation error into a field name to
// human-readable message mapping. Unexpected error shapes collapse into
// a single generic entry so callers always get a populated map.
func Mensagens(err error) map[string]string {
	campos := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		campos["_"] = "Entrada inválida"
		return campos
	}

	for _, fe := range verrs {
		campos[fe.Field()] = mensagem(fe)
	}
	return campos
}

func mensagem(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "min":
		return fmt.Sprintf("Deve ter pelo menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("Deve ter no máximo %s caracteres", fe.Param())
	case "gt":
		return fmt.Sprintf("Deve ser maior que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Deve ser maior ou igual a %s", fe.Param())
	default:
		return "Valor inválido"
	}
}
