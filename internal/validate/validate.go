// Package validate holds the client-side form validation rules. Rules are
// pure: each one maps an input string to at most one error message, and a
// form run collects every failing message per field without short-circuiting.
package validate

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var engine = newEngine()

// phones as people actually type them: optional +country, digits with
// common separators, 7 to 20 significant characters
var phonePattern = regexp.MustCompile(`^\+?[0-9(][0-9 ().-]{5,18}[0-9]$`)

func newEngine() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// Rule pairs a validation tag with the message shown when it fails.
// Except for Required, every rule passes on empty input: absence is the
// Required rule's concern alone.
type Rule struct {
	tag      string
	message  string
	required bool
}

func Required() Rule {
	return Rule{tag: "required", message: "Este campo es requerido", required: true}
}

func Email() Rule {
	return Rule{tag: "email", message: "Ingrese un correo electrónico válido"}
}

func MinLength(n int) Rule {
	return Rule{
		tag:     fmt.Sprintf("min=%d", n),
		message: fmt.Sprintf("Debe tener al menos %d caracteres", n),
	}
}

func MaxLength(n int) Rule {
	return Rule{
		tag:     fmt.Sprintf("max=%d", n),
		message: fmt.Sprintf("No puede exceder %d caracteres", n),
	}
}

func Numeric() Rule {
	return Rule{tag: "numeric", message: "Debe ser un valor numérico"}
}

func Phone() Rule {
	return Rule{tag: "phone", message: "Ingrese un número de teléfono válido"}
}

// Field runs every rule against value and returns all failing messages,
// in rule order. An empty result means the value is valid.
func Field(value string, rules ...Rule) []string {
	var messages []string
	for _, rule := range rules {
		if value == "" && !rule.required {
			continue
		}
		if err := engine.Var(value, rule.tag); err != nil {
			messages = append(messages, rule.message)
		}
	}
	return messages
}

// Form runs the configured rules against the corresponding values and
// returns a field-to-messages mapping. Fields with no failures are left
// out entirely, so an empty map is the "form is valid" signal. Fields
// configured but absent from values are validated as empty strings.
func Form(values map[string]string, rules map[string][]Rule) map[string][]string {
	result := make(map[string][]string)
	for field, fieldRules := range rules {
		if messages := Field(values[field], fieldRules...); len(messages) > 0 {
			result[field] = messages
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
