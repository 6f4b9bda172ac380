package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"property-catalog/internal/models"
)

var (
	phoneRegexp    = regexp.MustCompile(`^[+]?[0-9\s\-()]+$`)
	documentRegexp = regexp.MustCompile(`^[A-Za-z0-9\-.\s]+$`)
)

// Error reports which fields of an input failed validation. It is the
// boundary between a rejected input (400) and a missing record (404).
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "invalid property input: " + strings.Join(e.Fields, ", ")
}

// Validator checks property inputs against the field constraints. Checks
// run explicitly before anything reaches the store; nothing is enforced
// through persistence hooks.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the phone and document pattern rules
// registered.
func New() *Validator {
	v := validator.New()

	// Pattern rules only apply to non-empty values; omitempty handles absence.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("document", func(fl validator.FieldLevel) bool {
		return documentRegexp.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// ValidateInput returns a *Error describing every failing field, or nil
// when the input satisfies all constraints.
func (v *Validator) ValidateInput(in *models.PropertyInput) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate property input: %w", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &Error{Fields: fields}
}
