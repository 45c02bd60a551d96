package school

import (
	"sort"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/schooladmin/core"
)

var (
	studentStatusTag  = "studentstatus"
	studentStatusText = "must be one of Active, Inactive, Graduated, Suspended or Expelled"

	sectionNameTag  = "sectionname"
	sectionNameText = "must be one of A, B, C or D"
)

// Validator validates school records and translates the errors.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator returns a Validator with the core and school validators registered.
func NewValidator() *Validator {
	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	InitValidators(validate, translator)
	return &Validator{validate: validate, translator: translator}
}

// InitValidators registers the school validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(studentStatusTag, oneOfValidation(StudentStatuses))
	core.RegisterCustomTranslation(validate, translator, studentStatusTag, studentStatusText)

	_ = validate.RegisterValidation(sectionNameTag, oneOfValidation(SectionNames))
	core.RegisterCustomTranslation(validate, translator, sectionNameTag, sectionNameText)
}

func (v *Validator) Validate() *validator.Validate { return v.validate }
func (v *Validator) Translator() ut.Translator     { return v.translator }

// Struct validates a record; failures are returned as *core.ValidationError.
func (v *Validator) Struct(s interface{}) error {
	return core.ValidateStruct(v.validate, v.translator, s)
}

// Custom Validators

func oneOfValidation(allowed []string) validator.Func {
	sorted := append([]string(nil), allowed...)
	sort.Strings(sorted)
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		idx := sort.SearchStrings(sorted, val)
		return idx < len(sorted) && sorted[idx] == val
	}
}
