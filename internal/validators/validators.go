package validators

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	cpfRegex     = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cepRegex     = regexp.MustCompile(`^\d{5}-\d{3}$`)
	specialRegex = regexp.MustCompile(`[\\^$*.\[\]{}()?"!@#%&/\\,><':;|_~` + "`" + `=+\-]`)
)

// New returns a Validate instance with all custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("cpf", CPF)
	_ = v.RegisterValidation("cep", CEP)
	_ = v.RegisterValidation("hasupper", HasUpper)
	_ = v.RegisterValidation("haslower", HasLower)
	_ = v.RegisterValidation("hasdigit", HasDigit)
	_ = v.RegisterValidation("hasspecial", HasSpecial)
	return v
}

// CPF checks the masked format NNN.NNN.NNN-NN.
func CPF(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return cpfRegex.MatchString(val)
}

// CEP checks the masked zip format NNNNN-NNN.
func CEP(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return cepRegex.MatchString(val)
}

func HasUpper(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	for _, ch := range val {
		if unicode.IsUpper(ch) {
			return true
		}
	}
	return false
}

func HasLower(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	for _, ch := range val {
		if unicode.IsLower(ch) {
			return true
		}
	}
	return false
}

func HasDigit(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	for _, ch := range val {
		if unicode.IsDigit(ch) {
			return true
		}
	}
	return false
}

func HasSpecial(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return specialRegex.MatchString(val)
}
