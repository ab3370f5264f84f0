package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what every service operation returns on failure.
// It is not an `error`: its only job is to be serialized as the
// response body with the status from Code().
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"error"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

// StructuredError carries per-field problems for 400 responses.
type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) *StructuredError {
	s.Errors[field] = append(s.Errors[field], problem)
	return s
}

var (
	MalformedJSONError  = NewSimple(http.StatusBadRequest, "Malformed JSON body")
	InvalidIDError      = NewSimple(http.StatusBadRequest, "The provided ID is invalid")
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")

	ClientNotFoundError  = NewSimple(http.StatusNotFound, "Client not found")
	ProductNotFoundError = NewSimple(http.StatusNotFound, "Product not found")
	CredentialsError     = NewSimple(http.StatusUnauthorized, "Invalid credentials")
)

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured() *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: http.StatusBadRequest,
	}
}

// FromValidationError maps validator.ValidationErrors to a 400 with one
// message per failing field. Returns nil when err is something else.
func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := NewStructured()
	for _, fe := range ve {
		field := fieldPath(fe)

		switch fe.Tag() {
		case "required":
			out.Add(field, "This field is required")
		case "min":
			out.Add(field, "Value is too short, min: "+fe.Param())
		case "max":
			out.Add(field, "Value is too long, max: "+fe.Param())
		case "email":
			out.Add(field, "Value must be a valid email address")
		case "cpf":
			out.Add(field, "Value must match the format NNN.NNN.NNN-NN")
		case "cep":
			out.Add(field, "Value must match the format NNNNN-NNN")
		case "hasupper":
			out.Add(field, "Value must have at least one uppercase character")
		case "haslower":
			out.Add(field, "Value must have at least one lowercase character")
		case "hasdigit":
			out.Add(field, "Value must have at least one number")
		case "hasspecial":
			out.Add(field, "Value must have at least one special character")
		default:
			out.Add(field, "Invalid value provided")
		}
	}
	return out
}

// fieldPath lowercases the struct namespace minus the root struct name,
// so `CreateClientDto.Address.ZipCode` becomes "address.zipcode".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}
