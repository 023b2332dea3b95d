// internal/utils/validator.go
package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("team_type", validateTeamType)
	validate.RegisterValidation("reservation_status", validateReservationStatus)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateTeamType(fl validator.FieldLevel) bool {
	return models.TeamType(fl.Field().String()).Valid()
}

func validateReservationStatus(fl validator.FieldLevel) bool {
	return models.ReservationStatus(fl.Field().String()).Valid()
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Namespace()[strings.Index(e.Namespace(), ".")+1:],
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "uuid", "uuid4":
		return e.Field() + " must be a valid UUID"
	case "min":
		return e.Field() + " must have a length of at least " + e.Param()
	case "max":
		return e.Field() + " must have a length of at most " + e.Param()
	case "team_type":
		return "Team type must be one of A, B or C"
	case "reservation_status":
		return "Status must be one of reserved, bought or sold"
	default:
		return e.Field() + " is invalid"
	}
}
