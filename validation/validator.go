// Package validation holds the single rule set for quote requests. The same
// Validate call runs in the submission client and in the server handler; the
// server run is authoritative and is never skipped.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rockitout/drywallbackend/dto"
	"github.com/rockitout/drywallbackend/models"
	"github.com/rockitout/drywallbackend/utils"
)

// FieldError reports the first violated field. Message is safe to surface
// verbatim to the person filling in the form.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string { return e.Message }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their json name, not the Go identifier
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a quote request against the field schema and the image
// constraints. Fields are checked in declaration order and only the first
// violation is reported.
func Validate(req *dto.CreateQuoteRequestDTO) *FieldError {
	if err := validate.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok || len(verrs) == 0 {
			return &FieldError{Field: "request", Message: "invalid request"}
		}
		fe := verrs[0]
		return &FieldError{Field: fe.Field(), Message: messageFor(fe)}
	}

	return validateImageSizes(req.Images)
}

// validateImageSizes enforces the per-image and aggregate byte limits. The
// counts come from the base64 payload length, so nothing is decoded here.
func validateImageSizes(images []dto.QuoteImageDTO) *FieldError {
	total := 0
	for i, img := range images {
		n := utils.Base64DecodedLen(img.Data)
		if n > models.MaxImageSizeBytes {
			return &FieldError{
				Field:   "images",
				Message: fmt.Sprintf("image %d (%s) exceeds the %d MB per-image limit", i+1, img.Name, models.MaxImageSizeBytes>>20),
			}
		}
		total += n
	}
	if total > models.MaxTotalImageBytes {
		return &FieldError{
			Field:   "images",
			Message: fmt.Sprintf("images exceed the %d MB total limit", models.MaxTotalImageBytes>>20),
		}
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s allows at most %s entries", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s has an unsupported value", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
