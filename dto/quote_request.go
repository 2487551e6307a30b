package dto

// QuoteImageDTO is the wire form of one attached photo. Data is a data URI
// ("data:<mime>;base64,<payload>") carrying both the declared mime type and
// the bytes.
type QuoteImageDTO struct {
	Name     string `json:"name"     validate:"required,max=255"`
	MimeType string `json:"mimeType" validate:"required,oneof=image/jpeg image/jpg image/png image/webp"`
	Data     string `json:"data"     validate:"required"`
}

// CreateQuoteRequestDTO is the submission payload. Field order matters:
// validation reports the first violated field in declaration order.
type CreateQuoteRequestDTO struct {
	Name     string          `json:"name"     validate:"required,min=1,max=100"`
	Phone    string          `json:"phone"    validate:"required,min=10,max=20"`
	Email    string          `json:"email"    validate:"omitempty,email,max=255"`
	Service  string          `json:"service"  validate:"omitempty,max=50"`
	Location string          `json:"location" validate:"required,min=1,max=200"`
	Message  string          `json:"message"  validate:"required,min=10,max=2000"`
	Images   []QuoteImageDTO `json:"images"   validate:"omitempty,max=5,dive"`
}

// QuoteRequestResponse is the body of a 200 acknowledgment.
type QuoteRequestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the body of a 400 or 500.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
