package models

// AllowedImageMimeTypes lists the mime types accepted for quote request
// photos. image/jpg is not a registered IANA type but browsers emit it.
var AllowedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

const (
	MaxImagesPerRequest = 5
	MaxImageSizeBytes   = 5 * 1024 * 1024
	MaxTotalImageBytes  = 25 * 1024 * 1024
)

// ProcessedImage is an uploaded quote photo. Only images that both decoded
// and uploaded successfully become ProcessedImages.
type ProcessedImage struct {
	FileName   string
	MimeType   string
	Bytes      []byte
	ObjectName string
	PublicURL  string
}

// DispatchResult records the per-channel outcome of handling one quote
// request. It is logged and counted server-side, never returned to the
// caller: a 200 response means the submission was accepted, not that every
// email delivered.
type DispatchResult struct {
	ImagesReceived int
	ImagesUploaded int

	BusinessEmailID  string
	BusinessEmailErr error

	CustomerAttempted bool
	CustomerEmailID   string
	CustomerEmailErr  error
}
