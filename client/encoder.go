package client

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rockitout/drywallbackend/dto"
	"github.com/rockitout/drywallbackend/models"
	"github.com/rockitout/drywallbackend/utils"
)

// File is a candidate image picked by the customer. Open is called at
// encode time and may fail without affecting the other files.
type File struct {
	Name     string
	MimeType string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// Warning is a non-fatal note about a rejected or failed file.
type Warning struct {
	FileName string
	Reason   string
}

// EncodeImages filters the candidates, keeps at most the 5 newest accepted
// files and encodes them concurrently into transport payloads. A per-file
// failure produces a warning and drops only that file; the call errors only
// when every attempted encode failed.
func EncodeImages(ctx context.Context, files []File) ([]dto.QuoteImageDTO, []Warning, error) {
	var warnings []Warning

	accepted := make([]File, 0, len(files))
	for _, f := range files {
		if !models.AllowedImageMimeTypes[f.MimeType] {
			warnings = append(warnings, Warning{FileName: f.Name, Reason: fmt.Sprintf("unsupported file type %s", f.MimeType)})
			continue
		}
		if f.Size > models.MaxImageSizeBytes {
			warnings = append(warnings, Warning{FileName: f.Name, Reason: fmt.Sprintf("larger than %d MB", models.MaxImageSizeBytes>>20)})
			continue
		}
		accepted = append(accepted, f)
	}

	// Keep the newest 5: selection order is preserved, the earliest
	// overflow files are dropped.
	if n := len(accepted) - models.MaxImagesPerRequest; n > 0 {
		for _, dropped := range accepted[:n] {
			warnings = append(warnings, Warning{FileName: dropped.Name, Reason: "too many images, dropped"})
		}
		accepted = accepted[n:]
	}

	if len(accepted) == 0 {
		return nil, warnings, nil
	}

	// One goroutine per retained file, joined before returning. Slots keep
	// selection order regardless of completion order.
	encoded := make([]*dto.QuoteImageDTO, len(accepted))
	encodeErrs := make([]error, len(accepted))

	var wg sync.WaitGroup
	for i, f := range accepted {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				encodeErrs[i] = err
				return
			}
			img, err := encodeOne(f)
			if err != nil {
				encodeErrs[i] = err
				return
			}
			encoded[i] = img
		}(i, f)
	}
	wg.Wait()

	out := make([]dto.QuoteImageDTO, 0, len(accepted))
	for i, img := range encoded {
		if img == nil {
			warnings = append(warnings, Warning{FileName: accepted[i].Name, Reason: fmt.Sprintf("encode failed: %v", encodeErrs[i])})
			continue
		}
		out = append(out, *img)
	}

	if len(out) == 0 {
		return nil, warnings, fmt.Errorf("all %d image encodes failed", len(accepted))
	}
	return out, warnings, nil
}

func encodeOne(f File) (*dto.QuoteImageDTO, error) {
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return &dto.QuoteImageDTO{
		Name:     f.Name,
		MimeType: f.MimeType,
		Data:     utils.EncodeDataURI(f.MimeType, data),
	}, nil
}
