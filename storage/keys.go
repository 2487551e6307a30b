package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rockitout/drywallbackend/utils"
)

// ObjectName builds a collision-resistant storage key for a quote photo:
// date prefix + nanosecond timestamp + random identifier + slugged original
// name. Resubmitting the same file twice always yields two distinct keys.
func ObjectName(fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	slug := utils.GenerateSlug(base)
	if slug == "" {
		slug = "image"
	}

	return fmt.Sprintf("quotes/%s/%d-%s-%s%s",
		now.UTC().Format("2006/01/02"),
		now.UTC().UnixNano(),
		uuid.New().String(),
		slug,
		ext,
	)
}
