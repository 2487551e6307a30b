package utils

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug lowercases, strips accents and collapses everything else to
// hyphens. Used to turn customer filenames into storage-key-safe segments.
func GenerateSlug(name string) string {
	// Normalize accents
	t := norm.NFD.String(name)
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue // remove accent marks
		}
		b.WriteRune(r)
	}

	s := strings.ToLower(b.String())
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return s
}

// EncodeDataURI packs raw bytes into a "data:<mime>;base64,<payload>" string.
func EncodeDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURI unpacks a data URI produced by EncodeDataURI. A missing
// separator, empty body or undecodable payload is an error; callers treat
// that as a skippable per-image failure.
func DecodeDataURI(uri string) (mimeType string, data []byte, err error) {
	const sep = ";base64,"

	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("missing data: prefix")
	}

	mimeType, body, ok := strings.Cut(rest, sep)
	if !ok {
		return "", nil, fmt.Errorf("missing %q separator", sep)
	}
	if body == "" {
		return "", nil, fmt.Errorf("empty payload")
	}

	data, err = base64.StdEncoding.DecodeString(body)
	if err != nil {
		return "", nil, fmt.Errorf("decode payload: %w", err)
	}

	return mimeType, data, nil
}

// Base64DecodedLen returns the decoded size of a data URI payload without
// decoding it, so size limits can be enforced before allocating.
func Base64DecodedLen(uri string) int {
	_, body, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return len(uri)
	}
	n := base64.StdEncoding.DecodedLen(len(body))
	// DecodedLen ignores padding; subtract it for an exact count
	if strings.HasSuffix(body, "==") {
		n -= 2
	} else if strings.HasSuffix(body, "=") {
		n--
	}
	return n
}
