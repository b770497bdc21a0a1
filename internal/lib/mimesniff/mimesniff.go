package mimesniff

import (
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const generic = "application/octet-stream"

// Resolve returns the declared MIME type unless it is missing or generic,
// in which case the type is detected from content.
func Resolve(declared string, open func() (io.ReadCloser, error)) (string, error) {
	const op = "mimesniff.Resolve"

	if mt := normalize(declared); mt != "" && mt != generic {
		return mt, nil
	}

	r, err := open()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer r.Close()

	detected, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return normalize(detected.String()), nil
}

func normalize(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}
