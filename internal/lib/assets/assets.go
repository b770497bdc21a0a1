// Package assets turns stored image paths into display URLs.
package assets

import (
	"strings"
)

type Resolver struct {
	baseURL string
}

func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// Resolve склеивает базовый URL и относительный путь. Абсолютные URL возвращаются как есть.
func (r *Resolver) Resolve(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "//") {
		return path
	}
	if r.baseURL == "" {
		return path
	}

	return r.baseURL + "/" + strings.TrimLeft(path, "/")
}
