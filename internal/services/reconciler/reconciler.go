// Package reconciler tracks the kept, added and removed images of one listing.
package reconciler

import (
	"fmt"
	"strconv"
	"strings"

	"listing_editor/internal/domain/models"
)

type Resolver interface {
	Resolve(path string) string
}

// Reconciler is not safe for concurrent use; the editor session serializes access.
type Reconciler struct {
	resolver Resolver
	existing []models.ExistingImage
	deleted  []string
	seen     map[string]struct{}
	removed  map[string]struct{}
	added    []models.ImageFile
}

func New(resolver Resolver) *Reconciler {
	return &Reconciler{
		resolver: resolver,
		seen:     map[string]struct{}{},
		removed:  map[string]struct{}{},
	}
}

// Seed materializes the persisted images of the listing and clears deletions.
func (r *Reconciler) Seed(paths []string) {
	r.existing = make([]models.ExistingImage, 0, len(paths))
	r.deleted = nil
	r.seen = map[string]struct{}{}
	r.removed = map[string]struct{}{}

	for i, p := range paths {
		url := p
		if r.resolver != nil {
			url = r.resolver.Resolve(p)
		}
		r.existing = append(r.existing, models.ExistingImage{
			ID:           strconv.Itoa(i + 1),
			URL:          url,
			Name:         displayName(p, i),
			OriginalPath: p,
		})
	}
}

// MarkDeleted removes an existing image and remembers its path.
// Repeating it for an already removed id changes nothing.
// Returns false only for ids the listing never had.
func (r *Reconciler) MarkDeleted(id string) bool {
	if _, ok := r.removed[id]; ok {
		return true
	}
	for i, img := range r.existing {
		if img.ID != id {
			continue
		}
		r.existing = append(r.existing[:i:i], r.existing[i+1:]...)
		r.removed[id] = struct{}{}
		if img.OriginalPath != "" {
			if _, ok := r.seen[img.OriginalPath]; !ok {
				r.seen[img.OriginalPath] = struct{}{}
				r.deleted = append(r.deleted, img.OriginalPath)
			}
		}
		return true
	}
	return false
}

// ReplaceAdded swaps the whole set of new images and returns the previous one.
func (r *Reconciler) ReplaceAdded(files []models.ImageFile) []models.ImageFile {
	prev := r.added
	r.added = append([]models.ImageFile(nil), files...)
	return prev
}

func (r *Reconciler) Existing() []models.ExistingImage {
	return append([]models.ExistingImage(nil), r.existing...)
}

func (r *Reconciler) Added() []models.ImageFile {
	return append([]models.ImageFile(nil), r.added...)
}

func (r *Reconciler) Deleted() []string {
	return append([]string(nil), r.deleted...)
}

// Submission returns the image part of the outgoing change-set.
func (r *Reconciler) Submission() (added []models.ImageFile, deleted []string) {
	return r.Added(), r.Deleted()
}

// Visible is the number of images the listing will have after submit.
func (r *Reconciler) Visible() int {
	return len(r.existing) + len(r.added)
}

func displayName(path string, index int) string {
	name := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		name = path[i+1:]
	}
	if name == "" {
		return fmt.Sprintf("image-%d", index+1)
	}
	return name
}
