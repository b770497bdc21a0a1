package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"listing_editor/internal/domain/models"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultMaxImages    = 5
	DefaultMaxImageSize = 5 * 1024 * 1024

	descriptionMin = 10
	descriptionMax = 500
)

var ErrMalformedDraft = errors.New("malformed draft")

var allowedImageTypes = []string{"image/png", "image/jpeg", "image/jpg"}

// Field names shared with the client form.
const (
	FieldDescription    = "description"
	FieldRoomCount      = "roomCount"
	FieldBathroomCount  = "bathroomCount"
	FieldSize           = "sizeInSquareMeters"
	FieldPrice          = "price"
	FieldPropertyTypeID = "propertyTypeId"
	FieldSaleTypeID     = "saleTypeId"
	FieldImages         = "images"
)

// Fields lists the form fields in display order.
var Fields = []string{
	FieldDescription,
	FieldRoomCount,
	FieldBathroomCount,
	FieldSize,
	FieldPrice,
	FieldPropertyTypeID,
	FieldSaleTypeID,
	FieldImages,
}

type input struct {
	draft *models.PropertyDraft
	mode  models.Mode
}

type rule struct {
	field   string
	message string
	ok      func(v *Validator, in input) bool
}

type Validator struct {
	validate     *validator.Validate
	maxImages    int
	maxImageSize int64
	rules        []rule
}

type Option func(*Validator)

func WithMaxImages(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxImages = n
		}
	}
}

func WithMaxImageSize(size int64) Option {
	return func(v *Validator) {
		if size > 0 {
			v.maxImageSize = size
		}
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{
		validate:     validator.New(),
		maxImages:    DefaultMaxImages,
		maxImageSize: DefaultMaxImageSize,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.rules = v.buildRules()

	return v
}

func (v *Validator) MaxImages() int {
	return v.maxImages
}

// Validate checks the draft against the rule table. The returned error is
// reserved for drafts that cannot be validated at all.
func (v *Validator) Validate(draft models.PropertyDraft, mode models.Mode) (models.ValidationResult, error) {
	const op = "validation.Validate"

	if mode != models.ModeCreate && mode != models.ModeEdit {
		return models.ValidationResult{}, fmt.Errorf("%s: %w: unknown mode %q", op, ErrMalformedDraft, mode)
	}
	for i, img := range draft.Images {
		if strings.TrimSpace(img.Name) == "" {
			return models.ValidationResult{}, fmt.Errorf("%s: %w: image %d has no name", op, ErrMalformedDraft, i)
		}
		if img.Size < 0 {
			return models.ValidationResult{}, fmt.Errorf("%s: %w: image %q has negative size", op, ErrMalformedDraft, img.Name)
		}
	}

	in := input{draft: &draft, mode: mode}
	result := models.NewValidationResult()
	for _, r := range v.rules {
		if _, failed := result.Field(r.field); failed {
			continue
		}
		if !r.ok(v, in) {
			result.Add(r.field, r.message)
		}
	}

	return result, nil
}

// is проверяет значение тегом validator.
func (v *Validator) is(value interface{}, tag string) bool {
	return v.validate.Var(value, tag) == nil
}

func (v *Validator) buildRules() []rule {
	return []rule{
		{FieldDescription, fmt.Sprintf("Description must be at least %d characters long", descriptionMin), func(v *Validator, in input) bool {
			return utf8.RuneCountInString(in.draft.Description) >= descriptionMin
		}},
		{FieldDescription, fmt.Sprintf("Description must be at most %d characters long", descriptionMax), func(v *Validator, in input) bool {
			return v.is(in.draft.Description, fmt.Sprintf("max=%d", descriptionMax))
		}},

		{FieldRoomCount, "Rooms must be a whole number", func(v *Validator, in input) bool {
			return !in.draft.RoomCountFractional
		}},
		{FieldRoomCount, "Rooms must be a number", func(v *Validator, in input) bool {
			return in.draft.RoomCount != nil
		}},
		{FieldRoomCount, "Rooms cannot be negative", func(v *Validator, in input) bool {
			return v.is(*in.draft.RoomCount, "gte=0")
		}},

		{FieldBathroomCount, "Bathrooms must be a whole number", func(v *Validator, in input) bool {
			return !in.draft.BathroomCountFractional
		}},
		{FieldBathroomCount, "Bathrooms must be a number", func(v *Validator, in input) bool {
			return in.draft.BathroomCount != nil
		}},
		{FieldBathroomCount, "Bathrooms cannot be negative", func(v *Validator, in input) bool {
			return v.is(*in.draft.BathroomCount, "gte=0")
		}},

		{FieldSize, "Size must be a number", func(v *Validator, in input) bool {
			return in.draft.SizeInSquareMeters != nil
		}},
		{FieldSize, "Size must be a positive number", func(v *Validator, in input) bool {
			return v.is(*in.draft.SizeInSquareMeters, "gt=0")
		}},

		{FieldPrice, "Price must be a number", func(v *Validator, in input) bool {
			return in.draft.Price != nil
		}},
		{FieldPrice, "Price must be a positive number", func(v *Validator, in input) bool {
			return v.is(*in.draft.Price, "gt=0")
		}},

		{FieldPropertyTypeID, "Property type is required", func(v *Validator, in input) bool {
			return v.is(strings.TrimSpace(in.draft.PropertyTypeID), "required")
		}},
		{FieldSaleTypeID, "Sale type is required", func(v *Validator, in input) bool {
			return v.is(strings.TrimSpace(in.draft.SaleTypeID), "required")
		}},

		{FieldImages, "At least one image is required", func(v *Validator, in input) bool {
			if in.mode == models.ModeEdit {
				return true
			}
			return v.is(in.draft.Images, "min=1")
		}},
		{FieldImages, fmt.Sprintf("You can upload at most %d images", v.maxImages), func(v *Validator, in input) bool {
			return v.is(in.draft.Images, fmt.Sprintf("max=%d", v.maxImages))
		}},
		{FieldImages, fmt.Sprintf("Each image must be %s or smaller", humanSize(v.maxImageSize)), func(v *Validator, in input) bool {
			for _, img := range in.draft.Images {
				if !v.is(img.Size, fmt.Sprintf("lte=%d", v.maxImageSize)) {
					return false
				}
			}
			return true
		}},
		{FieldImages, "Only .jpg, .jpeg and .png images are accepted", func(v *Validator, in input) bool {
			for _, img := range in.draft.Images {
				if !v.is(strings.ToLower(img.ContentType), "oneof="+strings.Join(allowedImageTypes, " ")) {
					return false
				}
			}
			return true
		}},
	}
}

func humanSize(size int64) string {
	const mb = 1024 * 1024
	if size%mb == 0 {
		return fmt.Sprintf("%dMB", size/mb)
	}
	return fmt.Sprintf("%d bytes", size)
}
