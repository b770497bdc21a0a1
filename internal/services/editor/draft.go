package editor

import (
	"math"
	"strconv"
	"strings"

	"listing_editor/internal/domain/models"
)

// DraftPatch holds raw form input. Nil fields are left untouched.
type DraftPatch struct {
	Description        *string
	RoomCount          *string
	BathroomCount      *string
	SizeInSquareMeters *string
	Price              *string
	PropertyTypeID     *string
	SaleTypeID         *string
	UniqueCode         *string
	IsAvailable        *bool
	Improvements       *[]int
}

func (p DraftPatch) apply(d *models.PropertyDraft) {
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.RoomCount != nil {
		d.RoomCount = ParseInt(*p.RoomCount)
		d.RoomCountFractional = IsFraction(*p.RoomCount)
	}
	if p.BathroomCount != nil {
		d.BathroomCount = ParseInt(*p.BathroomCount)
		d.BathroomCountFractional = IsFraction(*p.BathroomCount)
	}
	if p.SizeInSquareMeters != nil {
		d.SizeInSquareMeters = ParseFloat(*p.SizeInSquareMeters)
	}
	if p.Price != nil {
		d.Price = ParseFloat(*p.Price)
	}
	if p.PropertyTypeID != nil {
		d.PropertyTypeID = strings.TrimSpace(*p.PropertyTypeID)
	}
	if p.SaleTypeID != nil {
		d.SaleTypeID = strings.TrimSpace(*p.SaleTypeID)
	}
	if p.UniqueCode != nil {
		d.UniqueCode = strings.TrimSpace(*p.UniqueCode)
	}
	if p.IsAvailable != nil {
		d.IsAvailable = *p.IsAvailable
	}
	if p.Improvements != nil {
		d.Improvements = dedupe(*p.Improvements)
	}
}

// ParseInt coerces form input to an integer. Nil means not a number.
func ParseInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return &v
	}
	// "3.0" из числового поля браузера
	f := ParseFloat(raw)
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil
	}
	v := int(*f)
	return &v
}

// IsFraction reports a finite number with a fractional part, e.g. "2.5".
func IsFraction(raw string) bool {
	f := ParseFloat(raw)
	return f != nil && *f != math.Trunc(*f)
}

// ParseFloat coerces form input to a finite number. Nil means not a number.
func ParseFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
