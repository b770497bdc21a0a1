package dto

import (
	"bytes"
	"fmt"
	"strings"

	"listing_editor/internal/services/editor"

	"github.com/goccy/go-json"
)

// FormValue принимает из JSON и строку, и число: браузерные формы
// присылают числовые поля по-разному.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
	case 't', 'f', '{', '[':
		return fmt.Errorf("unsupported form value %s", string(data))
	default:
		*v = FormValue(strings.TrimSpace(string(data)))
	}
	return nil
}

func (v *FormValue) ptr() *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

type OpenSessionRequest struct {
	PropertyID *int `json:"property_id,omitempty" validate:"omitempty,gt=0"`
}

// DraftPatchRequest частичное обновление черновика. Отсутствующие поля не меняются.
type DraftPatchRequest struct {
	Description        *string    `json:"description,omitempty" swaggertype:"string"`
	RoomCount          *FormValue `json:"roomCount,omitempty" swaggertype:"string"`
	BathroomCount      *FormValue `json:"bathroomCount,omitempty" swaggertype:"string"`
	SizeInSquareMeters *FormValue `json:"sizeInSquareMeters,omitempty" swaggertype:"string"`
	Price              *FormValue `json:"price,omitempty" swaggertype:"string"`
	PropertyTypeID     *FormValue `json:"propertyTypeId,omitempty" swaggertype:"string"`
	SaleTypeID         *FormValue `json:"saleTypeId,omitempty" swaggertype:"string"`
	UniqueCode         *string    `json:"uniqueCode,omitempty" validate:"omitempty,max=64"`
	IsAvailable        *bool      `json:"isAvailable,omitempty"`
	Improvements       *[]int     `json:"improvements,omitempty"`
}

func (r DraftPatchRequest) ToPatch() editor.DraftPatch {
	return editor.DraftPatch{
		Description:        r.Description,
		RoomCount:          r.RoomCount.ptr(),
		BathroomCount:      r.BathroomCount.ptr(),
		SizeInSquareMeters: r.SizeInSquareMeters.ptr(),
		Price:              r.Price.ptr(),
		PropertyTypeID:     r.PropertyTypeID.ptr(),
		SaleTypeID:         r.SaleTypeID.ptr(),
		UniqueCode:         r.UniqueCode,
		IsAvailable:        r.IsAvailable,
		Improvements:       r.Improvements,
	}
}
