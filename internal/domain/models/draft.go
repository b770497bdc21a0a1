package models

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// PropertyDraft представляет незавершённое объявление.
// Числовые поля nil, когда ввод не является числом.
type PropertyDraft struct {
	ID                 *int        `json:"id,omitempty"`
	Description        string      `json:"description"`
	RoomCount          *int        `json:"roomCount"`
	BathroomCount      *int        `json:"bathroomCount"`
	SizeInSquareMeters *float64    `json:"sizeInSquareMeters"`
	Price              *float64    `json:"price"`
	PropertyTypeID     string      `json:"propertyTypeId"`
	SaleTypeID         string      `json:"saleTypeId"`
	UniqueCode         string      `json:"uniqueCode"`
	Improvements       []int       `json:"improvements"`
	Images             []ImageFile `json:"images"`
	DeletedImages      []string    `json:"deletedImages"`
	IsAvailable        bool        `json:"isAvailable"`

	// ввод был числом, но не целым
	RoomCountFractional     bool `json:"-"`
	BathroomCountFractional bool `json:"-"`
}

// Mode is decided by identifier presence.
func (d PropertyDraft) Mode() Mode {
	if d.ID != nil {
		return ModeEdit
	}
	return ModeCreate
}

// Clone returns a deep copy safe to hand to another goroutine.
func (d PropertyDraft) Clone() PropertyDraft {
	out := d
	if d.ID != nil {
		id := *d.ID
		out.ID = &id
	}
	out.RoomCount = cloneInt(d.RoomCount)
	out.BathroomCount = cloneInt(d.BathroomCount)
	out.SizeInSquareMeters = cloneFloat(d.SizeInSquareMeters)
	out.Price = cloneFloat(d.Price)
	out.Improvements = append([]int(nil), d.Improvements...)
	out.Images = append([]ImageFile(nil), d.Images...)
	out.DeletedImages = append([]string(nil), d.DeletedImages...)
	return out
}

// HasImprovement reports whether the amenity id is selected.
func (d PropertyDraft) HasImprovement(id int) bool {
	for _, v := range d.Improvements {
		if v == id {
			return true
		}
	}
	return false
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
