package categories

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Category is a denormalized grouping page. Its items are embedded records,
// not references to Solutions, and the two models are never converted into
// each other.
type Category struct {
	bun.BaseModel `bun:"table:solution_categories,alias:sc"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Title       string    `bun:"title,notnull" json:"title"`
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	ImageURL    string    `bun:"image_url" json:"imageUrl"`
	Description string    `bun:"description" json:"description"`
	Solutions   Items     `bun:"solutions,type:jsonb,notnull" json:"solutions"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`
}

// Item is a lightweight solution-like record embedded in a Category. ID is
// scoped to its category.
type Item struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	ShortDesc      string    `json:"shortDesc"`
	FullDesc       string    `json:"fullDesc"`
	Features       []Feature `json:"features"`
	Implementation string    `json:"implementation"`
}

// Feature is a single bullet on an Item.
type Feature struct {
	Text string `json:"text"`
}

// Items is the ordered embedded list, stored as one JSON column.
type Items []Item

// Find returns the position of item id, or -1.
func (items Items) Find(id int) int {
	return slices.IndexFunc(items, func(item Item) bool { return item.ID == id })
}

// NextID returns max(id)+1, starting at 1.
func (items Items) NextID() int {
	next := 1
	for _, item := range items {
		if item.ID >= next {
			next = item.ID + 1
		}
	}
	return next
}

// Clone deep-copies the list including feature slices.
func (items Items) Clone() Items {
	if items == nil {
		return nil
	}
	out := make(Items, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Features = slices.Clone(item.Features)
	}
	return out
}

func (items Items) MarshalJSON() ([]byte, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Item(items))
}

// Value stores the list as a JSON document.
func (items Items) Value() (driver.Value, error) {
	raw, err := items.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan loads a JSON document written by Value.
func (items *Items) Scan(src any) error {
	var raw []byte
	switch value := src.(type) {
	case nil:
		*items = Items{}
		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("categories: cannot scan %T into Items", src)
	}
	var out []Item
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	if out == nil {
		out = []Item{}
	}
	*items = Items(out)
	return nil
}

func cloneCategory(c *Category) *Category {
	if c == nil {
		return nil
	}
	cloned := *c
	cloned.Solutions = c.Solutions.Clone()
	if cloned.Solutions == nil {
		cloned.Solutions = Items{}
	}
	return &cloned
}
