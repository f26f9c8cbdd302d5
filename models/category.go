package models

import "time"

// Defaults applied to a category created without icon or color.
const (
	DefaultCategoryIcon  = "folder"
	DefaultCategoryColor = "#6366f1"
)

// Category groups vault items of one user. Names are stored in clear.
type Category struct {
	ID        string `json:"id"`
	UserID    string `json:"-"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`

	// ItemCount is the number of live items in the category. It is only
	// filled by listings.
	ItemCount int `json:"item_count"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Category model.
func (c Category) TableName() string {
	return "categories"
}
