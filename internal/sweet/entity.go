// AngelaMos | 2026
// entity.go

package sweet

import (
	"time"
)

// Sweet is a stocked inventory item. Name is unique across the shop, price
// is strictly positive and quantity never goes below zero; the database
// constraints back all three.
type Sweet struct {
	ID        string    `db:"id"         json:"_id"`
	Name      string    `db:"name"       json:"name"`
	Price     float64   `db:"price"      json:"price"`
	Category  string    `db:"category"   json:"category"`
	Quantity  int       `db:"quantity"   json:"quantity"`
	ImageURL  *string   `db:"image_url"  json:"sweetpic,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

func (s *Sweet) InStock(requested int) bool {
	return requested <= s.Quantity
}
