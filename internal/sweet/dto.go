// AngelaMos | 2026
// dto.go

package sweet

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type CreateSweetParams struct {
	Name     string  `validate:"required,min=1,max=100"`
	Price    float64 `validate:"required,gt=0"`
	Category string  `validate:"required,min=1,max=100"`
	Quantity int     `validate:"gte=0"`
}

// UpdateSweetParams applies only the fields that were present in the
// request; nil fields keep their stored values.
type UpdateSweetParams struct {
	Name     *string  `validate:"omitempty,min=1,max=100"`
	Price    *float64 `validate:"omitempty,gt=0"`
	Category *string  `validate:"omitempty,min=1,max=100"`
	Quantity *int     `validate:"omitempty,gte=0"`
}

// ImageUpload is a pending image file handed to the image store. A nil
// upload means the sweet is saved without an image reference.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// PriceBound accepts both JSON numbers and numeric strings; the legacy
// browser client submits form values as strings.
type PriceBound struct {
	Value *float64
}

func (p *PriceBound) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}

	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid price bound %q", s)
	}

	p.Value = &f
	return nil
}

type SearchRequest struct {
	Name     string     `json:"name"`
	Category string     `json:"category"`
	PriceMin PriceBound `json:"pricemin"`
	PriceMax PriceBound `json:"pricemax"`
}

func (r *SearchRequest) ToFilter() Filter {
	return Filter{
		NamePattern:     r.Name,
		CategoryPattern: r.Category,
		PriceMin:        r.PriceMin.Value,
		PriceMax:        r.PriceMax.Value,
	}
}

// Filter is the conjunction of search predicates; zero-value fields impose
// no constraint.
type Filter struct {
	NamePattern     string
	CategoryPattern string
	PriceMin        *float64
	PriceMax        *float64
}

type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type SweetResponse struct {
	Message string `json:"message"`
	Sweet   *Sweet `json:"sweet"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
