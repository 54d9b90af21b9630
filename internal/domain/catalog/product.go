package catalog

import (
	"strings"
	"time"

	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category groups marketplace products
type Category string

const (
	CategoryCode      Category = "code"
	CategoryApps      Category = "apps"
	CategoryWebsites  Category = "websites"
	CategoryTemplates Category = "templates"
)

// AllCategories returns every category in display order
func AllCategories() []Category {
	return []Category{CategoryCode, CategoryApps, CategoryWebsites, CategoryTemplates}
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	switch c {
	case CategoryCode, CategoryApps, CategoryWebsites, CategoryTemplates:
		return true
	}
	return false
}

// String returns the category code
func (c Category) String() string {
	return string(c)
}

// ParseCategory normalizes a category code, case-insensitively
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", shared.InvalidInput("unknown product category: " + s)
	}
	return c, nil
}

const defaultPreviewGradient = "Purple Blue"

// Product is a digital item listed on the marketplace
type Product struct {
	shared.BaseAggregateRoot
	Title            string
	Price            decimal.Decimal
	Category         Category
	Description      string
	KeyFeatures      string
	TechnologiesUsed string
	DemoURL          string
	PreviewGradient  string
	ImageKey         string
	FileURL          string
	Views            int64
	SoldCount        int64
	Booked           bool
}

// ProductDetails carries the editable product fields
type ProductDetails struct {
	Title            string
	Price            decimal.Decimal
	Category         Category
	Description      string
	KeyFeatures      string
	TechnologiesUsed string
	DemoURL          string
	PreviewGradient  string
	ImageKey         string
	FileURL          string
}

// NewProduct creates a product with zeroed counters
func NewProduct(d ProductDetails) (*Product, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	p := &Product{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	p.apply(d)
	return p, nil
}

// Update replaces the editable fields; counters are left untouched
func (p *Product) Update(d ProductDetails) error {
	if err := d.validate(); err != nil {
		return err
	}
	p.apply(d)
	p.UpdatedAt = time.Now()
	p.BumpVersion()
	return nil
}

func (p *Product) apply(d ProductDetails) {
	p.Title = strings.TrimSpace(d.Title)
	p.Price = d.Price
	p.Category = d.Category
	p.Description = d.Description
	p.KeyFeatures = d.KeyFeatures
	p.TechnologiesUsed = d.TechnologiesUsed
	p.DemoURL = d.DemoURL
	p.PreviewGradient = d.PreviewGradient
	if p.PreviewGradient == "" {
		p.PreviewGradient = defaultPreviewGradient
	}
	p.ImageKey = d.ImageKey
	p.FileURL = d.FileURL
}

func (d ProductDetails) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return shared.InvalidInput("product title is required")
	}
	if len(d.Title) > 200 {
		return shared.InvalidInput("product title cannot exceed 200 characters")
	}
	if d.Price.IsNegative() {
		return shared.InvalidInput("product price cannot be negative")
	}
	if !d.Category.IsValid() {
		return shared.InvalidInput("unknown product category: " + string(d.Category))
	}
	return nil
}

// MarkSold records qty units sold. A product is booked once anything sold.
func (p *Product) MarkSold(qty int) error {
	if qty < 1 {
		return shared.InvalidInput("sold quantity must be at least 1")
	}
	p.SoldCount += int64(qty)
	if p.SoldCount > 0 {
		p.Booked = true
	}
	p.UpdatedAt = time.Now()
	return nil
}

// RecordView increments the view counter
func (p *Product) RecordView() {
	p.Views++
}

// Technologies splits TechnologiesUsed on commas
func (p *Product) Technologies() []string {
	if strings.TrimSpace(p.TechnologiesUsed) == "" {
		return []string{}
	}
	parts := strings.Split(p.TechnologiesUsed, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Summary truncates the description for listing cards
func (p *Product) Summary(max int) string {
	r := []rune(p.Description)
	if len(r) <= max {
		return p.Description
	}
	return string(r[:max])
}
