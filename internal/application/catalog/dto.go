package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// MarketplacePageSize is the fixed page size of the public listing
const MarketplacePageSize = 8

// MarketplaceQuery selects a page of the public listing
type MarketplaceQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page"`
}

// ProductListItem is a product card in the marketplace listing
type ProductListItem struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	Summary         string          `json:"summary"`
	PreviewGradient string          `json:"preview_gradient"`
	ImageURL        string          `json:"image_url,omitempty"`
	Views           int64           `json:"views"`
	SoldCount       int64           `json:"sold_count"`
	Booked          bool            `json:"booked"`
}

// MarketplacePage is one page of the listing
type MarketplacePage struct {
	Products   []ProductListItem `json:"products"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Total      int64             `json:"total"`
	HasNext    bool              `json:"has_next"`
	HasPrev    bool              `json:"has_prev"`
	Categories []string          `json:"categories"`
}

// ProductResponse is the full product view
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	KeyFeatures     []string        `json:"key_features"`
	Technologies    []string        `json:"technologies"`
	DemoURL         string          `json:"demo_url,omitempty"`
	PreviewGradient string          `json:"preview_gradient"`
	ImageURL        string          `json:"image_url,omitempty"`
	Views           int64           `json:"views"`
	SoldCount       int64           `json:"sold_count"`
	Booked          bool            `json:"booked"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
	HasDeliverable  bool            `json:"has_deliverable"`
}

// ProductRequest carries the admin-editable product fields
type ProductRequest struct {
	Title            string          `json:"title" form:"title" binding:"required,max=200"`
	Price            decimal.Decimal `json:"price" form:"price"`
	Category         string          `json:"category" form:"category" binding:"required,oneof=code apps websites templates"`
	Description      string          `json:"description" form:"description"`
	KeyFeatures      string          `json:"key_features" form:"key_features"`
	TechnologiesUsed string          `json:"technologies_used" form:"technologies_used"`
	DemoURL          string          `json:"demo_url" form:"demo_url" binding:"omitempty,url,max=500"`
	PreviewGradient  string          `json:"preview_gradient" form:"preview_gradient" binding:"max=50"`
	ImageKey         string          `json:"image_key" form:"image_key" binding:"max=500"`
	FileURL          string          `json:"file_url" form:"file_url" binding:"max=500"`
}

// UploadURLRequest asks for a presigned upload slot for a product asset or
// gallery media
type UploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required,max=200"`
	ContentType string `json:"content_type" binding:"required"`
	Kind        string `json:"kind" binding:"required,oneof=image file gallery"`
}

// UploadURLResponse is a presigned upload slot
type UploadURLResponse struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DownloadResponse is a presigned link to a purchased deliverable
type DownloadResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GalleryItemResponse is a gallery entry with a resolved media URL
type GalleryItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MediaType   string    `json:"media_type"`
	MediaURL    string    `json:"media_url,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// GalleryRequest carries the admin-editable gallery fields. Active defaults
// to true when omitted.
type GalleryRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	MediaKey    string `json:"media_key" binding:"max=500"`
	MediaType   string `json:"media_type" binding:"omitempty,oneof=image video"`
	Active      *bool  `json:"active"`
}

// HomeResponse is the landing page feed
type HomeResponse struct {
	Products []ProductListItem     `json:"products"`
	Gallery  []GalleryItemResponse `json:"gallery"`
}

func (r GalleryRequest) details() catalog.GalleryDetails {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return catalog.GalleryDetails{
		Title:       r.Title,
		Description: r.Description,
		MediaKey:    r.MediaKey,
		MediaType:   catalog.MediaType(r.MediaType),
		Active:      active,
	}
}

func (r ProductRequest) details() (catalog.ProductDetails, error) {
	category, err := catalog.ParseCategory(r.Category)
	if err != nil {
		return catalog.ProductDetails{}, err
	}
	return catalog.ProductDetails{
		Title:            r.Title,
		Price:            r.Price,
		Category:         category,
		Description:      r.Description,
		KeyFeatures:      r.KeyFeatures,
		TechnologiesUsed: r.TechnologiesUsed,
		DemoURL:          r.DemoURL,
		PreviewGradient:  r.PreviewGradient,
		ImageKey:         r.ImageKey,
		FileURL:          r.FileURL,
	}, nil
}

func toListItem(p *catalog.Product, imageURL string) ProductListItem {
	return ProductListItem{
		ID:              p.ID,
		Title:           p.Title,
		Price:           p.Price,
		Category:        p.Category.String(),
		Summary:         p.Summary(summaryLength),
		PreviewGradient: p.PreviewGradient,
		ImageURL:        imageURL,
		Views:           p.Views,
		SoldCount:       p.SoldCount,
		Booked:          p.Booked,
	}
}

func toProductResponse(p *catalog.Product, imageURL string) *ProductResponse {
	return &ProductResponse{
		ID:              p.ID,
		Title:           p.Title,
		Price:           p.Price,
		Category:        p.Category.String(),
		Description:     p.Description,
		KeyFeatures:     splitLines(p.KeyFeatures),
		Technologies:    p.Technologies(),
		DemoURL:         p.DemoURL,
		PreviewGradient: p.PreviewGradient,
		ImageURL:        imageURL,
		Views:           p.Views,
		SoldCount:       p.SoldCount,
		Booked:          p.Booked,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
		HasDeliverable:  p.FileURL != "",
	}
}

func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}
