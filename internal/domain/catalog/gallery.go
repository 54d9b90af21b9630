package catalog

import (
	"strings"

	"github.com/ikpixels/marketplace/internal/domain/shared"
)

// MediaType is the kind of a gallery item's media
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// IsValid reports whether t is a known media type
func (t MediaType) IsValid() bool {
	return t == MediaImage || t == MediaVideo
}

// GalleryItem is a showcase entry: a screenshot or clip of delivered work
type GalleryItem struct {
	shared.BaseEntity
	Title       string
	Description string
	MediaKey    string
	MediaType   MediaType
	Active      bool
}

// GalleryDetails carries the editable gallery fields
type GalleryDetails struct {
	Title       string
	Description string
	MediaKey    string
	MediaType   MediaType
	Active      bool
}

// NewGalleryItem creates a gallery item; the media type defaults to image
func NewGalleryItem(d GalleryDetails) (*GalleryItem, error) {
	g := &GalleryItem{BaseEntity: shared.NewBaseEntity()}
	if err := g.apply(d); err != nil {
		return nil, err
	}
	return g, nil
}

// Update replaces the editable fields
func (g *GalleryItem) Update(d GalleryDetails) error {
	if err := g.apply(d); err != nil {
		return err
	}
	g.Touch()
	return nil
}

func (g *GalleryItem) apply(d GalleryDetails) error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return shared.InvalidInput("gallery title is required")
	}
	if len(title) > 255 {
		return shared.InvalidInput("gallery title cannot exceed 255 characters")
	}
	if d.MediaType == "" {
		d.MediaType = MediaImage
	}
	if !d.MediaType.IsValid() {
		return shared.InvalidInput("unknown media type: " + string(d.MediaType))
	}
	g.Title = title
	g.Description = d.Description
	g.MediaKey = strings.TrimSpace(d.MediaKey)
	g.MediaType = d.MediaType
	g.Active = d.Active
	return nil
}
