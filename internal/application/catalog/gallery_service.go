package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const (
	// GalleryPageLimit is how many items the public gallery shows
	GalleryPageLimit = 12
	// HomeFeatureCount is how many products and gallery items the home feed shows
	HomeFeatureCount = 3
)

// GalleryService serves the showcase gallery and the home feed
type GalleryService struct {
	gallery        catalog.GalleryRepository
	products       catalog.ProductRepository
	storage        ObjectStorage
	mediaURLExpiry time.Duration
	logger         *zap.Logger
}

// NewGalleryService creates a new GalleryService
func NewGalleryService(
	gallery catalog.GalleryRepository,
	products catalog.ProductRepository,
	storage ObjectStorage,
	mediaURLExpiry time.Duration,
	log *zap.Logger,
) *GalleryService {
	if mediaURLExpiry <= 0 {
		mediaURLExpiry = DefaultProductServiceConfig().ImageURLExpiry
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GalleryService{
		gallery:        gallery,
		products:       products,
		storage:        storage,
		mediaURLExpiry: mediaURLExpiry,
		logger:         log,
	}
}

// ListGallery returns the latest active gallery items
func (s *GalleryService) ListGallery(ctx context.Context) ([]GalleryItemResponse, error) {
	items, err := s.gallery.ListActive(ctx, GalleryPageLimit, false)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, items), nil
}

// Home returns the newest products and the first active gallery items
func (s *GalleryService) Home(ctx context.Context) (*HomeResponse, error) {
	products, _, err := s.products.FindAll(ctx, catalog.ProductFilter{
		Filter: shared.Filter{Page: 1, PageSize: HomeFeatureCount, OrderBy: "created_at", OrderDir: "desc"},
	})
	if err != nil {
		return nil, err
	}
	items, err := s.gallery.ListActive(ctx, HomeFeatureCount, true)
	if err != nil {
		return nil, err
	}

	resp := &HomeResponse{
		Products: make([]ProductListItem, len(products)),
		Gallery:  s.toResponses(ctx, items),
	}
	for i := range products {
		url, err := signAsset(ctx, s.storage, products[i].ImageKey, s.mediaURLExpiry)
		if err != nil {
			logger.Enrich(ctx, s.logger).Warn("Failed to sign product image",
				zap.String("product_id", products[i].ID.String()),
				zap.Error(err),
			)
		}
		resp.Products[i] = toListItem(&products[i], url)
	}
	return resp, nil
}

// ListGalleryAdmin pages through every gallery item
func (s *GalleryService) ListGalleryAdmin(ctx context.Context, filter shared.Filter) (*shared.Paginated[GalleryItemResponse], error) {
	items, total, err := s.gallery.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(s.toResponses(ctx, items), total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetGalleryItem returns one gallery item
func (s *GalleryService) GetGalleryItem(ctx context.Context, id uuid.UUID) (*GalleryItemResponse, error) {
	g, err := s.gallery.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, g)
	return &resp, nil
}

// CreateGalleryItem adds a gallery item
func (s *GalleryService) CreateGalleryItem(ctx context.Context, req GalleryRequest) (*GalleryItemResponse, error) {
	g, err := catalog.NewGalleryItem(req.details())
	if err != nil {
		return nil, err
	}
	if err := s.gallery.Save(ctx, g); err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Gallery item created", zap.String("gallery_id", g.ID.String()))
	resp := s.toResponse(ctx, g)
	return &resp, nil
}

// UpdateGalleryItem replaces the editable fields of a gallery item
func (s *GalleryService) UpdateGalleryItem(ctx context.Context, id uuid.UUID, req GalleryRequest) (*GalleryItemResponse, error) {
	g, err := s.gallery.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.gallery.Save(ctx, g); err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, g)
	return &resp, nil
}

// DeleteGalleryItem removes a gallery item and its stored media
func (s *GalleryService) DeleteGalleryItem(ctx context.Context, id uuid.UUID) error {
	g, err := s.gallery.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gallery.Delete(ctx, id); err != nil {
		return err
	}

	log := logger.Enrich(ctx, s.logger).With(zap.String("gallery_id", id.String()))
	if g.MediaKey != "" && !isAbsoluteURL(g.MediaKey) {
		if err := s.storage.Delete(ctx, g.MediaKey); err != nil {
			log.Warn("Failed to delete gallery media", zap.String("key", g.MediaKey), zap.Error(err))
		}
	}
	log.Info("Gallery item deleted")
	return nil
}

func (s *GalleryService) toResponses(ctx context.Context, items []catalog.GalleryItem) []GalleryItemResponse {
	out := make([]GalleryItemResponse, len(items))
	for i := range items {
		out[i] = s.toResponse(ctx, &items[i])
	}
	return out
}

func (s *GalleryService) toResponse(ctx context.Context, g *catalog.GalleryItem) GalleryItemResponse {
	url, err := signAsset(ctx, s.storage, g.MediaKey, s.mediaURLExpiry)
	if err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to sign gallery media",
			zap.String("gallery_id", g.ID.String()),
			zap.Error(err),
		)
	}
	return GalleryItemResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		MediaType:   string(g.MediaType),
		MediaURL:    url,
		Active:      g.Active,
		CreatedAt:   g.CreatedAt,
	}
}
