package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/ikpixels/marketplace/internal/domain/identity"
	"github.com/ikpixels/marketplace/internal/domain/order"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const summaryLength = 160

// ProductServiceConfig holds URL lifetimes for storage links
type ProductServiceConfig struct {
	ImageURLExpiry    time.Duration
	DownloadURLExpiry time.Duration
	UploadURLExpiry   time.Duration
}

// DefaultProductServiceConfig returns the default configuration
func DefaultProductServiceConfig() ProductServiceConfig {
	return ProductServiceConfig{
		ImageURLExpiry:    time.Hour,
		DownloadURLExpiry: 15 * time.Minute,
		UploadURLExpiry:   15 * time.Minute,
	}
}

// ProductService serves the public marketplace and admin catalog
type ProductService struct {
	products catalog.ProductRepository
	clients  identity.ClientRepository
	orders   order.Repository
	storage  ObjectStorage
	config   ProductServiceConfig
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	clients identity.ClientRepository,
	orders order.Repository,
	storage ObjectStorage,
	config ProductServiceConfig,
	log *zap.Logger,
) *ProductService {
	defaults := DefaultProductServiceConfig()
	if config.ImageURLExpiry <= 0 {
		config.ImageURLExpiry = defaults.ImageURLExpiry
	}
	if config.DownloadURLExpiry <= 0 {
		config.DownloadURLExpiry = defaults.DownloadURLExpiry
	}
	if config.UploadURLExpiry <= 0 {
		config.UploadURLExpiry = defaults.UploadURLExpiry
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{
		products: products,
		clients:  clients,
		orders:   orders,
		storage:  storage,
		config:   config,
		logger:   log,
	}
}

// ListMarketplace returns one page of products. Category "all" or empty
// means no category filter; pages outside the range clamp to the nearest.
func (s *ProductService) ListMarketplace(ctx context.Context, q MarketplaceQuery) (*MarketplacePage, error) {
	filter := catalog.ProductFilter{Filter: shared.Filter{
		Page:     q.Page,
		PageSize: MarketplacePageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Search:   strings.TrimSpace(q.Search),
	}}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if c := strings.TrimSpace(q.Category); c != "" && !strings.EqualFold(c, "all") {
		category, err := catalog.ParseCategory(c)
		if err != nil {
			return nil, err
		}
		filter.Category = &category
	}

	products, total, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	page := shared.NewPaginated(products, total, filter.Page, MarketplacePageSize)
	if len(products) == 0 && total > 0 && filter.Page > page.TotalPages {
		filter.Page = page.TotalPages
		if products, total, err = s.products.FindAll(ctx, filter); err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		page = shared.NewPaginated(products, total, filter.Page, MarketplacePageSize)
	}

	items := make([]ProductListItem, len(products))
	for i := range products {
		items[i] = toListItem(&products[i], s.imageURL(ctx, &products[i]))
	}
	categories := make([]string, 0, 4)
	for _, c := range catalog.AllCategories() {
		categories = append(categories, c.String())
	}
	return &MarketplacePage{
		Products:   items,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		HasNext:    page.HasNext,
		HasPrev:    page.Page > 1,
		Categories: categories,
	}, nil
}

// GetProductDetail counts a view and returns the product
func (s *ProductService) GetProductDetail(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if err := s.products.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, s.imageURL(ctx, p)), nil
}

// GetProduct returns the product without counting a view
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, s.imageURL(ctx, p)), nil
}

// CreateProduct adds a product to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	details, err := req.details()
	if err != nil {
		return nil, err
	}
	p, err := catalog.NewProduct(details)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	logger.Enrich(ctx, s.logger).Info("Product created",
		zap.String("product_id", p.ID.String()),
		zap.String("category", p.Category.String()),
	)
	return toProductResponse(p, s.imageURL(ctx, p)), nil
}

// UpdateProduct replaces the editable fields of a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	details, err := req.details()
	if err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(details); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return toProductResponse(p, s.imageURL(ctx, p)), nil
}

// DeleteProduct removes a product nobody has ordered yet
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	log := logger.Enrich(ctx, s.logger).With(zap.String("product_id", id.String()))
	for _, key := range []string{p.ImageKey, p.FileURL} {
		if key == "" || isAbsoluteURL(key) {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Warn("Failed to delete product asset", zap.String("key", key), zap.Error(err))
		}
	}
	log.Info("Product deleted")
	return nil
}

// CreateUploadURL reserves a storage key for a product image, a
// deliverable or gallery media
func (s *ProductService) CreateUploadURL(ctx context.Context, req UploadURLRequest) (*UploadURLResponse, error) {
	name := sanitizeFileName(req.FileName)
	if name == "" {
		return nil, shared.InvalidInput("file_name is required")
	}
	prefix := "products/images"
	switch req.Kind {
	case "file":
		prefix = "products/files"
	case "gallery":
		prefix = "gallery"
	}
	key := path.Join(prefix, uuid.NewString(), name)

	url, expiresAt, err := s.storage.PresignUpload(ctx, key, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return &UploadURLResponse{Key: key, UploadURL: url, ExpiresAt: expiresAt}, nil
}

// ProductDownloadURL returns a link to the deliverable of a product the
// account has paid for.
func (s *ProductService) ProductDownloadURL(ctx context.Context, accountID, productID uuid.UUID) (*DownloadResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.FileURL == "" {
		return nil, shared.NewDomainError(shared.CodeNotFound, "Product has no downloadable file")
	}

	client, err := s.clients.FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errNotPurchased
		}
		return nil, err
	}
	paid, err := s.orders.FindPaidByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	if !containsProduct(paid, productID) {
		return nil, errNotPurchased
	}

	if isAbsoluteURL(p.FileURL) {
		return &DownloadResponse{ProductID: productID, URL: p.FileURL}, nil
	}
	url, expiresAt, err := s.storage.PresignDownload(ctx, p.FileURL, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	logger.Enrich(ctx, s.logger).Info("Deliverable link issued",
		zap.String("product_id", productID.String()),
		zap.String("client_id", client.ID.String()),
	)
	return &DownloadResponse{ProductID: productID, URL: url, ExpiresAt: expiresAt}, nil
}

var errNotPurchased = shared.NewDomainError(shared.CodeForbidden, "Product has not been purchased")

func containsProduct(orders []order.Order, productID uuid.UUID) bool {
	for i := range orders {
		if orders[i].FindItem(productID) != nil {
			return true
		}
	}
	return false
}

// imageURL resolves a stored image key to a browser-usable URL. A failure
// to sign drops the image rather than the page.
func (s *ProductService) imageURL(ctx context.Context, p *catalog.Product) string {
	url, err := signAsset(ctx, s.storage, p.ImageKey, s.config.ImageURLExpiry)
	if err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to sign product image",
			zap.String("product_id", p.ID.String()),
			zap.Error(err),
		)
	}
	return url
}

// signAsset turns a storage key into a GET URL. Empty keys and absolute
// URLs are returned as they are.
func signAsset(ctx context.Context, storage ObjectStorage, key string, expiresIn time.Duration) (string, error) {
	if key == "" || isAbsoluteURL(key) {
		return key, nil
	}
	url, _, err := storage.PresignDownload(ctx, key, expiresIn)
	if err != nil {
		return "", err
	}
	return url, nil
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}
