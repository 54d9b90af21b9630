package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormGalleryRepository implements catalog.GalleryRepository using GORM
type GormGalleryRepository struct {
	db *gorm.DB
}

// NewGormGalleryRepository creates a new GormGalleryRepository
func NewGormGalleryRepository(db *gorm.DB) *GormGalleryRepository {
	return &GormGalleryRepository{db: db}
}

func (r *GormGalleryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.GalleryItem, error) {
	var model models.GalleryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFound("gallery item")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormGalleryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.GalleryItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GalleryItemModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, GallerySortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.GalleryItemModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toDomainGallery(rows), total, nil
}

func (r *GormGalleryRepository) ListActive(ctx context.Context, limit int, oldestFirst bool) ([]catalog.GalleryItem, error) {
	order := "created_at DESC"
	if oldestFirst {
		order = "created_at ASC"
	}
	var rows []models.GalleryItemModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order(order).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainGallery(rows), nil
}

func (r *GormGalleryRepository) Save(ctx context.Context, item *catalog.GalleryItem) error {
	return r.db.WithContext(ctx).Save(models.GalleryItemModelFromDomain(item)).Error
}

func (r *GormGalleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.GalleryItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("gallery item")
	}
	return nil
}

func toDomainGallery(rows []models.GalleryItemModel) []catalog.GalleryItem {
	items := make([]catalog.GalleryItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items
}

var _ catalog.GalleryRepository = (*GormGalleryRepository)(nil)
