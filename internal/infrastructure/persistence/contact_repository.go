package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/domain/support"
	"github.com/ikpixels/marketplace/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormContactRepository implements support.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*support.ContactMessage, error) {
	var model models.ContactMessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFound("contact message")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormContactRepository) FindAll(ctx context.Context, filter support.ContactFilter) ([]support.ContactMessage, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContactMessageModel{})
	if filter.Handled != nil {
		query = query.Where("handled = ?", *filter.Handled)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, ContactSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.ContactMessageModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	items := make([]support.ContactMessage, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, total, nil
}

func (r *GormContactRepository) Save(ctx context.Context, msg *support.ContactMessage) error {
	return r.db.WithContext(ctx).Save(models.ContactMessageModelFromDomain(msg)).Error
}

var _ support.ContactRepository = (*GormContactRepository)(nil)
