package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWithdrawalRepository implements payment.WithdrawalRepository using GORM
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewGormWithdrawalRepository creates a new GormWithdrawalRepository
func NewGormWithdrawalRepository(db *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

func (r *GormWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Withdrawal, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

func (r *GormWithdrawalRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*payment.Withdrawal, error) {
	return r.findByID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormWithdrawalRepository) FindAll(ctx context.Context, filter payment.WithdrawalFilter) ([]payment.Withdrawal, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.WithdrawalModel{})
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, WithdrawalSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.WithdrawalModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	items := make([]payment.Withdrawal, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, total, nil
}

func (r *GormWithdrawalRepository) Save(ctx context.Context, w *payment.Withdrawal) error {
	return r.db.WithContext(ctx).Save(models.WithdrawalModelFromDomain(w)).Error
}

func (r *GormWithdrawalRepository) findByID(db *gorm.DB, id uuid.UUID) (*payment.Withdrawal, error) {
	var model models.WithdrawalModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFound("withdrawal request")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ payment.WithdrawalRepository = (*GormWithdrawalRepository)(nil)
