package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/order"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFound("order")
		}
		return nil, err
	}
	if err := r.loadItems(ctx, r.db, &model); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate locks the order row (SELECT ... FOR UPDATE) and loads
// its items. It must run inside a transaction.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFound("order")
		}
		return nil, err
	}
	if err := r.loadItems(ctx, r.db, &model); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetOrCreatePending returns the client's unpaid order, inserting one when
// missing. The insert runs in its own (nested) transaction so that a unique
// violation from a concurrent request leaves any outer transaction usable.
func (r *GormOrderRepository) GetOrCreatePending(ctx context.Context, clientID uuid.UUID) (*order.Order, error) {
	existing, err := r.findPending(ctx, clientID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	pending, err := order.NewPendingOrder(clientID)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(models.OrderModelFromDomain(pending)).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.findPending(ctx, clientID)
	}
	if err != nil {
		return nil, err
	}
	return pending, nil
}

// FindPaidByClient lists the client's paid orders, newest first
func (r *GormOrderRepository) FindPaidByClient(ctx context.Context, clientID uuid.UUID) ([]order.Order, error) {
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("client_id = ? AND paid = ?", clientID, true).
		Order("paid_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Save persists the order. An unpaid order has its header touched and its
// items replaced. A paid order is written with a conditional update on
// paid = false so that an order is finalized at most once. Either path
// fails with order.ErrOrderPaid when the stored row is already paid.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if o.Paid {
			result := tx.Model(&models.OrderModel{}).
				Where("id = ? AND paid = ?", o.ID, false).
				Updates(map[string]any{
					"paid":       true,
					"total":      model.Total,
					"paid_at":    model.PaidAt,
					"version":    model.Version,
					"updated_at": model.UpdatedAt,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return order.ErrOrderPaid
			}
			return nil
		}

		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND paid = ?", o.ID, false).
			Updates(map[string]any{
				"version":    model.Version,
				"updated_at": model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&models.OrderModel{}).Where("id = ?", o.ID).Count(&exists).Error; err != nil {
				return err
			}
			if exists > 0 {
				return order.ErrOrderPaid
			}
			if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("order_id = ?", o.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormOrderRepository) findPending(ctx context.Context, clientID uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND paid = ?", clientID, false).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFound("pending order")
		}
		return nil, err
	}
	if err := r.loadItems(ctx, r.db, &model); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormOrderRepository) loadItems(ctx context.Context, db *gorm.DB, model *models.OrderModel) error {
	return db.WithContext(ctx).
		Where("order_id = ?", model.ID).
		Order("created_at ASC").
		Find(&model.Items).Error
}

var _ order.Repository = (*GormOrderRepository)(nil)
