package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/identity"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormClientRepository implements identity.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Client, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *GormClientRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*identity.Client, error) {
	return r.findOne(ctx, "account_id = ?", accountID)
}

// GetOrCreateByAccountID returns the account's client, inserting one when
// missing. A concurrent insert surfaces as a unique violation, after which
// the winner's row is returned.
func (r *GormClientRepository) GetOrCreateByAccountID(ctx context.Context, accountID uuid.UUID) (*identity.Client, error) {
	existing, err := r.FindByAccountID(ctx, accountID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	client, err := identity.NewClient(accountID)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(models.ClientModelFromDomain(client)).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.FindByAccountID(ctx, accountID)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *GormClientRepository) Save(ctx context.Context, client *identity.Client) error {
	return r.db.WithContext(ctx).Save(models.ClientModelFromDomain(client)).Error
}

func (r *GormClientRepository) findOne(ctx context.Context, query string, arg any) (*identity.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFound("client")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ identity.ClientRepository = (*GormClientRepository)(nil)
