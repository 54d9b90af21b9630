package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentAttemptRepository implements payment.AttemptRepository using GORM
type GormPaymentAttemptRepository struct {
	db *gorm.DB
}

// NewGormPaymentAttemptRepository creates a new GormPaymentAttemptRepository
func NewGormPaymentAttemptRepository(db *gorm.DB) *GormPaymentAttemptRepository {
	return &GormPaymentAttemptRepository{db: db}
}

func (r *GormPaymentAttemptRepository) FindByTxRef(ctx context.Context, txRef string) (*payment.Attempt, error) {
	return r.findByTxRef(r.db.WithContext(ctx), txRef)
}

// FindByTxRefForUpdate locks the attempt row until the surrounding
// transaction ends. Concurrent verifications of the same tx_ref serialize here.
func (r *GormPaymentAttemptRepository) FindByTxRefForUpdate(ctx context.Context, txRef string) (*payment.Attempt, error) {
	return r.findByTxRef(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), txRef)
}

func (r *GormPaymentAttemptRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]payment.Attempt, error) {
	var rows []models.PaymentAttemptModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	attempts := make([]payment.Attempt, len(rows))
	for i := range rows {
		attempts[i] = *rows[i].ToDomain()
	}
	return attempts, nil
}

func (r *GormPaymentAttemptRepository) Create(ctx context.Context, attempt *payment.Attempt) error {
	if err := r.db.WithContext(ctx).Create(models.PaymentAttemptModelFromDomain(attempt)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.CodeAlreadyExists, "payment attempt "+attempt.TxRef+" already exists")
		}
		return err
	}
	return nil
}

// SettleIfPending writes the attempt's terminal state with a conditional
// update on status = 'pending'. It returns false when another caller has
// already settled the row.
func (r *GormPaymentAttemptRepository) SettleIfPending(ctx context.Context, attempt *payment.Attempt) (bool, error) {
	if !attempt.Status.IsFinal() {
		return false, shared.InvalidState("attempt has no terminal status to persist")
	}
	result := r.db.WithContext(ctx).Model(&models.PaymentAttemptModel{}).
		Where("id = ? AND status = ?", attempt.ID, payment.AttemptPending).
		Updates(map[string]any{
			"status":       attempt.Status,
			"raw_response": attempt.RawResponse,
			"verified_at":  attempt.VerifiedAt,
			"version":      attempt.Version,
			"updated_at":   attempt.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// UpdateRawResponse stores the latest gateway payload on a pending attempt
func (r *GormPaymentAttemptRepository) UpdateRawResponse(ctx context.Context, attempt *payment.Attempt) error {
	result := r.db.WithContext(ctx).Model(&models.PaymentAttemptModel{}).
		Where("id = ? AND status = ?", attempt.ID, payment.AttemptPending).
		Updates(map[string]any{
			"raw_response": attempt.RawResponse,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return payment.ErrAttemptSettled
	}
	return nil
}

func (r *GormPaymentAttemptRepository) findByTxRef(db *gorm.DB, txRef string) (*payment.Attempt, error) {
	var model models.PaymentAttemptModel
	if err := db.Where("tx_ref = ?", txRef).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFound("payment attempt")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ payment.AttemptRepository = (*GormPaymentAttemptRepository)(nil)
