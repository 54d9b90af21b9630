package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// PaymentAttemptModel is the persistence model for payment attempts.
type PaymentAttemptModel struct {
	AggregateModel
	OrderID     *uuid.UUID            `gorm:"type:uuid;index"`
	TxRef       string                `gorm:"type:varchar(100);not null;uniqueIndex"`
	Channel     payment.Channel       `gorm:"type:varchar(20);not null"`
	Method      payment.Method        `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	Email       string                `gorm:"type:varchar(254)"`
	Metadata    map[string]string     `gorm:"type:text;serializer:json"`
	Status      payment.AttemptStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RawResponse string                `gorm:"type:text"`
	VerifiedAt  *time.Time            `gorm:""`
}

// TableName returns the table name for GORM
func (PaymentAttemptModel) TableName() string {
	return "payment_attempts"
}

// ToDomain converts the model to a domain Attempt
func (m *PaymentAttemptModel) ToDomain() *payment.Attempt {
	metadata := m.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &payment.Attempt{
		BaseAggregateRoot: m.ToAggregate(),
		OrderID:           m.OrderID,
		TxRef:             m.TxRef,
		Channel:           m.Channel,
		Method:            m.Method,
		Amount:            m.Amount,
		Email:             m.Email,
		Metadata:          metadata,
		Status:            m.Status,
		RawResponse:       m.RawResponse,
		VerifiedAt:        m.VerifiedAt,
	}
}

// PaymentAttemptModelFromDomain creates a PaymentAttemptModel from a domain Attempt
func PaymentAttemptModelFromDomain(a *payment.Attempt) *PaymentAttemptModel {
	m := &PaymentAttemptModel{
		OrderID:     a.OrderID,
		TxRef:       a.TxRef,
		Channel:     a.Channel,
		Method:      a.Method,
		Amount:      a.Amount,
		Email:       a.Email,
		Metadata:    a.Metadata,
		Status:      a.Status,
		RawResponse: a.RawResponse,
		VerifiedAt:  a.VerifiedAt,
	}
	m.SetAggregate(a.BaseAggregateRoot)
	return m
}

// WithdrawalModel is the persistence model for withdrawal requests.
type WithdrawalModel struct {
	AggregateModel
	ClientID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal          `gorm:"type:decimal(12,2);not null"`
	Method          payment.WithdrawalMethod `gorm:"type:varchar(20);not null"`
	AccountInfo     string                   `gorm:"type:varchar(255);not null"`
	Status          payment.WithdrawalStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PayoutReference string                   `gorm:"type:varchar(100)"`
	FailureReason   string                   `gorm:"type:text"`
	RawResponse     string                   `gorm:"type:text"`
	ProcessedAt     *time.Time               `gorm:""`
}

// TableName returns the table name for GORM
func (WithdrawalModel) TableName() string {
	return "withdrawal_requests"
}

// ToDomain converts the model to a domain Withdrawal
func (m *WithdrawalModel) ToDomain() *payment.Withdrawal {
	return &payment.Withdrawal{
		BaseAggregateRoot: m.ToAggregate(),
		ClientID:          m.ClientID,
		Amount:            m.Amount,
		Method:            m.Method,
		AccountInfo:       m.AccountInfo,
		Status:            m.Status,
		PayoutReference:   m.PayoutReference,
		FailureReason:     m.FailureReason,
		RawResponse:       m.RawResponse,
		ProcessedAt:       m.ProcessedAt,
	}
}

// WithdrawalModelFromDomain creates a WithdrawalModel from a domain Withdrawal
func WithdrawalModelFromDomain(w *payment.Withdrawal) *WithdrawalModel {
	m := &WithdrawalModel{
		ClientID:        w.ClientID,
		Amount:          w.Amount,
		Method:          w.Method,
		AccountInfo:     w.AccountInfo,
		Status:          w.Status,
		PayoutReference: w.PayoutReference,
		FailureReason:   w.FailureReason,
		RawResponse:     w.RawResponse,
		ProcessedAt:     w.ProcessedAt,
	}
	m.SetAggregate(w.BaseAggregateRoot)
	return m
}

// AllModels lists every persistence model, in dependency order, for
// schema migration in tests and development.
func AllModels() []any {
	return []any{
		&AccountModel{},
		&ClientModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&PaymentAttemptModel{},
		&WithdrawalModel{},
		&GalleryItemModel{},
		&ContactMessageModel{},
	}
}
