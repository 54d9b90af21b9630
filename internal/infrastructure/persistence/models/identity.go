package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/identity"
)

// AccountModel is the persistence model for the Account aggregate.
type AccountModel struct {
	AggregateModel
	Username     string     `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string     `gorm:"type:varchar(254)"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	FirstName    string     `gorm:"type:varchar(150)"`
	LastName     string     `gorm:"type:varchar(150)"`
	IsAdmin      bool       `gorm:"not null;default:false"`
	LastLoginAt  *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the model to a domain Account
func (m *AccountModel) ToDomain() *identity.Account {
	return &identity.Account{
		BaseAggregateRoot: m.ToAggregate(),
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		IsAdmin:           m.IsAdmin,
		LastLoginAt:       m.LastLoginAt,
	}
}

// AccountModelFromDomain creates an AccountModel from a domain Account
func AccountModelFromDomain(a *identity.Account) *AccountModel {
	m := &AccountModel{
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		IsAdmin:      a.IsAdmin,
		LastLoginAt:  a.LastLoginAt,
	}
	m.SetAggregate(a.BaseAggregateRoot)
	return m
}

// ClientModel is the persistence model for marketplace clients. Each
// account has at most one client row.
type ClientModel struct {
	BaseModel
	AccountID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Phone      string    `gorm:"type:varchar(30)"`
	District   string    `gorm:"type:varchar(100)"`
	Location   string    `gorm:"type:varchar(255)"`
	JoinDate   time.Time `gorm:"not null"`
	IsVerified bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the model to a domain Client
func (m *ClientModel) ToDomain() *identity.Client {
	return &identity.Client{
		BaseEntity: m.ToEntity(),
		AccountID:  m.AccountID,
		Phone:      m.Phone,
		District:   m.District,
		Location:   m.Location,
		JoinDate:   m.JoinDate,
		IsVerified: m.IsVerified,
	}
}

// ClientModelFromDomain creates a ClientModel from a domain Client
func ClientModelFromDomain(c *identity.Client) *ClientModel {
	m := &ClientModel{
		AccountID:  c.AccountID,
		Phone:      c.Phone,
		District:   c.District,
		Location:   c.Location,
		JoinDate:   c.JoinDate,
		IsVerified: c.IsVerified,
	}
	m.SetEntity(c.BaseEntity)
	return m
}
