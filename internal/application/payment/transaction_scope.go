package payment

import (
	"context"

	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/ikpixels/marketplace/internal/domain/order"
	"github.com/ikpixels/marketplace/internal/domain/payment"
)

// TransactionScope runs repository work atomically. If fn returns an
// error the transaction is rolled back, otherwise it is committed.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to one transaction.
type TransactionalRepositories interface {
	Orders() order.Repository
	Attempts() payment.AttemptRepository
	Products() catalog.ProductRepository
	Withdrawals() payment.WithdrawalRepository
}
