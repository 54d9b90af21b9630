package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/identity"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"github.com/ikpixels/marketplace/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// WithdrawalService handles client payout requests
type WithdrawalService struct {
	clients     identity.ClientRepository
	withdrawals payment.WithdrawalRepository
	gateway     payment.Gateway
	txScope     TransactionScope
	logger      *zap.Logger
}

// NewWithdrawalService creates a new WithdrawalService
func NewWithdrawalService(
	clients identity.ClientRepository,
	withdrawals payment.WithdrawalRepository,
	gateway payment.Gateway,
	txScope TransactionScope,
	logger *zap.Logger,
) *WithdrawalService {
	return &WithdrawalService{
		clients:     clients,
		withdrawals: withdrawals,
		gateway:     gateway,
		txScope:     txScope,
		logger:      logger.Named("withdrawals"),
	}
}

// RequestWithdrawal records a pending payout request for the account's client
func (s *WithdrawalService) RequestWithdrawal(ctx context.Context, accountID uuid.UUID, in RequestWithdrawalInput) (*WithdrawalResponse, error) {
	method := payment.WithdrawalMethod(strings.ToLower(strings.TrimSpace(in.Method)))
	if !method.IsValid() {
		return nil, shared.InvalidInput("method must be one of bank, airtel, mpamba, paypal")
	}
	client, err := s.clients.GetOrCreateByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	w, err := payment.NewWithdrawal(client.ID, in.Amount, method, in.AccountInfo)
	if err != nil {
		return nil, err
	}
	if err := s.withdrawals.Save(ctx, w); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Withdrawal requested",
		zap.String("withdrawal_id", w.ID.String()),
		zap.String("method", string(method)),
		zap.String("amount", w.Amount.String()),
	)
	resp := ToWithdrawalResponse(w)
	return &resp, nil
}

// ListMyWithdrawals lists the account's own requests
func (s *WithdrawalService) ListMyWithdrawals(ctx context.Context, accountID uuid.UUID, f WithdrawalListFilter) (*shared.Paginated[WithdrawalResponse], error) {
	client, err := s.clients.FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			empty := shared.NewPaginated([]WithdrawalResponse{}, 0, pageOrDefault(f.Page), pageSizeOrDefault(f.PageSize))
			return &empty, nil
		}
		return nil, err
	}
	return s.list(ctx, &client.ID, f)
}

// ListWithdrawals lists every request, for administrators
func (s *WithdrawalService) ListWithdrawals(ctx context.Context, f WithdrawalListFilter) (*shared.Paginated[WithdrawalResponse], error) {
	return s.list(ctx, nil, f)
}

func (s *WithdrawalService) list(ctx context.Context, clientID *uuid.UUID, f WithdrawalListFilter) (*shared.Paginated[WithdrawalResponse], error) {
	filter := payment.WithdrawalFilter{Filter: shared.DefaultFilter(), ClientID: clientID}
	filter.Page = pageOrDefault(f.Page)
	filter.PageSize = pageSizeOrDefault(f.PageSize)
	if status := strings.TrimSpace(f.Status); status != "" {
		st := payment.WithdrawalStatus(strings.ToLower(status))
		if st != payment.WithdrawalPending && !st.IsFinal() {
			return nil, shared.InvalidInput("unknown withdrawal status: " + status)
		}
		filter.Status = &st
	}

	rows, total, err := s.withdrawals.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]WithdrawalResponse, len(rows))
	for i := range rows {
		items[i] = ToWithdrawalResponse(&rows[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ProcessWithdrawal settles a pending request. Mobile money requests are
// paid out through the gateway while the row is locked, so a request is
// never paid twice; other methods are marked processed with the given
// manual reference.
func (s *WithdrawalService) ProcessWithdrawal(ctx context.Context, id uuid.UUID, in ProcessWithdrawalInput) (*WithdrawalResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "withdrawal", "process", "withdrawal.id", id)
	defer span.End()
	log := logger.Enrich(ctx, s.logger).With(zap.String("withdrawal_id", id.String()))

	var (
		result    *payment.Withdrawal
		payoutErr error
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		w, err := repos.Withdrawals().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if w.Status.IsFinal() {
			return payment.ErrWithdrawalSettled
		}

		operator, mobile := w.Method.Operator()
		if !mobile {
			reference := strings.TrimSpace(in.Reference)
			if reference == "" {
				reference = "manual"
			}
			if err := w.MarkProcessed(reference, ""); err != nil {
				return err
			}
			result = w
			return repos.Withdrawals().Save(ctx, w)
		}

		payout, err := s.gateway.InitiatePayout(ctx, payment.PayoutRequest{
			Operator: operator,
			Phone:    w.AccountInfo,
			Amount:   w.Amount,
		})
		if err != nil {
			return err
		}
		switch payout.Status {
		case payment.OutcomeSuccess, payment.OutcomePending:
			err = w.MarkProcessed(payout.Reference, payout.RawResponse)
		case payment.OutcomeFailed:
			err = w.MarkFailed(payout.Message, payout.RawResponse)
			payoutErr = gatewayError(payout.Status, payout.Message)
		default:
			log.Warn("Payout gateway unavailable", zap.String("message", payout.Message))
			return gatewayError(payout.Status, payout.Message)
		}
		if err != nil {
			return err
		}
		result = w
		return repos.Withdrawals().Save(ctx, w)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	log.Info("Withdrawal settled", zap.String("status", string(result.Status)))
	resp := ToWithdrawalResponse(result)
	if payoutErr != nil {
		return &resp, payoutErr
	}
	return &resp, nil
}

// FailWithdrawal rejects a pending request with a reason
func (s *WithdrawalService) FailWithdrawal(ctx context.Context, id uuid.UUID, reason string) (*WithdrawalResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.InvalidInput("reason is required")
	}
	var result *payment.Withdrawal
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		w, err := repos.Withdrawals().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := w.MarkFailed(reason, ""); err != nil {
			return err
		}
		result = w
		return repos.Withdrawals().Save(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	resp := ToWithdrawalResponse(result)
	return &resp, nil
}

func pageOrDefault(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func pageSizeOrDefault(size int) int {
	if size < 1 || size > 100 {
		return 20
	}
	return size
}
