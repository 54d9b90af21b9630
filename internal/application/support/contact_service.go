// Package support runs the contact inbox.
package support

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/identity"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/domain/support"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ContactService accepts contact form messages and lists them for admins
type ContactService struct {
	messages support.ContactRepository
	clients  identity.ClientRepository
	logger   *zap.Logger
}

// NewContactService creates a new ContactService
func NewContactService(messages support.ContactRepository, clients identity.ClientRepository, log *zap.Logger) *ContactService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactService{
		messages: messages,
		clients:  clients,
		logger:   log.Named("contact"),
	}
}

// Submit stores a message. A signed-in sender's client is linked when one
// exists; no client is created for it.
func (s *ContactService) Submit(ctx context.Context, accountID *uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	var clientID *uuid.UUID
	if accountID != nil {
		client, err := s.clients.FindByAccountID(ctx, *accountID)
		switch {
		case err == nil:
			clientID = &client.ID
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}

	msg, err := support.NewContactMessage(clientID, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.messages.Save(ctx, msg); err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Contact message received",
		zap.String("message_id", msg.ID.String()),
		zap.Bool("signed_in", clientID != nil),
	)
	resp := ToContactResponse(msg)
	return &resp, nil
}

// List pages through the inbox, newest first
func (s *ContactService) List(ctx context.Context, f ContactListFilter) (*shared.Paginated[ContactResponse], error) {
	filter := support.ContactFilter{Filter: shared.DefaultFilter(), Handled: f.Handled}
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 && f.PageSize <= 100 {
		filter.PageSize = f.PageSize
	}

	rows, total, err := s.messages.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]ContactResponse, len(rows))
	for i := range rows {
		items[i] = ToContactResponse(&rows[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// MarkHandled closes a message
func (s *ContactService) MarkHandled(ctx context.Context, id uuid.UUID) (*ContactResponse, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := msg.MarkHandled(); err != nil {
		return nil, err
	}
	if err := s.messages.Save(ctx, msg); err != nil {
		return nil, err
	}
	resp := ToContactResponse(msg)
	return &resp, nil
}
