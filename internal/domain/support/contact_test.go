package support

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContactMessage(t *testing.T) {
	clientID := uuid.New()
	msg, err := NewContactMessage(&clientID, ContactDetails{
		FirstName: " Thoko ",
		Email:     "thoko@example.mw",
		Subject:   "Custom build",
		Message:   "  Can you build a school fees portal? ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Thoko", msg.FirstName)
	assert.Equal(t, "Can you build a school fees portal?", msg.Message)
	assert.Equal(t, &clientID, msg.ClientID)
	assert.False(t, msg.Handled)

	tests := []struct {
		name    string
		details ContactDetails
	}{
		{"missing email", ContactDetails{Message: "hi"}},
		{"bad email", ContactDetails{Email: "not-an-email", Message: "hi"}},
		{"empty message", ContactDetails{Email: "a@example.mw", Message: "   "}},
		{"long message", ContactDetails{Email: "a@example.mw", Message: strings.Repeat("x", maxMessageLength+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContactMessage(nil, tt.details)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestContactMessage_MarkHandled(t *testing.T) {
	msg, err := NewContactMessage(nil, ContactDetails{Email: "a@example.mw", Message: "hello"})
	require.NoError(t, err)
	assert.Nil(t, msg.ClientID)

	require.NoError(t, msg.MarkHandled())
	assert.True(t, msg.Handled)
	assert.True(t, errors.Is(msg.MarkHandled(), shared.ErrInvalidState))
}
