// Package mocks provides testify mocks for the external boundaries the
// handlers and services depend on.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/fridgechef/backend/internal/types"
)

// MockChatProvider is a mock generation provider. Tests script its
// responses instead of calling the real API.
type MockChatProvider struct {
	mock.Mock
}

func (m *MockChatProvider) CreateChatCompletion(ctx context.Context, systemMessage, prompt string) (string, error) {
	args := m.Called(ctx, systemMessage, prompt)
	return args.String(0), args.Error(1)
}

// MockTokenValidator is a mock token validator for handler tests that
// don't want a real auth service behind the middleware.
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}
