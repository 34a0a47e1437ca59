// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package auth

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardakose/boyama/internal/platform/apperr"
	"github.com/ardakose/boyama/internal/platform/sec"
)

// Credential rejection never touches Redis, so these tests run with a nil
// client. The allow-list round trip is covered by integration tests against
// a real Redis.

func newTestAuthService(t *testing.T) *Service {
	t.Helper()

	tokens, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", "boyama.app")
	require.NoError(t, err)

	hash, err := sec.HashPassword("correct-horse")
	require.NoError(t, err)

	return NewService(tokens, nil, "admin@boyama.app", hash, slog.New(slog.DiscardHandler))
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	service := newTestAuthService(t)

	_, err := service.Login(context.Background(), "admin@boyama.app", "wrong-password")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

func TestLogin_RejectsWrongEmail(t *testing.T) {
	service := newTestAuthService(t)

	_, err := service.Login(context.Background(), "intruder@boyama.app", "correct-horse")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

func TestLogout_NilSessionIsNoop(t *testing.T) {
	service := newTestAuthService(t)

	require.NoError(t, service.Logout(context.Background(), nil))
}
