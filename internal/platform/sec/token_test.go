// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenService_RoundTrip(t *testing.T) {
	service, err := NewTokenService(testSecret, "boyama.app")
	require.NoError(t, err)

	token, session, err := service.Generate("admin@boyama.app", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, session.TokenID)

	verified, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "admin@boyama.app", verified.Subject)
	assert.Equal(t, session.TokenID, verified.TokenID)
	assert.WithinDuration(t, session.ExpiresAt, verified.ExpiresAt, time.Second)
}

func TestTokenService_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenService("too-short", "boyama.app")
	require.Error(t, err)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	signer, err := NewTokenService(testSecret, "boyama.app")
	require.NoError(t, err)

	verifier, err := NewTokenService("ffffffffffffffffffffffffffffffff", "boyama.app")
	require.NoError(t, err)

	token, _, err := signer.Generate("admin@boyama.app", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	service, err := NewTokenService(testSecret, "boyama.app")
	require.NoError(t, err)

	token, _, err := service.Generate("admin@boyama.app", -time.Minute)
	require.NoError(t, err)

	_, err = service.Verify(token)
	require.Error(t, err)
}

func TestTokenService_RejectsWrongIssuer(t *testing.T) {
	signer, err := NewTokenService(testSecret, "somewhere-else")
	require.NoError(t, err)

	verifier, err := NewTokenService(testSecret, "boyama.app")
	require.NoError(t, err)

	token, _, err := signer.Generate("admin@boyama.app", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}
