// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardakose/boyama/internal/platform/ctxutil"
	"github.com/ardakose/boyama/internal/platform/sec"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", ctxutil.GetRequestID(context.Background()))
}

func TestLogger_RoundTrip(t *testing.T) {
	logger := slog.Default().With(slog.String("test", "value"))
	ctx := ctxutil.WithLogger(context.Background(), logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

func TestLogger_FallsBackToDefault(t *testing.T) {
	logger := ctxutil.GetLogger(context.Background())
	require.NotNil(t, logger)
	assert.Same(t, slog.Default(), logger)
}

func TestSession_RoundTrip(t *testing.T) {
	session := &sec.Session{
		Subject:   "admin@boyama.app",
		TokenID:   "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	ctx := ctxutil.WithSession(context.Background(), session)
	assert.Same(t, session, ctxutil.GetSession(ctx))
}

func TestSession_AnonymousIsNil(t *testing.T) {
	assert.Nil(t, ctxutil.GetSession(context.Background()))
}
