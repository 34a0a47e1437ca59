// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

// Package auth implements single-admin authentication for the CMS surface.
//
// # Architecture
//
// There is no user table. The admin identity lives in configuration (email +
// bcrypt hash) and sessions live in a Redis allow-list keyed by the token's
// 'jti'. Revoking a session is deleting its key; an expired Redis entry
// invalidates the token even before the JWT itself expires.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ardakose/boyama/internal/platform/apperr"
	"github.com/ardakose/boyama/internal/platform/constants"
	"github.com/ardakose/boyama/internal/platform/sec"
)

// Service implements the admin login use case and session verification.
type Service struct {
	tokens            *sec.TokenService
	redis             *redis.Client
	adminEmail        string
	adminPasswordHash string
	logger            *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(tokens *sec.TokenService, redisClient *redis.Client, adminEmail, adminPasswordHash string, logger *slog.Logger) *Service {
	return &Service{
		tokens:            tokens,
		redis:             redisClient,
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		logger:            logger.With(slog.String("component", "auth_service")),
	}
}

// LoginSession is the result of a successful credential check.
type LoginSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

/*
Login validates the admin credentials and issues a session token.

Parameters:
  - ctx: Context for the Redis operation.
  - email: The submitted login email.
  - password: The plain-text password.

Returns:
  - A [*LoginSession] holding the signed JWT and its expiry.
  - Returns [apperr.Unauthorized] when either credential is wrong.

Both the email comparison and the bcrypt check run on every attempt so a
wrong email costs the same as a wrong password.
*/
func (service *Service) Login(ctx context.Context, email, password string) (*LoginSession, error) {
	emailMatches := subtle.ConstantTimeCompare([]byte(email), []byte(service.adminEmail)) == 1
	passwordMatches := sec.CheckPasswordHash(password, service.adminPasswordHash)

	if !emailMatches || !passwordMatches {
		service.logger.WarnContext(ctx, "admin_login_rejected")
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	token, session, err := service.tokens.Generate(service.adminEmail, constants.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to issue session token: %w", err)
	}

	// Record the session in the allow-list. The TTL matches the JWT expiry
	// so Redis garbage-collects revoked-by-time sessions on its own.
	key := constants.RedisPrefixSession + session.TokenID
	if err := service.redis.Set(ctx, key, session.Subject, constants.SessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("auth: failed to record session: %w", err)
	}

	service.logger.InfoContext(ctx, "admin_login_succeeded",
		slog.String("token_id", session.TokenID),
	)

	return &LoginSession{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Verify checks the token signature and the Redis allow-list.
//
// It satisfies [middleware.Verifier]. A token that validates cryptographically
// but has been logged out (allow-list entry gone) is rejected.
func (service *Service) Verify(ctx context.Context, token string) (*sec.Session, error) {
	session, err := service.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	exists, err := service.redis.Exists(ctx, constants.RedisPrefixSession+session.TokenID).Result()
	if err != nil {
		return nil, fmt.Errorf("auth: failed to check session allow-list: %w", err)
	}
	if exists == 0 {
		return nil, apperr.Unauthorized("Session has been revoked")
	}

	return session, nil
}

// Logout revokes the session behind the given token.
//
// Revoking an already-revoked or expired session is not an error.
func (service *Service) Logout(ctx context.Context, session *sec.Session) error {
	if session == nil {
		return nil
	}

	if err := service.redis.Del(ctx, constants.RedisPrefixSession+session.TokenID).Err(); err != nil {
		return fmt.Errorf("auth: failed to revoke session: %w", err)
	}

	service.logger.InfoContext(ctx, "admin_logout",
		slog.String("token_id", session.TokenID),
	)
	return nil
}
