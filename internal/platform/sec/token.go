// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, token signing) from
// the domain logic. The ingestion, search, and invalidation components never
// import it; only the auth service and the HTTP middleware do.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ardakose/boyama/pkg/uuidv7"
)

// Session is the verified identity attached to an authenticated request.
//
// # Why so small?
//
// Boyama has a single-admin CMS surface. The session only needs to prove
// "this request is the admin" plus a token ID for revocation; there is no
// role hierarchy to carry around.
type Session struct {
	// Subject identifies the account (the admin email).
	Subject string
	// TokenID is the JWT 'jti', used as the Redis allow-list key.
	TokenID string
	// ExpiresAt is when the token stops validating.
	ExpiresAt time.Time
}

// sessionClaims is the JWT payload for an admin session token.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a [TokenService] from a shared secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, errors.New("sec: session secret must be at least 32 bytes")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// Generate creates a signed session token for the given subject.
//
// The returned [Session] mirrors the claims so the caller can record the
// token ID in the Redis allow-list.
func (service *TokenService) Generate(subject string, timeToLive time.Duration) (string, *Session, error) {
	currentTime := time.Now()
	session := &Session{
		Subject:   subject,
		TokenID:   uuidv7.New(),
		ExpiresAt: currentTime.Add(timeToLive),
	}

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			ID:        session.TokenID,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, session, nil
}

// Verify checks the signature and validity of a session token string.
func (service *TokenService) Verify(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return &Session{
		Subject:   claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
