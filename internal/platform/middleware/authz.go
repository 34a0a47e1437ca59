// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ardakose/boyama/internal/platform/ctxutil"
	"github.com/ardakose/boyama/internal/platform/sec"
)

// # Authentication & Authorization

// Verifier validates a bearer token and returns the session it represents.
// The auth service implements this by checking the JWT signature and the
// Redis session allow-list.
type Verifier interface {
	Verify(ctx context.Context, token string) (*sec.Session, error)
}

// Authenticate extracts and verifies the Bearer token if present.
//
// This middleware is non-blocking: if the token is missing or invalid, the
// request continues as anonymous. Authorization gates like [RequireAdmin]
// make the final decision.
func Authenticate(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Extract the token from the Authorization header
			authHeader := request.Header.Get("Authorization")
			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Verify signature, expiry and the session allow-list
			session, err := verifier.Verify(request.Context(), token)
			if err != nil {
				// Invalid tokens are treated as anonymous rather than rejected,
				// so a stale token on a public page does not break browsing.
				next.ServeHTTP(writer, request)
				return
			}

			// 3. Inject the verified session into the context
			ctx := ctxutil.WithSession(request.Context(), session)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAdmin blocks the request unless a verified admin session exists.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			session := ctxutil.GetSession(request.Context())
			if session == nil {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
