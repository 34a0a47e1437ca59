// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ardakose/boyama/internal/platform/ctxutil"
	"github.com/ardakose/boyama/internal/platform/middleware"
	requestutil "github.com/ardakose/boyama/internal/platform/request"
	"github.com/ardakose/boyama/internal/platform/respond"
	"github.com/ardakose/boyama/internal/platform/validate"
)

// Handler implements the HTTP layer for authentication.
type Handler struct {
	service *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the auth endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin())

		admin.Post("/logout", handler.logout)
	})

	return router
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("email", input.Email)
	v.Required("password", input.Password)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	session := ctxutil.GetSession(request.Context())

	if err := handler.service.Logout(request.Context(), session); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
