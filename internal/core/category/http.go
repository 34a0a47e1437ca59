// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ardakose/boyama/internal/platform/middleware"
	requestutil "github.com/ardakose/boyama/internal/platform/request"
	"github.com/ardakose/boyama/internal/platform/respond"
)

// Handler implements the HTTP layer for the category taxonomy.
type Handler struct {
	service *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the category endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin())

		admin.Post("/", handler.createCategory)
		admin.Patch("/{id}", handler.updateCategory)
		admin.Delete("/{id}", handler.deleteCategory)
	})

	return router
}

// categoryRequest is the inbound JSON schema for category mutations.
type categoryRequest struct {
	Name string `json:"name"`
}

// GET /api/v1/categories.
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

// POST /api/v1/categories.
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

// PATCH /api/v1/categories/{id}.
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.UpdateCategory(request.Context(), id, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

// DELETE /api/v1/categories/{id}.
//
// Deletion is refused with a 409 while any page still references the
// category.
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteCategory(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
