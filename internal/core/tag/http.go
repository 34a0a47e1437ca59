// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ardakose/boyama/internal/platform/middleware"
	requestutil "github.com/ardakose/boyama/internal/platform/request"
	"github.com/ardakose/boyama/internal/platform/respond"
)

// Handler implements the HTTP layer for the tag taxonomy.
type Handler struct {
	service *Service
}

// NewHandler constructs a new tag [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the tag endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTags)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin())

		admin.Post("/", handler.createTag)
		admin.Patch("/{id}", handler.updateTag)
		admin.Delete("/{id}", handler.deleteTag)
	})

	return router
}

type tagRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tags)
}

func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	var input tagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.CreateTag(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tag)
}

func (handler *Handler) updateTag(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input tagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.UpdateTag(request.Context(), id, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tag)
}

func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteTag(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
