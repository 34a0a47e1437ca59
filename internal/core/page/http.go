// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

/*
Package page provides the HTTP interface for browsing and curating the catalogue.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors (GET /pages).
  - Restricted (v1): Mutative multipart endpoints requiring an admin session.

The handler translates between the multipart/JSON web layer and the internal
domain [Service].
*/
package page

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ardakose/boyama/internal/platform/middleware"
	requestutil "github.com/ardakose/boyama/internal/platform/request"
	"github.com/ardakose/boyama/internal/platform/respond"
	"github.com/ardakose/boyama/pkg/pagination"
)

// multipartMemoryLimit caps the in-memory buffer for multipart parsing;
// larger file parts spill to disk.
const multipartMemoryLimit = 16 << 20

// # Handler Implementation

// Handler implements the HTTP layer for page discovery and ingestion.
type Handler struct {
	service *Service
}

// NewHandler constructs a new page [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the page domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.searchPages)
	router.Get("/{identifier}", handler.getPage)
	router.Get("/{id}/download", handler.downloadPage)
	router.Post("/{id}/views", handler.recordView)

	// ## Content Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin())

		admin.Post("/", handler.createPage)
		admin.Patch("/{id}", handler.updatePage)
		admin.Delete("/{id}", handler.deletePage)
		admin.Post("/{id}/children", handler.createChildPages)
	})

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/pages.

Description: Retrieves a paginated list of published top-level pages.
Supports full-text search (turkish dictionary), taxonomy filters, and an
age-compatibility filter.

Request:
  - q: string (Full-text search)
  - category: string (Category slug)
  - tag: string (Tag slug)
  - age: int (Age compatibility)
  - page, per_page: int

Response:
  - 200: []Page: Paginated list (possibly empty)
*/
func (handler *Handler) searchPages(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Query:        query.Get("q"),
		CategorySlug: query.Get("category"),
		TagSlug:      query.Get("tag"),
		TopLevelOnly: true,
	}

	if age, err := strconv.Atoi(query.Get("age")); err == nil {
		filter.Age = &age
	}

	pages, total, err := handler.service.SearchPages(request.Context(), filter, params.Limit(), params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pages, pagination.NewMeta(params, int64(total)))
}

/*
GET /api/v1/pages/{identifier}.

Description: Retrieves a page by UUID or unique slug. Top-level pages
include their children. Viewing does not implicitly bump the counter;
clients report views explicitly.

Response:
  - 200: Page
  - 404: NOT_FOUND
*/
func (handler *Handler) getPage(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	page, err := handler.service.GetPage(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

/*
GET /api/v1/pages/{id}/download.

Description: Returns a short-lived signed URL for the page's PDF with
attachment disposition, bumping the download counter.

Response:
  - 200: {url}
  - 404: NOT_FOUND
*/
func (handler *Handler) downloadPage(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	url, err := handler.service.DownloadURL(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"url": url})
}

/*
POST /api/v1/pages/{id}/views.

Description: Records one view. Unconditional increment, no dedup.

Response:
  - 204: Recorded
  - 404: NOT_FOUND
*/
func (handler *Handler) recordView(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.RecordView(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Ingestion Endpoints

/*
POST /api/v1/pages.

Description: Ingests a new page from a multipart form. The image is
derived into the full variant set and uploaded before the record is
written; failures roll back every uploaded object.

Request (multipart form):
  - title: string (required)
  - slug: string (optional, must be free)
  - description: string
  - status: string (draft, published)
  - age_min, age_max: int
  - category_ids, tag_ids: string (comma-separated UUIDs)
  - image: file (required; png, jpeg, webp)

Response:
  - 201: Page
  - 400: VALIDATION_ERROR with field details
  - 409: SLUG_IN_USE
  - 500: INGESTION_FAILED (rolled back)
*/
func (handler *Handler) createPage(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(request, multipartMemoryLimit); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := CreateInput{
		Title:       requestutil.FormValue(request, "title"),
		Slug:        requestutil.FormValue(request, "slug"),
		Description: requestutil.FormValue(request, "description"),
		Status:      Status(requestutil.FormValue(request, "status")),
		AgeMin:      requestutil.FormInt(request, "age_min"),
		AgeMax:      requestutil.FormInt(request, "age_max"),
		CategoryIDs: requestutil.FormStrings(request, "category_ids"),
		TagIDs:      requestutil.FormStrings(request, "tag_ids"),
	}

	if upload, ok := readUpload(request, "image"); ok {
		input.Image = upload
	}

	page, err := handler.service.CreatePage(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, page)
}

/*
PATCH /api/v1/pages/{id}.

Description: Updates metadata and optionally replaces the media. Omitting
the image keeps every existing key; supplying one writes new variants and
deletes the replaced keys only after the database write succeeds.

Response:
  - 200: Page
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND
  - 409: SLUG_IN_USE
*/
func (handler *Handler) updatePage(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := requestutil.ParseMultipart(request, multipartMemoryLimit); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateInput{
		Title:       requestutil.FormValue(request, "title"),
		Slug:        requestutil.FormValue(request, "slug"),
		Description: requestutil.FormValue(request, "description"),
		Status:      Status(requestutil.FormValue(request, "status")),
		AgeMin:      requestutil.FormInt(request, "age_min"),
		AgeMax:      requestutil.FormInt(request, "age_max"),
		CategoryIDs: requestutil.FormStrings(request, "category_ids"),
		TagIDs:      requestutil.FormStrings(request, "tag_ids"),
	}

	if upload, ok := readUpload(request, "image"); ok {
		input.Image = upload
	}

	page, err := handler.service.UpdatePage(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

/*
DELETE /api/v1/pages/{id}.

Description: Deletes the page, cascading to children and removing every
owned storage key after the database delete succeeds.

Response:
  - 204: Deleted
  - 404: NOT_FOUND
*/
func (handler *Handler) deletePage(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeletePage(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/pages/{id}/children.

Description: Batch-ingests N images as children of a top-level page.
Children copy the parent's taxonomy at creation. A failure anywhere rolls
back every uploaded key for the whole batch.

Request (multipart form):
  - images: file[] (required; png, jpeg, webp)

Response:
  - 201: []Page
  - 400: VALIDATION_ERROR (no files, bad MIME, parent is a child)
  - 404: NOT_FOUND
  - 500: INGESTION_FAILED (whole batch rolled back)
*/
func (handler *Handler) createChildPages(writer http.ResponseWriter, request *http.Request) {
	parentID := requestutil.ID(request, "id")

	if err := requestutil.ParseMultipart(request, multipartMemoryLimit); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var files []Upload
	if request.MultipartForm != nil {
		for _, header := range request.MultipartForm.File["images"] {
			data, contentType, err := requestutil.ReadFile(header)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}
			files = append(files, Upload{
				Filename:    header.Filename,
				ContentType: contentType,
				Data:        data,
			})
		}
	}

	children, err := handler.service.CreateChildPages(request.Context(), parentID, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, children)
}

// readUpload extracts a single optional file part from the parsed form.
func readUpload(request *http.Request, field string) (*Upload, bool) {
	if request.MultipartForm == nil {
		return nil, false
	}
	headers := request.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, false
	}

	data, contentType, err := requestutil.ReadFile(headers[0])
	if err != nil {
		return nil, false
	}

	return &Upload{
		Filename:    headers[0].Filename,
		ContentType: contentType,
		Data:        data,
	}, true
}
