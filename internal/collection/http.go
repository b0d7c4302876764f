// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/drecktrack/internal/collectible"
	"github.com/taibuivan/drecktrack/internal/platform/middleware"
	requestutil "github.com/taibuivan/drecktrack/internal/platform/request"
	"github.com/taibuivan/drecktrack/internal/platform/respond"
	"github.com/taibuivan/drecktrack/internal/platform/validate"
	"github.com/taibuivan/drecktrack/pkg/convert"
	"github.com/taibuivan/drecktrack/pkg/pagination"
	"github.com/taibuivan/drecktrack/pkg/query"
)

// # Query Parameters

const (
	paramItemType           = "itemType"
	paramStatus             = "status"
	paramFilterTerm         = "filterTerm"
	paramOrderBy            = "orderBy"
	paramOrderDirection     = "orderDirection"
	paramExcludeExternalIDs = "excludeExternalIds"
	paramPageNumber         = "pageNumber"
	paramPageSize           = "pageSize"
	paramItemID             = "itemID"
)

// Handler implements the collection HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with every collection endpoint.
//
// # Endpoints
//   - GET    /               : Filtered, ordered, paginated listing.
//   - GET    /{itemID}       : One entry with its full item.
//   - POST   /               : Add one item.
//   - POST   /multiple       : Add a batch of items.
//   - PUT    /{itemID}       : Update one entry.
//   - PUT    /multiple       : Update a batch of entries.
//   - DELETE /{itemID}       : Remove an entry and its item.
//   - POST   /external-ids   : Identifiers not yet in the collection.
//
// All endpoints require an authenticated user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.add)
	router.Post("/multiple", handler.addMany)
	router.Put("/multiple", handler.updateMany)
	router.Post("/external-ids", handler.missingExternalIDs)

	router.Get("/{itemID}", handler.get)
	router.Put("/{itemID}", handler.update)
	router.Delete("/{itemID}", handler.remove)

	return router
}

/*
list handles GET /api/v1/collection.

Response: the bare page envelope (no data wrapper).
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	collectionQuery, err := parseQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Query(request.Context(), userID, collectionQuery)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, page)
}

// get handles GET /api/v1/collection/{itemID}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, itemID, err := identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Get(request.Context(), userID, itemID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// add handles POST /api/v1/collection.
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AddInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Add(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

// addMany handles POST /api/v1/collection/multiple.
func (handler *Handler) addMany(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var inputs []AddInput
	if err := requestutil.DecodeJSON(request, &inputs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	added, err := handler.service.AddMany(request.Context(), userID, inputs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int{"added": added})
}

// update handles PUT /api/v1/collection/{itemID}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, itemID, err := identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Update(request.Context(), userID, itemID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// updateMany handles PUT /api/v1/collection/multiple.
func (handler *Handler) updateMany(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var inputs []UpdateInput
	if err := requestutil.DecodeJSON(request, &inputs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateMany(request.Context(), userID, inputs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int{"updated": updated})
}

// remove handles DELETE /api/v1/collection/{itemID}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, itemID, err := identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), userID, itemID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// missingExternalIDs handles POST /api/v1/collection/external-ids.
func (handler *Handler) missingExternalIDs(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var identifiers []string
	if err := requestutil.DecodeJSON(request, &identifiers); err != nil {
		respond.Error(writer, request, err)
		return
	}

	missing, err := handler.service.MissingExternalIDs(request.Context(), userID, identifiers)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, missing)
}

// # Helpers

// identify returns the caller's user id and the item id from the path.
func identify(request *http.Request) (string, string, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return "", "", err
	}

	itemID, err := requestutil.UUIDParam(request, paramItemID)
	if err != nil {
		return "", "", err
	}

	return userID, itemID, nil
}

// parseQuery binds the listing parameters. Unknown item types and statuses
// are rejected; everything else falls back to a default.
func parseQuery(request *http.Request) (Query, error) {
	values := request.URL.Query()

	var filter Filter

	if raw := strings.TrimSpace(values.Get(paramItemType)); raw != "" {
		kind, err := collectible.ParseKind(raw)
		if err != nil {
			return Query{}, validate.RequiredError(paramItemType, "Unknown item type")
		}
		filter.Kind = kind
	}

	if raw := strings.TrimSpace(values.Get(paramStatus)); raw != "" {
		status, err := ParseStatus(raw)
		if err != nil {
			return Query{}, validate.RequiredError(paramStatus, "Unknown status")
		}
		filter.Status = status
	}

	filter.Term = strings.TrimSpace(values.Get(paramFilterTerm))
	filter.ExcludedExternalIDs = query.Strings(values[paramExcludeExternalIDs])

	return Query{
		Filter:    filter,
		OrderBy:   values.Get(paramOrderBy),
		Direction: ParseDirection(values.Get(paramOrderDirection)),
		Page:      convert.ToIntD(values.Get(paramPageNumber), pagination.DefaultPage),
		Size:      convert.ToIntD(values.Get(paramPageSize), pagination.DefaultPageSize),
	}, nil
}
