// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/drecktrack/internal/collection"
	"github.com/taibuivan/drecktrack/internal/platform/ctxutil"
	"github.com/taibuivan/drecktrack/internal/platform/sec"
	"github.com/taibuivan/drecktrack/pkg/uuid"
)

// # Fixtures

// newServer mounts the collection routes behind a stub that authenticates
// every request as userID. An empty userID leaves requests anonymous.
func newServer(t *testing.T, userID string) *httptest.Server {
	t.Helper()

	service := collection.NewService(
		collection.NewMemoryRepository(),
		collection.NewRegistry(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	routes := collection.NewHandler(service).Routes()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if userID != "" {
			claims := &sec.AuthClaims{UserID: userID, Username: "reader"}
			request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
		}
		routes.ServeHTTP(writer, request)
	}))
	t.Cleanup(server.Close)
	return server
}

func call(t *testing.T, server *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()

	request, err := http.NewRequest(method, server.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	response, err := server.Client().Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return response.StatusCode, decoded
}

// # Tests

func TestHandler_RequiresIdentity(t *testing.T) {
	tests := []struct {
		name   string
		userID string
	}{
		{"anonymous", ""},
		{"malformed_user_id", "reader-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newServer(t, tt.userID)

			status, body := call(t, server, http.MethodGet, "/", "")
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "UNAUTHORIZED", body["code"])

			status, _ = call(t, server, http.MethodPost, "/", `{"collectibleItem":{"itemType":"Book","title":"Dune"}}`)
			assert.Equal(t, http.StatusUnauthorized, status)
		})
	}
}

func TestHandler_Lifecycle(t *testing.T) {
	server := newServer(t, uuid.New())
	itemID := uuid.New()

	// ── Add ─────────────────────────────────────────────────────────────
	status, body := call(t, server, http.MethodPost, "/",
		`{"status":"InProgress","collectibleItem":{"itemType":"movie","id":"`+itemID+`","title":"Heat","duration":170}}`)
	require.Equal(t, http.StatusCreated, status, body)

	data := body["data"].(map[string]any)
	assert.Equal(t, itemID, data["collectibleItemId"])
	item := data["collectibleItem"].(map[string]any)
	assert.Equal(t, "Movie", item["itemType"])
	assert.Equal(t, 170.0, item["duration"])

	status, body = call(t, server, http.MethodPost, "/",
		`{"collectibleItem":{"itemType":"Movie","id":"`+itemID+`","title":"Heat"}}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["code"])

	// ── Batch add ───────────────────────────────────────────────────────
	status, body = call(t, server, http.MethodPost, "/multiple", `[
		{"collectibleItem":{"itemType":"Book","title":"Dune","externalIds":[{"source":"isbn","identifier":"111"}]}},
		{"collectibleItem":{"itemType":"Movie","id":"`+itemID+`","title":"Heat"}}
	]`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 1.0, body["data"].(map[string]any)["added"])

	// ── List ────────────────────────────────────────────────────────────
	status, body = call(t, server, http.MethodGet, "/?pageSize=1&pageNumber=9&orderBy=title&orderDirection=DESC", "")
	require.Equal(t, http.StatusOK, status, body)
	assert.NotContains(t, body, "data")
	assert.Equal(t, 2.0, body["totalItems"])
	assert.Equal(t, 2.0, body["pageNumber"])
	assert.Equal(t, 1.0, body["pageSize"])
	assert.Equal(t, "Title", body["currentOrderBy"])
	assert.Equal(t, "desc", body["currentOrderDirection"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Dune", items[0].(map[string]any)["collectibleItem"].(map[string]any)["title"])

	status, body = call(t, server, http.MethodGet, "/?excludeExternalIds=000,111&status=inprogress", "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 1.0, body["totalItems"])

	// Repeated parameters are taken whole, so "000,111" names no identifier.
	status, body = call(t, server, http.MethodGet, "/?excludeExternalIds=000,111&excludeExternalIds=222", "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 2.0, body["totalItems"])

	// ── External ids ────────────────────────────────────────────────────
	status, body = call(t, server, http.MethodPost, "/external-ids", `["111","222"]`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, []any{"222"}, body["data"])

	// ── Update ──────────────────────────────────────────────────────────
	status, body = call(t, server, http.MethodPut, "/"+itemID, `{"status":"Completed","userRating":5}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Completed", body["data"].(map[string]any)["status"])

	status, body = call(t, server, http.MethodPut, "/multiple",
		`[{"collectibleItemId":"`+itemID+`","status":"Dropped"},{"collectibleItemId":"`+uuid.New()+`","status":"Dropped"}]`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 1.0, body["data"].(map[string]any)["updated"])

	status, body = call(t, server, http.MethodGet, "/"+itemID, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Dropped", body["data"].(map[string]any)["status"])

	// ── Remove ──────────────────────────────────────────────────────────
	status, _ = call(t, server, http.MethodDelete, "/"+itemID, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, body = call(t, server, http.MethodGet, "/"+itemID, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestHandler_BadRequests(t *testing.T) {
	server := newServer(t, uuid.New())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"unknown_item_type_filter", http.MethodGet, "/?itemType=Vinyl", ""},
		{"case_sensitive_item_type_filter", http.MethodGet, "/?itemType=book", ""},
		{"unknown_status_filter", http.MethodGet, "/?status=Paused", ""},
		{"malformed_path_id", http.MethodGet, "/not-a-uuid", ""},
		{"malformed_delete_id", http.MethodDelete, "/42", ""},
		{"invalid_json", http.MethodPost, "/", `{"collectibleItem":`},
		{"missing_item_type", http.MethodPost, "/", `{"collectibleItem":{"title":"Dune"}}`},
		{"external_ids_not_a_list", http.MethodPost, "/external-ids", `{"ids":["1"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, server, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "VALIDATION_ERROR", body["code"])
		})
	}
}
