package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

func newTestStore(handler http.HandlerFunc) (*Store, *httptest.Server) {
	server := httptest.NewServer(handler)
	httpClient := resty.New().SetBaseURL(server.URL)
	return New(httpClient), server
}

func TestQueryBuildsPostgrestParams(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	s, server := newTestStore(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode([]row{})
	})
	defer server.Close()

	var rows []row
	err := s.From("posts").
		Select("id,body").
		Eq("author_id", "user-1").
		Order("created_at", true).
		Limit(20).
		Get(context.Background(), &rows)

	require.NoError(t, err)
	assert.Equal(t, "/rest/v1/posts", gotPath)
	assert.Equal(t, "id,body", gotQuery["select"][0])
	assert.Equal(t, "eq.user-1", gotQuery["author_id"][0])
	assert.Equal(t, "created_at.asc", gotQuery["order"][0])
	assert.Equal(t, "20", gotQuery["limit"][0])
}

func TestQueryDecodesRows(t *testing.T) {
	s, server := newTestStore(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]row{{ID: "p1", Body: "hello"}})
	})
	defer server.Close()

	var rows []row
	err := s.From("posts").Get(context.Background(), &rows)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p1", rows[0].ID)
}

func TestInsertReturnsRepresentation(t *testing.T) {
	s, server := newTestStore(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var sent row
		_ = json.NewDecoder(r.Body).Decode(&sent)
		sent.ID = "server-id"
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]row{sent})
	})
	defer server.Close()

	var stored []row
	err := s.Insert(context.Background(), "messages", row{Body: "hi"}, &stored)

	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "server-id", stored[0].ID)
	assert.Equal(t, "hi", stored[0].Body)
}

func TestUpdateAppliesFilters(t *testing.T) {
	var gotQuery map[string][]string

	s, server := newTestStore(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]row{})
	})
	defer server.Close()

	err := s.Update(context.Background(), "posts",
		map[string]interface{}{"body": "edited"},
		map[string]string{"id": "p1"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "eq.p1", gotQuery["id"][0])
}

func TestDeleteAppliesFilters(t *testing.T) {
	var gotQuery map[string][]string

	s, server := newTestStore(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	err := s.Delete(context.Background(), "posts", map[string]string{"id": "p1"})

	require.NoError(t, err)
	assert.Equal(t, "eq.p1", gotQuery["id"][0])
}

func TestRpcPostsToProcedure(t *testing.T) {
	var gotPath string

	s, server := newTestStore(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})
	defer server.Close()

	err := s.Rpc(context.Background(), "exec_sql", map[string]string{"sql": "select 1"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "/rest/v1/rpc/exec_sql", gotPath)
}

func TestErrorStatusSurfaces(t *testing.T) {
	s, server := newTestStore(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	defer server.Close()

	var rows []row
	err := s.From("posts").Get(context.Background(), &rows)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
