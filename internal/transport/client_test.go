package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listParams struct {
	EventID     *int64 `url:"eventId,omitempty"`
	SearchQuery string `url:"searchQuery"`
	PageNumber  int    `url:"pageNumber"`
}

func TestNew(t *testing.T) {
	t.Run("relative url rejected", func(t *testing.T) {
		_, err := New(Config{BaseURL: "/api"})
		require.Error(t, err)
	})

	t.Run("ok", func(t *testing.T) {
		c, err := New(Config{BaseURL: "https://api.example.com/api"})
		require.NoError(t, err)
		assert.Equal(t, "api.example.com", c.BaseURL().Host)
	})
}

func TestClient_NewRequest(t *testing.T) {
	c, err := New(Config{BaseURL: "https://api.example.com/api/"})
	require.NoError(t, err)
	eventID := int64(7)

	tests := []struct {
		name     string
		path     string
		params   any
		expected string
	}{
		{"no params", "/Events", nil, "https://api.example.com/api/Events"},
		{"struct params", "/Guests", listParams{EventID: &eventID, SearchQuery: "ana maria", PageNumber: 2}, "https://api.example.com/api/Guests?eventId=7&pageNumber=2&searchQuery=ana+maria"},
		{"omitted optional", "/Guests", listParams{PageNumber: 1}, "https://api.example.com/api/Guests?pageNumber=1&searchQuery="},
		{"url values", "Statistics/dashboard/7", url.Values{"range": {"30d"}}, "https://api.example.com/api/Statistics/dashboard/7?range=30d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := c.NewRequest(context.Background(), http.MethodGet, tt.path, tt.params, nil)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, req.URL.String())
			assert.Equal(t, "application/json", req.Header.Get("Accept"))
			assert.Empty(t, req.Header.Get("Content-Type"))
		})
	}

	t.Run("json body is replayable", func(t *testing.T) {
		req, err := c.NewRequest(context.Background(), http.MethodPost, "/Events/Create", nil, map[string]string{"name": "Wedding"})

		require.NoError(t, err)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		require.NotNil(t, req.GetBody)
	})
}

func TestClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"name":"Ana"}`))
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, `{"message":"Event not found"}`, http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	t.Run("decode", func(t *testing.T) {
		var out struct {
			Name string `json:"name"`
		}
		err := c.JSON(t.Context(), http.MethodGet, "/ok", nil, nil, &out)

		require.NoError(t, err)
		assert.Equal(t, "Ana", out.Name)
	})

	t.Run("empty body with output", func(t *testing.T) {
		var out map[string]any
		err := c.JSON(t.Context(), http.MethodPost, "/empty", nil, nil, &out)

		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("http error", func(t *testing.T) {
		err := c.JSON(t.Context(), http.MethodDelete, "/Events/Remove/1", nil, nil, nil)

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
		assert.Equal(t, http.MethodDelete, httpErr.Method)
		assert.Equal(t, "/Events/Remove/1", httpErr.URL)
		assert.JSONEq(t, `{"message":"Event not found"}`, string(httpErr.Body))
		assert.Equal(t, http.StatusNotFound, StatusCode(err))
	})

	t.Run("transport error", func(t *testing.T) {
		broken, err := New(Config{BaseURL: "http://127.0.0.1:1"})
		require.NoError(t, err)

		err = broken.JSON(t.Context(), http.MethodGet, "/ok", nil, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 0, StatusCode(err))
	})
}

func TestPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("pageNumber"))
		w.Header().Set("X-Pagination", `{"totalCount":42,"pageSize":10,"currentPage":2,"totalPages":5}`)
		_, _ = w.Write([]byte(`[{"id":11},{"id":12}]`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	type item struct {
		ID int `json:"id"`
	}
	page, err := Page[item](t.Context(), c, "/Guests", listParams{PageNumber: 2})

	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 11}, {ID: 12}}, page.Data)
	assert.Equal(t, 42, page.TotalCount)
	assert.Equal(t, 2, page.CurrentPage)
}
