package remote

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestHTTPBackend_Perform(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotAction string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotAction = gjson.GetBytes(body, "action").String()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	b := NewHTTPBackend(srv.URL+"/", "secret", srv.Client())
	require.True(t, b.Authenticated())
	require.NoError(t, b.Perform(t.Context(), "abc", Downvote))
	require.Equal(t, "/posts/abc/actions", gotPath)
	require.Equal(t, "Bearer secret", gotAuth)
	require.Equal(t, "downvote", gotAction)
}

func TestHTTPBackend_Error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":"archived post"}`)
	}))
	defer srv.Close()

	b := NewHTTPBackend(srv.URL, "secret", srv.Client())
	err := b.Perform(t.Context(), "abc", Save)
	require.Error(t, err)
	require.Contains(t, err.Error(), "archived post")
	require.Contains(t, err.Error(), "403")
}

func TestHTTPBackend_Unauthenticated(t *testing.T) {
	t.Parallel()

	calls := 0
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		auth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	b := NewHTTPBackend(srv.URL, "", srv.Client())
	require.False(t, b.Authenticated())
	require.ErrorIs(t, b.Perform(t.Context(), "abc", Upvote), ErrUnauthenticated)
	require.Equal(t, 0, calls)

	require.NoError(t, b.Perform(t.Context(), "abc", MarkRead))
	require.Equal(t, 1, calls)
	require.Empty(t, auth)
}
