package cache

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevalidateWithoutTokenIsSoftFailure(t *testing.T) {
	r := NewRevalidator("https://example.com/api/revalidate", "", time.Second)

	result := r.Revalidate([]string{"cars"})
	assert.False(t, result.Success)
	assert.Error(t, result.Err)
	assert.Equal(t, []string{"cars"}, result.Tags)
}

func TestRevalidateSendsTokenAndTags(t *testing.T) {
	var gotToken string
	var gotBody map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("x-revalidate-token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewRevalidator(srv.URL, "secret", time.Second)
	result := r.Revalidate([]string{"cars", "months"})

	assert.True(t, result.Success)
	assert.NoError(t, result.Err)
	assert.Equal(t, "secret", gotToken)
	assert.Equal(t, []string{"cars", "months"}, gotBody["tags"])
}

func TestRevalidateUpstreamFailureIsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cache backend down", http.StatusBadGateway)
	}))
	defer srv.Close()

	r := NewRevalidator(srv.URL, "secret", time.Second)
	result := r.Revalidate([]string{"posts"})

	assert.False(t, result.Success)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "502")
}

func TestRevalidateUnreachableEndpointIsSoft(t *testing.T) {
	r := NewRevalidator("http://127.0.0.1:1", "secret", 200*time.Millisecond)

	result := r.Revalidate([]string{"cars"})
	assert.False(t, result.Success)
	assert.Error(t, result.Err)
}
