package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgcarsight/backend/config"
)

func linkedInTestConfig() config.LinkedInConfig {
	return config.LinkedInConfig{
		Enabled:        true,
		ClientID:       "client",
		ClientSecret:   "secret",
		RefreshToken:   "refresh",
		OrganisationID: "12345",
		PersonID:       "abcde",
	}
}

func newLinkedInAgainst(srv *httptest.Server) *LinkedIn {
	l := NewLinkedIn(linkedInTestConfig())
	l.tokenURL = srv.URL + "/oauth/v2/accessToken"
	l.apiBase = srv.URL
	return l
}

func TestLinkedInPublishTwoPhase(t *testing.T) {
	var orgPosts, personPosts atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/v2/accessToken":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "refresh_token", r.FormValue("grant_type"))
			fmt.Fprint(w, `{"access_token":"token-1"}`)
		case "/rest/posts":
			assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			author, _ := body["author"].(string)
			if strings.HasPrefix(author, "urn:li:organization:") {
				orgPosts.Add(1)
				w.Header().Set("x-restli-id", "urn:li:share:999")
				w.WriteHeader(http.StatusCreated)
				return
			}
			personPosts.Add(1)
			assert.NotNil(t, body["reshareContext"], "personal post must reshare the company post")
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	l := newLinkedInAgainst(srv)
	err := l.Publish(context.Background(), Message{Text: "New data", Link: "https://x"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), orgPosts.Load())
	assert.Equal(t, int32(1), personPosts.Load())
}

func TestLinkedInReshareFailureDoesNotFailPublish(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/v2/accessToken":
			fmt.Fprint(w, `{"access_token":"token-1"}`)
		case "/rest/posts":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			author, _ := body["author"].(string)
			if strings.HasPrefix(author, "urn:li:organization:") {
				w.Header().Set("x-restli-id", "urn:li:share:999")
				w.WriteHeader(http.StatusCreated)
				return
			}
			http.Error(w, "reshare rejected", http.StatusForbidden)
		}
	}))
	defer srv.Close()

	l := newLinkedInAgainst(srv)
	err := l.Publish(context.Background(), Message{Text: "New data", Link: "https://x"})
	assert.NoError(t, err, "reshare failure is logged, not propagated")
}

func TestLinkedInTokenFailureAbortsPublish(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad refresh token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	l := newLinkedInAgainst(srv)
	err := l.Publish(context.Background(), Message{Text: "New data", Link: "https://x"})
	assert.Error(t, err)
}

func TestLinkedInMissingCredentials(t *testing.T) {
	l := NewLinkedIn(config.LinkedInConfig{Enabled: true})
	err := l.Publish(context.Background(), Message{Text: "x", Link: "y"})
	assert.Error(t, err, "missing credentials abort only this platform's attempt")
}
