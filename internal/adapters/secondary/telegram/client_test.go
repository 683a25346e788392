package telegram

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		token:      "test-token",
		log:        slog.Default(),
	}
}

func TestGetMeOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/getMe" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if err := client.GetMe(context.Background()); err != nil {
		t.Fatalf("GetMe() error = %v", err)
	}
}

func TestGetMeBadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if err := client.GetMe(context.Background()); err == nil {
		t.Fatal("GetMe() expected error for unauthorized token")
	}
}
