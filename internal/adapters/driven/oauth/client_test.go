package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestClient_AuthCodeURL(t *testing.T) {
	client := NewGoogle(Credentials{ClientID: "client-id", ClientSecret: "client-secret"},
		"https://app.example.com/auth/oauth/callback")

	raw := client.AuthCodeURL("random-state")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("AuthCodeURL() produced unparseable URL: %v", err)
	}

	if u.Host != "accounts.google.com" {
		t.Errorf("host = %q, want accounts.google.com", u.Host)
	}
	q := u.Query()
	if q.Get("state") != "random-state" {
		t.Errorf("state = %q, want %q", q.Get("state"), "random-state")
	}
	if q.Get("client_id") != "client-id" {
		t.Errorf("client_id = %q, want %q", q.Get("client_id"), "client-id")
	}
	if q.Get("redirect_uri") != "https://app.example.com/auth/oauth/callback" {
		t.Errorf("redirect_uri = %q", q.Get("redirect_uri"))
	}
}

func TestClient_RegistrationIDs(t *testing.T) {
	creds := Credentials{ClientID: "id", ClientSecret: "secret"}

	tests := []struct {
		client *Client
		want   string
	}{
		{client: NewGoogle(creds, ""), want: "google"},
		{client: NewKakao(creds, ""), want: "kakao"},
		{client: NewNaver(creds, ""), want: "naver"},
	}

	for _, tt := range tests {
		if got := tt.client.RegistrationID(); got != tt.want {
			t.Errorf("RegistrationID() = %q, want %q", got, tt.want)
		}
	}
}

func TestClient_FetchUserInfo(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"12345","name":"Fetched User","email":"fetched@example.com"}`))
	}))
	defer server.Close()

	client := NewGoogle(Credentials{ClientID: "id", ClientSecret: "secret"}, "")
	client.userInfoURL = server.URL

	attrs, err := client.FetchUserInfo(context.Background(), "provider-token")
	if err != nil {
		t.Fatalf("FetchUserInfo() error = %v", err)
	}

	if gotAuth != "Bearer provider-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if attrs["sub"] != "12345" {
		t.Errorf("sub = %v, want %q", attrs["sub"], "12345")
	}
	if attrs["name"] != "Fetched User" {
		t.Errorf("name = %v, want %q", attrs["name"], "Fetched User")
	}
}

func TestClient_FetchUserInfo_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewKakao(Credentials{ClientID: "id", ClientSecret: "secret"}, "")
	client.userInfoURL = server.URL

	if _, err := client.FetchUserInfo(context.Background(), "stale-token"); err == nil {
		t.Error("expected an error for non-200 response")
	}
}
