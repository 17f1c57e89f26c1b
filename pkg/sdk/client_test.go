package sdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch_SendsScopeAndQuery(t *testing.T) {
	var gotPath, gotFund, gotAuth string
	var gotQuery map[string][]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotFund = r.Header.Get("X-Fund-ID")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"players":[{"id":"p1","score":9.5,"full_name":"Иванов Василий","cases_count":2}],"total_players":1}`))
	}))
	defer ts.Close()

	client, err := New(ts.URL,
		WithAPIKey("secret"),
		WithFundScope("fund-1"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	page, err := client.Search(context.Background(), "Вася",
		WithRoom("PokerStars"),
		WithPaging(10, 5),
	)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotPath != "/api/v1/search/unified" {
		t.Errorf("path = %q", gotPath)
	}
	if gotFund != "fund-1" {
		t.Errorf("X-Fund-ID = %q", gotFund)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	for key, want := range map[string]string{
		"query": "Вася", "room": "PokerStars", "skip": "10", "limit": "5",
	} {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %q", key, got, want)
		}
	}
	if page.TotalPlayers != 1 || len(page.Players) != 1 {
		t.Fatalf("page = %+v", page)
	}
	if page.Players[0].FullName != "Иванов Василий" {
		t.Errorf("full name = %q", page.Players[0].FullName)
	}
}

func TestAdminClient_SendsRoleHeader(t *testing.T) {
	var gotRole, gotFund string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = r.Header.Get("X-Role")
		gotFund = r.Header.Get("X-Fund-ID")
		_, _ = w.Write([]byte(`{"status":"success","message":"index ready"}`))
	}))
	defer ts.Close()

	client, _ := New(ts.URL, WithAdmin())
	if err := client.InitIndex(context.Background()); err != nil {
		t.Fatalf("InitIndex: %v", err)
	}

	if gotRole != "admin" {
		t.Errorf("X-Role = %q", gotRole)
	}
	if gotFund != "" {
		t.Errorf("X-Fund-ID = %q, want empty", gotFund)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, `{"code":"player_not_found","message":"player not found"}`, ErrPlayerNotFound},
		{"forbidden", http.StatusForbidden, `{"code":"forbidden","message":"admin role required"}`, ErrForbidden},
		{"missing scope", http.StatusUnauthorized, `{"code":"missing_scope","message":"caller fund is required"}`, ErrUnauthorized},
		{"unavailable", http.StatusServiceUnavailable, `{"code":"search_unavailable","message":"search backend unavailable"}`, ErrUnavailable},
		{"bad paging", http.StatusBadRequest, `{"code":"invalid_argument","message":"skip must be an integer"}`, ErrInvalidArgument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			client, _ := New(ts.URL, WithAdmin())
			_, err := client.Search(context.Background(), "term")
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %T, want *APIError", err)
			}
			if apiErr.Status != tc.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tc.status)
			}
		})
	}
}

func TestNonJSONError_KeepsStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	client, _ := New(ts.URL)
	_, err := client.Search(context.Background(), "term")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Code != "" {
		t.Errorf("code = %q, want empty", apiErr.Code)
	}
}

func TestIndexAllPlayers_DecodesSummary(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/search/index-players" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"success","attempted":120,"indexed":118,"failed":2}`))
	}))
	defer ts.Close()

	client, _ := New(ts.URL, WithAdmin())
	sum, err := client.IndexAllPlayers(context.Background())
	if err != nil {
		t.Fatalf("IndexAllPlayers: %v", err)
	}
	if sum.Attempted != 120 || sum.Indexed != 118 || sum.Failed != 2 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestIndexPlayer_BuildsPath(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"status":"success","message":"player indexed","player_id":"11111111-1111-1111-1111-111111111111"}`))
	}))
	defer ts.Close()

	client, _ := New(ts.URL, WithFundScope("fund-1"))
	if err := client.IndexPlayer(context.Background(), "11111111-1111-1111-1111-111111111111"); err != nil {
		t.Fatalf("IndexPlayer: %v", err)
	}
	if gotPath != "/api/v1/search/index-player/11111111-1111-1111-1111-111111111111" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
