// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-vote/client"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
	"github.com/danielhkuo/quickly-vote/voting"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(voting.ModeNested)
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(voting.ModeNested)
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "quickly-vote API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(voting.ModeNested)
	testutil.SeedTestBallot(t, db, voting.ModeNested)
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method   string
		path     string
		body     interface{}
		expected int
	}{
		{"GET", "/health", nil, http.StatusOK},
		{"GET", "/", nil, http.StatusOK},
		{"GET", "/voting", nil, http.StatusOK},
		{"GET", "/voting/results", nil, http.StatusOK},
		{"POST", "/voting", map[string]int{"candidateId": 101}, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := testutil.MakeRequest(tc.method, tc.path, tc.body, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, tc.expected)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := middleware.CORS(NewRouter(db, testutil.GetTestConfig(voting.ModeNested)))

	for _, method := range []string{"PUT", "DELETE", "PATCH"} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/voting", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusMethodNotAllowed)
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Error != "Method not allowed" {
				t.Errorf("Expected error 'Method not allowed', got '%s'", resp.Error)
			}
		})
	}
}

func TestUnknownPath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig(voting.ModeNested))

	req := httptest.NewRequest("GET", "/nominations", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestPreflight(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := middleware.CORS(NewRouter(db, testutil.GetTestConfig(voting.ModeNested)))

	req := httptest.NewRequest("OPTIONS", "/voting", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("Expected Access-Control-Allow-Methods header")
	}
}

// A remote session talking to the real server over HTTP.
func TestEndToEnd(t *testing.T) {
	tests := []struct {
		name    string
		mode    voting.Mode
		first   int64
		sibling int64
	}{
		{"nested", voting.ModeNested, 201, 202},
		{"flat", voting.ModeFlat, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer db.Close()

			testutil.SeedTestBallot(t, db, tt.mode)
			srv := httptest.NewServer(middleware.CORS(NewRouter(db, testutil.GetTestConfig(tt.mode))))
			defer srv.Close()

			c, err := client.New(srv.URL+"/voting", tt.mode)
			if err != nil {
				t.Fatalf("client.New failed: %v", err)
			}
			session := voting.NewRemoteSession(c)
			if err := session.Load(t.Context()); err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			out := session.Vote(t.Context(), tt.first)
			if !out.Accepted() {
				t.Fatalf("Expected vote accepted, got %v: %s", out.Status, out.Message)
			}
			if _, v, _ := out.State.Find(tt.first); v.Votes != 1 {
				t.Errorf("Expected local count 1, got %d", v.Votes)
			}

			// A fresh session sees the vote and refuses a repeat locally
			fresh := voting.NewRemoteSession(c)
			if err := fresh.Load(t.Context()); err != nil {
				t.Fatalf("reload failed: %v", err)
			}
			if !fresh.State().Voted.Has(tt.first) {
				t.Error("Expected server to report the vote in votedFor")
			}

			// The server refuses too, with its own reason
			err = c.SubmitVote(t.Context(), tt.first)
			var rejected *voting.RejectedError
			if !errors.As(err, &rejected) {
				t.Fatalf("Expected rejection, got %v", err)
			}
			want := "Already voted for this candidate"
			if tt.mode == voting.ModeFlat {
				want = "Already voted in this nomination"
			}
			if rejected.Message != want {
				t.Errorf("Expected %q, got %q", want, rejected.Message)
			}

			if tt.sibling != 0 {
				err = c.SubmitVote(t.Context(), tt.sibling)
				if !errors.As(err, &rejected) || rejected.Message != "Already voted in this nomination" {
					t.Errorf("Expected sibling rejection, got %v", err)
				}
			}

			res, err := c.Results(t.Context())
			if err != nil {
				t.Fatalf("Results failed: %v", err)
			}
			if res.Total != 1 || res.Standings[0].ID != tt.first {
				t.Errorf("Expected single vote for %d, got %+v", tt.first, res)
			}
		})
	}
}
