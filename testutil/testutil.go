// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/voting"
)

// SetupTestDB creates a fresh SQLite database file with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	url := "file:" + path + "?_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)&_txlock=immediate"

	conn, err := db.Open(db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(mode voting.Mode) cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		VoterSalt:    "test-voter-salt",
		Mode:         mode,
	}
}

// SeedTestBallot inserts the built-in ballot and returns it
func SeedTestBallot(t *testing.T, conn *sql.DB, mode voting.Mode) []voting.Nomination {
	t.Helper()

	ballot := voting.DefaultBallot(mode)
	if err := db.Seed(context.Background(), conn, ballot); err != nil {
		t.Fatalf("Failed to seed ballot: %v", err)
	}
	return ballot
}

// CandidateVotes reads a candidate's stored count
func CandidateVotes(t *testing.T, conn *sql.DB, candidateID int64) int {
	t.Helper()

	var votes int
	if err := conn.QueryRow(`SELECT votes FROM candidate WHERE id = $1`, candidateID).Scan(&votes); err != nil {
		t.Fatalf("Failed to read candidate votes: %v", err)
	}
	return votes
}

// NominationVotes reads a flat nomination's stored count
func NominationVotes(t *testing.T, conn *sql.DB, nominationID int64) int {
	t.Helper()

	var votes int
	if err := conn.QueryRow(`SELECT votes FROM nomination WHERE id = $1`, nominationID).Scan(&votes); err != nil {
		t.Fatalf("Failed to read nomination votes: %v", err)
	}
	return votes
}

// CountUserVotes counts stored vote rows
func CountUserVotes(t *testing.T, conn *sql.DB) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM user_vote`).Scan(&n); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// FromIP sets the request's remote address, which is the voter identity
func FromIP(req *http.Request, ip string) *http.Request {
	req.RemoteAddr = ip + ":40000"
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
