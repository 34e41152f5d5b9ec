package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/globescholar/scholarhub/internal/domain/scholarship"
	"github.com/globescholar/scholarhub/internal/utils"
)

type savedRow struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Deadline string `json:"deadline"`
	URL      string `json:"url"`
}

func saveScholarship(t *testing.T, router http.Handler, token, body string) string {
	t.Helper()

	w := doRequest(router, http.MethodPost, "/scholarships/save", body, token)

	if w.Code != http.StatusCreated {
		t.Fatalf("save got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}
	mustReadJSON(t, w, &resp)

	if resp.Message != "Saved" {
		t.Fatalf("got message %q, want Saved", resp.Message)
	}

	if !utils.IsUUID(resp.ID) {
		t.Fatalf("save returned a non-uuid id: %q", resp.ID)
	}

	return resp.ID
}

func listSaved(t *testing.T, router http.Handler, token string) []savedRow {
	t.Helper()

	w := doRequest(router, http.MethodGet, "/scholarships/saved", "", token)

	if w.Code != http.StatusOK {
		t.Fatalf("list got status %d, body=%s", w.Code, w.Body.String())
	}

	var rows []savedRow
	mustReadJSON(t, w, &rows)

	return rows
}

func TestSaveAppliesDefaultsAndTrims(t *testing.T) {
	router, _, _ := setupAPI(t, nil)
	token, _ := signupAndLogin(t, router, "sam@example.com")

	saveScholarship(t, router, token, `{"name":"  DAAD Scholarship  ","url":"  https://daad.de  "}`)

	rows := listSaved(t, router, token)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	got := rows[0]

	if got.Name != "DAAD Scholarship" {
		t.Fatalf("name not trimmed: %q", got.Name)
	}

	if got.URL != "https://daad.de" {
		t.Fatalf("url not trimmed: %q", got.URL)
	}

	if got.Provider != "" {
		t.Fatalf("provider should default to empty, got %q", got.Provider)
	}

	if got.Deadline != scholarship.UnknownDeadline {
		t.Fatalf("deadline should default to %q, got %q", scholarship.UnknownDeadline, got.Deadline)
	}
}

func TestSaveValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing_name", `{"url":"https://x.example"}`},
		{"missing_url", `{"name":"X"}`},
		{"name_too_long", `{"name":"` + longString(301) + `","url":"https://x.example"}`},
		{"deadline_too_long", `{"name":"X","url":"https://x.example","deadline":"` + longString(51) + `"}`},
		{"not_json", `name=X`},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := setupAPI(t, nil)
			token, _ := signupAndLogin(t, router, "sam@example.com")

			w := doRequest(router, http.MethodPost, "/scholarships/save", tt.body, token)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

func TestListSavedIsNewestFirstAndOwnerScoped(t *testing.T) {
	router, _, _ := setupAPI(t, nil)

	tokenA, _ := signupAndLogin(t, router, "a@example.com")
	tokenB, _ := signupAndLogin(t, router, "b@example.com")

	saveScholarship(t, router, tokenA, `{"name":"First","url":"https://1.example"}`)
	saveScholarship(t, router, tokenA, `{"name":"Second","url":"https://2.example"}`)
	saveScholarship(t, router, tokenA, `{"name":"Third","url":"https://3.example"}`)
	saveScholarship(t, router, tokenB, `{"name":"Other","url":"https://other.example"}`)

	rowsA := listSaved(t, router, tokenA)

	if len(rowsA) != 3 {
		t.Fatalf("expected 3 rows for a@, got %d", len(rowsA))
	}

	wantOrder := []string{"Third", "Second", "First"}

	for i, want := range wantOrder {
		if rowsA[i].Name != want {
			t.Fatalf("position %d: got %q, want %q (rows: %+v)", i, rowsA[i].Name, want, rowsA)
		}
	}

	rowsB := listSaved(t, router, tokenB)

	if len(rowsB) != 1 || rowsB[0].Name != "Other" {
		t.Fatalf("b@ should only see its own row, got %+v", rowsB)
	}
}

func TestListSavedEmptyIsArray(t *testing.T) {
	router, _, _ := setupAPI(t, nil)
	token, _ := signupAndLogin(t, router, "sam@example.com")

	w := doRequest(router, http.MethodGet, "/scholarships/saved", "", token)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	// an empty list must serialize as [], not null
	if w.Body.String() != "[]" {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
}

func TestDeleteSaved(t *testing.T) {
	router, _, _ := setupAPI(t, nil)

	tokenA, _ := signupAndLogin(t, router, "a@example.com")
	tokenB, _ := signupAndLogin(t, router, "b@example.com")

	id := saveScholarship(t, router, tokenA, `{"name":"Mine","url":"https://mine.example"}`)

	// someone else's record and a nonexistent one look identical
	notOwned := doRequest(router, http.MethodDelete, "/scholarships/saved/"+id, "", tokenB)
	missing := doRequest(router, http.MethodDelete, "/scholarships/saved/5d1cf3d1-64fa-4ac0-96b1-12a211f8e0c8", "", tokenB)

	if notOwned.Code != http.StatusNotFound || missing.Code != http.StatusNotFound {
		t.Fatalf("got %d and %d, want 404 for both", notOwned.Code, missing.Code)
	}

	if notOwned.Body.String() != missing.Body.String() {
		t.Fatalf("bodies differ:\n%s\n%s", notOwned.Body.String(), missing.Body.String())
	}

	// the failed delete attempts must not have touched the record
	if rows := listSaved(t, router, tokenA); len(rows) != 1 {
		t.Fatalf("record should survive foreign delete, got %+v", rows)
	}

	w := doRequest(router, http.MethodDelete, "/scholarships/saved/"+id, "", tokenA)

	if w.Code != http.StatusOK {
		t.Fatalf("owner delete got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
	}
	mustReadJSON(t, w, &resp)

	if resp.Message != "Deleted" {
		t.Fatalf("got message %q, want Deleted", resp.Message)
	}

	if rows := listSaved(t, router, tokenA); len(rows) != 0 {
		t.Fatalf("record should be gone, got %+v", rows)
	}

	// deleting again is a 404, not an error
	w = doRequest(router, http.MethodDelete, "/scholarships/saved/"+id, "", tokenA)

	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete got status %d, want 404", w.Code)
	}
}

func TestDeleteSavedRejectsMalformedID(t *testing.T) {
	router, _, _ := setupAPI(t, nil)
	token, _ := signupAndLogin(t, router, "sam@example.com")

	w := doRequest(router, http.MethodDelete, "/scholarships/saved/not-a-uuid", "", token)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
	}

	var e apiErrorResponse
	mustReadJSON(t, w, &e)

	if e.Error.Code != "invalid_id" {
		t.Fatalf("got code %q, want invalid_id", e.Error.Code)
	}
}

func TestFetchScholarships(t *testing.T) {
	sugg := &fakeSuggester{
		suggestFn: func(ctx context.Context, country string) []scholarship.Suggestion {
			if country != "Kenya" {
				return scholarship.Fallback()
			}
			return []scholarship.Suggestion{
				{Name: "Mastercard Foundation Scholars", Provider: "Mastercard Foundation", Deadline: "2026-01-15", URL: "https://mastercardfdn.org"},
				{Name: "Chevening", Provider: "UK Government", Deadline: "unknown", URL: "https://chevening.org"},
			}
		},
	}

	router, _, _ := setupAPI(t, sugg)

	// no auth required
	w := doRequest(router, http.MethodPost, "/fetch-scholarships", `{"country":"Kenya"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var rows []savedRow
	mustReadJSON(t, w, &rows)

	if len(rows) != 2 || rows[0].Name != "Mastercard Foundation Scholars" {
		t.Fatalf("unexpected suggestions: %+v", rows)
	}
}

func TestFetchScholarshipsRequiresCountry(t *testing.T) {
	router, _, _ := setupAPI(t, nil)

	w := doRequest(router, http.MethodPost, "/fetch-scholarships", `{}`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
	}
}

func TestFetchScholarshipsFallsBackToDemoItem(t *testing.T) {
	router, _, _ := setupAPI(t, nil)

	w := doRequest(router, http.MethodPost, "/fetch-scholarships", `{"country":"Kenya"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var rows []savedRow
	mustReadJSON(t, w, &rows)

	want := scholarship.Fallback()[0]

	if len(rows) != 1 || rows[0].Name != want.Name || rows[0].URL != want.URL {
		t.Fatalf("expected the demo fallback item, got %+v", rows)
	}
}
