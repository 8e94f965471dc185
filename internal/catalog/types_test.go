package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestBook_DecodesNumericStringAndDocumentIDs(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want ID
	}{
		{"number", `{"id": 42, "title": "A"}`, "42"},
		{"string", `{"id": "abc", "title": "A"}`, "abc"},
		{"document id", `{"_id": "64f0c2", "title": "A"}`, "64f0c2"},
		{"id wins over _id", `{"id": "x", "_id": "y"}`, "x"},
		{"null", `{"id": null}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b Book
			if err := json.Unmarshal([]byte(tc.in), &b); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if b.ID != tc.want {
				t.Fatalf("ID = %q, want %q", b.ID, tc.want)
			}
		})
	}

	var b Book
	if err := json.Unmarshal([]byte(`{"id": {"nested": true}}`), &b); err == nil {
		t.Fatalf("object id decoded without error")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("1965-08-01")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	want := time.Date(1965, 8, 1, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want %v", got, want)
	}

	got, err = ParseDate("1965-08-01T00:00:00.000Z")
	if err != nil {
		t.Fatalf("ParseDate RFC3339 returned error: %v", err)
	}
	if got.Year() != 1965 || got.UTC().Month() != time.August {
		t.Fatalf("ParseDate RFC3339 = %v", got)
	}

	for _, bad := range []string{"", "  ", "01/08/1965", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("ParseDate(%q) returned nil error", bad)
		}
	}
}

func TestDateOnly(t *testing.T) {
	cases := map[string]string{
		"1965-08-01T00:00:00.000Z": "1965-08-01",
		"1965-08-01":               "1965-08-01",
		" 2001-02-03 ":             "2001-02-03",
		"1965":                     "1965",
		"":                         "",
	}
	for in, want := range cases {
		if got := DateOnly(in); got != want {
			t.Fatalf("DateOnly(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParsedPublishedDate_ZeroWhenInvalid(t *testing.T) {
	if got := (Book{PublishedDate: "soon"}).ParsedPublishedDate(); !got.IsZero() {
		t.Fatalf("ParsedPublishedDate = %v, want zero", got)
	}
}

func TestRemoteError_IsNotFoundOnlyFor404(t *testing.T) {
	if !errors.Is(&RemoteError{StatusCode: http.StatusNotFound}, ErrNotFound) {
		t.Fatalf("404 should match ErrNotFound")
	}
	if errors.Is(&RemoteError{StatusCode: http.StatusBadRequest}, ErrNotFound) {
		t.Fatalf("400 should not match ErrNotFound")
	}
}

func TestExtractMessage(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"message", `{"message": "Title already exists"}`, "Title already exists"},
		{"error string", `{"error": "bad id"}`, "bad id"},
		{"error map", `{"error": {"title": "must be provided", "author": "too long"}}`, "author: too long; title: must be provided"},
		{"data message", `{"status": "fail", "data": {"message": "nope"}}`, "nope"},
		{"json without message", `{"status": "fail"}`, ""},
		{"plain text", "service   unavailable\n", "service unavailable"},
		{"html", "<h1>Oops</h1><script>alert(1)</script>", "Oops"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractMessage([]byte(tc.in)); got != tc.want {
				t.Fatalf("extractMessage = %q, want %q", got, tc.want)
			}
		})
	}
}
