package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ID identifies a book. The server assigns it; the client only carries it around.
// Services disagree on whether identifiers are numbers or strings, so both
// decode into the same textual form.
type ID string

// UnmarshalJSON accepts JSON strings and numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("book id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("book id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Book mirrors a record returned by /api/books.
type Book struct {
	ID            ID     `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	PublishedDate string `json:"publishedDate"`
}

// UnmarshalJSON falls back to a document-store style "_id" when "id" is absent.
func (b *Book) UnmarshalJSON(data []byte) error {
	type plain Book
	var raw struct {
		plain
		DocumentID ID `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Book(raw.plain)
	if b.ID == "" {
		b.ID = raw.DocumentID
	}
	return nil
}

// Fields returns the editable part of the record.
func (b Book) Fields() Fields {
	return Fields{
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		PublishedDate: b.PublishedDate,
	}
}

// ParsedPublishedDate returns the published date as time.Time, or the zero
// time when the value does not parse.
func (b Book) ParsedPublishedDate() time.Time {
	t, err := ParseDate(b.PublishedDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Fields is the request body for create and update. Update replaces the whole
// record, so every field is always sent.
type Fields struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	PublishedDate string `json:"publishedDate"`
}

// listResponse mirrors GET /api/books.
type listResponse struct {
	Data *struct {
		Books *[]Book `json:"books"`
	} `json:"data"`
}

// bookResponse mirrors GET /api/books/{id}.
type bookResponse struct {
	Data *struct {
		Book *Book `json:"book"`
	} `json:"data"`
}

const dateLayout = "2006-01-02"

// ParseDate parses the date forms the service emits: a bare ISO date (local
// midnight) or an RFC 3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	if t, err := time.ParseInLocation(dateLayout, trimmed, time.Local); err == nil {
		return t, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", trimmed, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// DateOnly trims a date-time down to its YYYY-MM-DD prefix. Values shorter
// than a date are returned unchanged.
func DateOnly(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < len(dateLayout) {
		return trimmed
	}
	return trimmed[:len(dateLayout)]
}
