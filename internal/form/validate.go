package form

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/five82/bookshelf/internal/catalog"
)

// Code classifies a validation failure.
type Code string

const (
	CodeRequired    Code = "required"
	CodeFutureDate  Code = "futureDate"
	CodeInvalidDate Code = "invalidDate"
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   Field
	Code    Code
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors maps fields to their first failure. A nil or empty Errors is valid.
type Errors map[Field]FieldError

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Message returns the message attached to f, or "".
func (e Errors) Message(f Field) string {
	return e[f].Message
}

// Clear drops the error attached to f.
func (e Errors) Clear(f Field) {
	delete(e, f)
}

// Error lists every failure in field order.
func (e Errors) Error() string {
	fields := make([]Field, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, e[f].Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add keeps the first failure recorded for a field.
func (e Errors) add(f Field, code Code, message string) {
	if _, exists := e[f]; exists {
		return
	}
	e[f] = FieldError{Field: f, Code: code, Message: message}
}

func (e Errors) check(ok bool, f Field, code Code, message string) {
	if !ok {
		e.add(f, code, message)
	}
}

// Validate applies the submission rules to d. A published date is rejected
// only when it is strictly after now.
func Validate(d Draft, now time.Time) Errors {
	errs := Errors{}

	errs.check(strings.TrimSpace(d.Title) != "", FieldTitle, CodeRequired, "Title is required")
	errs.check(strings.TrimSpace(d.Author) != "", FieldAuthor, CodeRequired, "Author is required")
	errs.check(strings.TrimSpace(d.Genre) != "", FieldGenre, CodeRequired, "Genre is required")

	if strings.TrimSpace(d.PublishedDate) == "" {
		errs.add(FieldPublishedDate, CodeRequired, "Published date is required")
	} else if published, err := catalog.ParseDate(d.PublishedDate); err != nil {
		errs.add(FieldPublishedDate, CodeInvalidDate, "Published date must look like 2006-01-02")
	} else {
		errs.check(!published.After(now), FieldPublishedDate, CodeFutureDate, "Published date cannot be in the future")
	}

	if errs.Valid() {
		return nil
	}
	return errs
}
