package ui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/five82/bookshelf/internal/catalog"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "transport", err: &catalog.TransportError{Op: "list books", Err: errors.New("dial tcp")}, want: "could not reach the catalog service"},
		{name: "wrapped transport", err: fmt.Errorf("save: %w", &catalog.TransportError{Op: "create book", Err: errors.New("x")}), want: "could not reach the catalog service"},
		{name: "remote with message", err: &catalog.RemoteError{Op: "create book", StatusCode: 400, Message: "Title is required"}, want: "Title is required"},
		{name: "remote without message", err: &catalog.RemoteError{Op: "create book", StatusCode: 500}, want: ""},
		{name: "undecodable payload", err: &catalog.RemoteError{Op: "list books", StatusCode: 200, Err: errors.New("unexpected EOF")}, want: "unexpected response from the catalog service"},
		{name: "other", err: errors.New("get book: book id required"), want: "get book: book id required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeError(tt.err); got != tt.want {
				t.Fatalf("describeError = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBanner(t *testing.T) {
	if got := banner(AddFailedPrefix, &catalog.RemoteError{StatusCode: 400, Message: "Duplicate"}); got != "Failed to add book: Duplicate" {
		t.Fatalf("banner = %q", got)
	}
	if got := banner(UpdateFailedPrefix, &catalog.RemoteError{StatusCode: 500}); got != "Failed to update book." {
		t.Fatalf("banner = %q", got)
	}
}

func TestRoutePath(t *testing.T) {
	cases := map[string]Route{
		"/":        {Kind: RouteCollection},
		"/add":     {Kind: RouteAdd},
		"/edit/42": {Kind: RouteEdit, ID: "42"},
	}
	for want, r := range cases {
		if got := r.Path(); got != want {
			t.Fatalf("Path = %q, want %q", got, want)
		}
	}
}
