package state

import (
	"sort"
	"strings"

	"github.com/five82/bookshelf/internal/catalog"
)

// SortField selects the key the collection is ordered by.
type SortField int

const (
	SortByTitle SortField = iota
	SortByAuthor
	SortByGenre
	SortByPublishedDate
)

var sortFields = []SortField{SortByTitle, SortByAuthor, SortByGenre, SortByPublishedDate}

func (f SortField) String() string {
	switch f {
	case SortByAuthor:
		return "author"
	case SortByGenre:
		return "genre"
	case SortByPublishedDate:
		return "publishedDate"
	default:
		return "title"
	}
}

// Label returns the short name used in the header.
func (f SortField) Label() string {
	switch f {
	case SortByAuthor:
		return "Author"
	case SortByGenre:
		return "Genre"
	case SortByPublishedDate:
		return "Published"
	default:
		return "Title"
	}
}

// Next cycles through the sort fields.
func (f SortField) Next() SortField {
	for i, candidate := range sortFields {
		if candidate == f {
			return sortFields[(i+1)%len(sortFields)]
		}
	}
	return SortByTitle
}

// SortOrder is the direction of the sort.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Toggle flips the direction.
func (o SortOrder) Toggle() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// Query is the transient search and sort state of one collection view.
type Query struct {
	Term  string
	Field SortField
	Order SortOrder
}

// DefaultQuery is the state every new collection view starts from.
func DefaultQuery() Query {
	return Query{Term: "", Field: SortByTitle, Order: Ascending}
}

// Matches reports whether title, author or genre contains term, ignoring case.
// The empty term matches everything.
func Matches(b catalog.Book, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Author), needle) ||
		strings.Contains(strings.ToLower(b.Genre), needle)
}

// Filter returns the books matching term in their original order. The input
// is never modified.
func Filter(books []catalog.Book, term string) []catalog.Book {
	out := make([]catalog.Book, 0, len(books))
	for _, b := range books {
		if Matches(b, term) {
			out = append(out, b)
		}
	}
	return out
}

// Sort orders books in place. Equal keys keep their relative order in both
// directions.
func Sort(books []catalog.Book, field SortField, order SortOrder) {
	sort.SliceStable(books, func(i, j int) bool {
		if order == Descending {
			return compare(books[j], books[i], field) < 0
		}
		return compare(books[i], books[j], field) < 0
	})
}

// Project derives the displayed list: filter, then sort. It is recomputed on
// every render and never cached.
func Project(books []catalog.Book, q Query) []catalog.Book {
	out := Filter(books, q.Term)
	Sort(out, q.Field, q.Order)
	return out
}

func compare(a, b catalog.Book, field SortField) int {
	switch field {
	case SortByAuthor:
		return compareFold(a.Author, b.Author)
	case SortByGenre:
		return compareFold(a.Genre, b.Genre)
	case SortByPublishedDate:
		return a.ParsedPublishedDate().Compare(b.ParsedPublishedDate())
	default:
		return compareFold(a.Title, b.Title)
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
