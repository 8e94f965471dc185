// Package form holds the record editor's domain logic: the draft being edited,
// its validation rules and the genre catalog used for completion.
package form

import (
	"github.com/five82/bookshelf/internal/catalog"
)

// Field names one editable attribute of a book.
type Field int

const (
	FieldTitle Field = iota
	FieldAuthor
	FieldGenre
	FieldPublishedDate
)

// AllFields lists the editable fields in display order.
var AllFields = []Field{FieldTitle, FieldAuthor, FieldGenre, FieldPublishedDate}

// String returns the wire name of the field.
func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldAuthor:
		return "author"
	case FieldGenre:
		return "genre"
	case FieldPublishedDate:
		return "publishedDate"
	default:
		return "unknown"
	}
}

// Label returns the human label shown next to the input.
func (f Field) Label() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldAuthor:
		return "Author"
	case FieldGenre:
		return "Genre"
	case FieldPublishedDate:
		return "Published Date"
	default:
		return ""
	}
}

// Draft is the unsaved copy of a book's editable fields.
type Draft struct {
	Title         string
	Author        string
	Genre         string
	PublishedDate string
}

// FromBook builds a draft for editing, cutting date-times down to the date.
func FromBook(b catalog.Book) Draft {
	return Draft{
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		PublishedDate: catalog.DateOnly(b.PublishedDate),
	}
}

// Get returns the value of f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldTitle:
		return d.Title
	case FieldAuthor:
		return d.Author
	case FieldGenre:
		return d.Genre
	case FieldPublishedDate:
		return d.PublishedDate
	default:
		return ""
	}
}

// Set stores v in f.
func (d *Draft) Set(f Field, v string) {
	switch f {
	case FieldTitle:
		d.Title = v
	case FieldAuthor:
		d.Author = v
	case FieldGenre:
		d.Genre = v
	case FieldPublishedDate:
		d.PublishedDate = v
	}
}

// Fields converts the draft into a request body. Values are passed through
// verbatim; the editor never rewrites what the user typed.
func (d Draft) Fields() catalog.Fields {
	return catalog.Fields{
		Title:         d.Title,
		Author:        d.Author,
		Genre:         d.Genre,
		PublishedDate: d.PublishedDate,
	}
}
