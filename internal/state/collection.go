package state

import (
	"fmt"
	"time"

	"github.com/five82/bookshelf/internal/catalog"
)

// Phase is the render state of a collection view.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseErrorLoading
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseErrorLoading:
		return "error"
	case PhaseReady:
		return "ready"
	default:
		return "loading"
	}
}

// Messages shown by the collection view.
const (
	LoadFailedMessage   = "Failed to fetch books."
	DeleteFailedMessage = "Failed to delete book."
	EmptyMessage        = "No books in the collection yet."
)

// Collection is the state record owned by one collection view. It is created
// fresh for every view instance and discarded with it.
type Collection struct {
	Phase       Phase
	Query       Query
	LoadError   error
	InlineError string
	Notice      Notice
	LoadedAt    time.Time

	books     []catalog.Book
	pending   string
	noticeSeq int
}

// NewCollection returns a collection in the loading phase with the default
// query. A message taken from handoff is shown once the first load succeeds.
func NewCollection(handoff *Handoff) *Collection {
	c := &Collection{Phase: PhaseLoading, Query: DefaultQuery()}
	if msg, ok := handoff.Take(); ok {
		c.pending = msg
	}
	return c
}

// StartLoading re-enters the loading phase, e.g. for a retry.
func (c *Collection) StartLoading() {
	c.Phase = PhaseLoading
	c.LoadError = nil
	c.InlineError = ""
}

// Loaded replaces the books wholesale and enters the ready phase. It reports
// whether a pending handoff notice was started.
func (c *Collection) Loaded(books []catalog.Book, now time.Time) bool {
	c.books = cloneBooks(books)
	c.Phase = PhaseReady
	c.LoadError = nil
	c.LoadedAt = now
	if c.pending == "" {
		return false
	}
	c.ShowNotice(c.pending, HandoffNoticeDuration, now)
	c.pending = ""
	return true
}

// LoadFailed enters the error phase. Previously loaded books are kept but
// not shown.
func (c *Collection) LoadFailed(err error) {
	c.Phase = PhaseErrorLoading
	c.LoadError = err
}

// Books returns a copy of the loaded books in server order.
func (c *Collection) Books() []catalog.Book {
	return cloneBooks(c.books)
}

// Len returns the number of loaded books.
func (c *Collection) Len() int {
	return len(c.books)
}

// Visible returns the current projection.
func (c *Collection) Visible() []catalog.Book {
	return Project(c.books, c.Query)
}

// Find returns the loaded book with id.
func (c *Collection) Find(id catalog.ID) (catalog.Book, bool) {
	for _, b := range c.books {
		if b.ID == id {
			return b, true
		}
	}
	return catalog.Book{}, false
}

// Remove drops the first book whose id matches and returns it. Every other
// entry is left untouched.
func (c *Collection) Remove(id catalog.ID) (catalog.Book, bool) {
	for i, b := range c.books {
		if b.ID != id {
			continue
		}
		next := make([]catalog.Book, 0, len(c.books)-1)
		next = append(next, c.books[:i]...)
		next = append(next, c.books[i+1:]...)
		c.books = next
		c.InlineError = ""
		return b, true
	}
	return catalog.Book{}, false
}

// Deleted applies a confirmed deletion and starts its notice. It returns the
// notice sequence, or zero when the id was no longer loaded.
func (c *Collection) Deleted(id catalog.ID, now time.Time) int {
	removed, ok := c.Remove(id)
	if !ok {
		return 0
	}
	return c.ShowNotice(fmt.Sprintf("\"%s\" deleted successfully!", removed.Title), DeleteNoticeDuration, now)
}

// DeleteFailed surfaces an inline error and leaves the books unchanged.
func (c *Collection) DeleteFailed() {
	c.InlineError = DeleteFailedMessage
}

// ShowNotice replaces any current notice and returns its sequence number.
func (c *Collection) ShowNotice(text string, d time.Duration, now time.Time) int {
	c.noticeSeq++
	c.Notice = Notice{Text: text, Expires: now.Add(d), Seq: c.noticeSeq}
	return c.noticeSeq
}

// ExpireNotice clears the notice if seq still identifies it. Timers for
// replaced notices are ignored.
func (c *Collection) ExpireNotice(seq int) bool {
	if !c.Notice.Active() || c.Notice.Seq != seq {
		return false
	}
	c.Notice = Notice{}
	return true
}

// EmptyText returns the message for an empty projection. It differs between
// an empty collection and a search with no matches.
func (c *Collection) EmptyText() string {
	if c.Query.Term != "" {
		return fmt.Sprintf("No books match \"%s\".", c.Query.Term)
	}
	return EmptyMessage
}

func cloneBooks(books []catalog.Book) []catalog.Book {
	if len(books) == 0 {
		return nil
	}
	dup := make([]catalog.Book, len(books))
	copy(dup, books)
	return dup
}
