package state

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/bookshelf/internal/catalog"
)

func scenarioBooks() []catalog.Book {
	return []catalog.Book{
		{ID: "1", Title: "Dune", Author: "Herbert", Genre: "Sci-Fi", PublishedDate: "1965-08-01"},
		{ID: "2", Title: "Emma", Author: "Austen", Genre: "Romance", PublishedDate: "1815-12-23"},
	}
}

func shelf() []catalog.Book {
	return []catalog.Book{
		{ID: "a", Title: "the Hobbit", Author: "Tolkien", Genre: "Fantasy", PublishedDate: "1937-09-21"},
		{ID: "b", Title: "Dune", Author: "Herbert", Genre: "Science Fiction", PublishedDate: "1965-08-01T00:00:00.000Z"},
		{ID: "c", Title: "Emma", Author: "austen", Genre: "Romance", PublishedDate: "1815-12-23"},
		{ID: "d", Title: "Neuromancer", Author: "Gibson", Genre: "science fiction", PublishedDate: "1984-07-01"},
		{ID: "e", Title: "Persuasion", Author: "Austen", Genre: "Romance", PublishedDate: "1817-12-20"},
	}
}

func titles(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestProject_Scenarios(t *testing.T) {
	cases := []struct {
		name  string
		query Query
		want  []string
	}{
		{"title asc", Query{Field: SortByTitle, Order: Ascending}, []string{"Dune", "Emma"}},
		{"title desc", Query{Field: SortByTitle, Order: Descending}, []string{"Emma", "Dune"}},
		{"search aus", Query{Term: "aus", Field: SortByTitle}, []string{"Emma"}},
		{"search matches genre", Query{Term: "SCI"}, []string{"Dune"}},
		{"date asc", Query{Field: SortByPublishedDate}, []string{"Emma", "Dune"}},
		{"no match", Query{Term: "zzz"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := titles(Project(scenarioBooks(), tc.query))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Project mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_ExactlyMatchingSubset(t *testing.T) {
	books := shelf()
	for _, term := range []string{"", "a", "AUSTEN", "science", "o", "hobbit", "1965", "  "} {
		t.Run(fmt.Sprintf("term=%q", term), func(t *testing.T) {
			got := Filter(books, term)
			var want []catalog.Book
			for _, b := range books {
				needle := strings.ToLower(term)
				if strings.Contains(strings.ToLower(b.Title), needle) ||
					strings.Contains(strings.ToLower(b.Author), needle) ||
					strings.Contains(strings.ToLower(b.Genre), needle) {
					want = append(want, b)
				}
			}
			if len(want) == 0 {
				want = []catalog.Book{}
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("Filter mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if got := Filter(books, ""); len(got) != len(books) {
		t.Fatalf("empty term returned %d books, want %d", len(got), len(books))
	}
}

func TestProject_TotallyOrderedAndReversible(t *testing.T) {
	// Titles, dates and ids are distinct; authors and genres collide, so only
	// distinct-key fields are checked for exact reversal.
	books := shelf()
	for _, field := range sortFields {
		asc := Project(books, Query{Field: field, Order: Ascending})
		desc := Project(books, Query{Field: field, Order: Descending})
		for i := 1; i < len(asc); i++ {
			if compare(asc[i-1], asc[i], field) > 0 {
				t.Fatalf("%s asc out of order at %d: %v", field, i, titles(asc))
			}
			if compare(desc[i-1], desc[i], field) < 0 {
				t.Fatalf("%s desc out of order at %d: %v", field, i, titles(desc))
			}
		}
		if field != SortByTitle && field != SortByPublishedDate {
			continue
		}
		for i := range asc {
			if asc[i].ID != desc[len(desc)-1-i].ID {
				t.Fatalf("%s desc is not the reverse of asc: %v vs %v", field, titles(asc), titles(desc))
			}
		}
	}
}

func TestSort_CaseInsensitiveAndStableForTies(t *testing.T) {
	books := shelf()

	byTitle := Project(books, Query{Field: SortByTitle})
	if diff := cmp.Diff([]string{"Dune", "Emma", "Neuromancer", "Persuasion", "the Hobbit"}, titles(byTitle)); diff != "" {
		t.Fatalf("title sort mismatch (-want +got):\n%s", diff)
	}

	// "austen" and "Austen" tie; filter order (Emma before Persuasion) is kept
	// in both directions.
	byAuthor := Project(books, Query{Field: SortByAuthor})
	if diff := cmp.Diff([]string{"Emma", "Persuasion", "Neuromancer", "Dune", "the Hobbit"}, titles(byAuthor)); diff != "" {
		t.Fatalf("author asc mismatch (-want +got):\n%s", diff)
	}
	byAuthorDesc := Project(books, Query{Field: SortByAuthor, Order: Descending})
	if diff := cmp.Diff([]string{"the Hobbit", "Dune", "Neuromancer", "Emma", "Persuasion"}, titles(byAuthorDesc)); diff != "" {
		t.Fatalf("author desc mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_ChronologicalDates(t *testing.T) {
	got := titles(Project(shelf(), Query{Field: SortByPublishedDate}))
	want := []string{"Emma", "Persuasion", "the Hobbit", "Dune", "Neuromancer"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("date sort mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_DoesNotModifyInput(t *testing.T) {
	books := shelf()
	before := shelf()
	_ = Project(books, Query{Term: "a", Field: SortByPublishedDate, Order: Descending})
	if diff := cmp.Diff(before, books); diff != "" {
		t.Fatalf("Project modified its input (-want +got):\n%s", diff)
	}
}

func TestQueryCycling(t *testing.T) {
	q := DefaultQuery()
	if q.Term != "" || q.Field != SortByTitle || q.Order != Ascending {
		t.Fatalf("DefaultQuery = %+v", q)
	}
	f := q.Field
	seen := map[SortField]bool{}
	for range sortFields {
		seen[f] = true
		f = f.Next()
	}
	if f != SortByTitle || len(seen) != len(sortFields) {
		t.Fatalf("Next did not cycle through every field")
	}
	if Ascending.Toggle() != Descending || Descending.Toggle() != Ascending {
		t.Fatalf("Toggle did not flip order")
	}
	if Descending.String() != "desc" || SortByPublishedDate.String() != "publishedDate" {
		t.Fatalf("unexpected String values")
	}
}
