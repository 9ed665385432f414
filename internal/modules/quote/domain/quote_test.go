package domain

import "testing"

func TestDraftValidateRequiresTextAndAuthor(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		draft Draft
		ok    bool
	}{
		{name: "complete", draft: Draft{Text: "Call me Ishmael.", Author: "Herman Melville"}, ok: true},
		{name: "blank text", draft: Draft{Text: "  ", Author: "Herman Melville"}},
		{name: "missing author", draft: Draft{Text: "Call me Ishmael."}},
		{name: "negative page", draft: Draft{Text: "x", Author: "y", Page: -1}},
	}
	for _, tc := range cases {
		err := tc.draft.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestSeedQuotesReferenceSeedBooks(t *testing.T) {
	t.Parallel()
	seen := map[int64]bool{}
	for _, q := range SeedQuotes() {
		if seen[q.ID] {
			t.Fatalf("duplicate seed id %d", q.ID)
		}
		seen[q.ID] = true
		if q.BookID == nil {
			t.Fatalf("seed quote %d has no book reference", q.ID)
		}
	}
}
