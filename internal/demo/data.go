package demo

import (
	"time"

	"github.com/shhac/oltea/internal/librarian"
)

const demoUsername = "demo-librarian"

var baseTime = time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

// seedRequests returns a fresh copy of the fake moderation queue, newest
// first. Each call allocates new slices so a Service can mutate its copy
// freely.
func seedRequests() []librarian.MergeRequest {
	return []librarian.MergeRequest{
		{
			ID:        9001,
			Title:     "Merge duplicate works: The Hobbit",
			Submitter: "tolkien-fan-42",
			Status:    "Pending",
			URL:       "https://openlibrary.org/merges#mrid-9001",
			CreatedAt: baseTime.Add(-30 * time.Minute),
			Comments: []librarian.Comment{
				{Author: "tolkien-fan-42", Body: "Both records point at the same 1937 text, one has a typo in the title.", CreatedAt: baseTime.Add(-30 * time.Minute)},
			},
		},
		{
			ID:        8997,
			Title:     "Merge authors: Iain Banks / Iain M. Banks",
			Submitter: "culture-reader",
			Status:    "Assigned",
			Reviewer:  "mekBot",
			URL:       "https://openlibrary.org/merges#mrid-8997",
			CreatedAt: baseTime.Add(-3 * time.Hour),
			Comments: []librarian.Comment{
				{Author: "culture-reader", Body: "Same person, the M. is only used for the SF novels.", CreatedAt: baseTime.Add(-3 * time.Hour)},
				{Author: "mekBot", Body: "Careful, the bibliographies differ on purpose. Checking before merging.", CreatedAt: baseTime.Add(-2 * time.Hour)},
			},
		},
		{
			ID:        8990,
			Title:     "Merge editions: Pride and Prejudice (Penguin Classics)",
			Submitter: "austenite",
			Status:    "Pending",
			URL:       "https://openlibrary.org/merges#mrid-8990",
			CreatedAt: baseTime.Add(-8 * time.Hour),
		},
		{
			ID:        8975,
			Title:     "Merge duplicate works: Cien años de soledad",
			Submitter: "biblioteca-gbm",
			Status:    "Pending",
			URL:       "https://openlibrary.org/merges#mrid-8975",
			CreatedAt: baseTime.Add(-26 * time.Hour),
			Comments: []librarian.Comment{
				{Author: "biblioteca-gbm", Body: "One record is the Spanish original, the other a mis-filed import of the same.", CreatedAt: baseTime.Add(-26 * time.Hour)},
				{Author: "seabelis", Body: "The second one looks like it might actually be the English translation?", CreatedAt: baseTime.Add(-20 * time.Hour)},
				{Author: "biblioteca-gbm", Body: "No, translation is OL27258W. Both of these are es.", CreatedAt: baseTime.Add(-18 * time.Hour)},
			},
		},
		{
			ID:        8961,
			Title:     "Merge authors: Zhang Wei (1956-) duplicates",
			Submitter: "cjk-cataloguer",
			Status:    "Pending",
			URL:       "https://openlibrary.org/merges#mrid-8961",
			CreatedAt: baseTime.Add(-2 * 24 * time.Hour),
		},
	}
}
