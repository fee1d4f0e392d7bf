package event

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/emborough/localpages/internal/content"
)

func date(year int, month time.Month, day int) content.Date {
	return content.NewDate(year, month, day)
}

func TestPartitionClassifiesAgainstSnapshot(t *testing.T) {
	t.Parallel()

	today := date(2025, time.June, 15)
	events := []content.EventRecord{
		{ID: "a", StartDate: date(2025, time.June, 10), EndDate: date(2025, time.June, 20)},
		{ID: "b", StartDate: date(2025, time.June, 20)},
		{ID: "c", StartDate: date(2025, time.June, 1), EndDate: date(2025, time.June, 10)},
	}

	parts := Partition(events, today)

	if len(parts.Current) != 1 || parts.Current[0].ID != "a" {
		t.Fatalf("current = %+v, want event a", parts.Current)
	}
	if len(parts.Upcoming) != 1 || parts.Upcoming[0].ID != "b" {
		t.Fatalf("upcoming = %+v, want event b", parts.Upcoming)
	}
	if len(parts.Past) != 1 || parts.Past[0].ID != "c" {
		t.Fatalf("past = %+v, want event c", parts.Past)
	}
}

// Every event lands in exactly one partition.
func TestPartitionExhaustiveAndDisjoint(t *testing.T) {
	t.Parallel()

	today := date(2025, time.June, 15)
	events := []content.EventRecord{
		{ID: "e1", StartDate: date(2025, time.June, 14)},
		{ID: "e2", StartDate: date(2025, time.June, 15)},
		{ID: "e3", StartDate: date(2025, time.June, 16)},
		{ID: "e4", StartDate: date(2025, time.June, 1), EndDate: date(2025, time.June, 14)},
		{ID: "e5", StartDate: date(2025, time.June, 15), EndDate: date(2025, time.June, 15)},
		{ID: "e6", StartDate: date(2025, time.June, 16), EndDate: date(2025, time.June, 17)},
		{ID: "e7", StartDate: date(2025, time.June, 1), EndDate: date(2025, time.June, 30)},
	}

	parts := Partition(events, today)

	placements := make(map[string]int)
	for _, record := range parts.Upcoming {
		placements[record.ID]++
	}
	for _, record := range parts.Current {
		placements[record.ID]++
	}
	for _, record := range parts.Past {
		placements[record.ID]++
	}

	if len(placements) != len(events) {
		t.Fatalf("placed %d events, want %d", len(placements), len(events))
	}
	for id, count := range placements {
		if count != 1 {
			t.Fatalf("event %q placed %d times", id, count)
		}
	}
}

func TestPartitionDropsRecordsWithoutStartDate(t *testing.T) {
	t.Parallel()

	parts := Partition([]content.EventRecord{
		{ID: "valid", StartDate: date(2025, time.June, 20)},
		{ID: "invalid"},
	}, date(2025, time.June, 15))

	total := len(parts.Upcoming) + len(parts.Current) + len(parts.Past)
	if total != 1 {
		t.Fatalf("partitioned %d events, want 1", total)
	}
	if parts.Upcoming[0].ID != "valid" {
		t.Fatalf("upcoming = %+v, want valid only", parts.Upcoming)
	}
}

func TestPartitionSortsPastMostRecentFirst(t *testing.T) {
	t.Parallel()

	parts := Partition([]content.EventRecord{
		{ID: "old", StartDate: date(2025, time.May, 1)},
		{ID: "recent", StartDate: date(2025, time.June, 10)},
		{ID: "older", StartDate: date(2025, time.April, 2)},
	}, date(2025, time.June, 15))

	var got []string
	for _, record := range parts.Past {
		got = append(got, record.ID)
	}
	if diff := cmp.Diff([]string{"recent", "old", "older"}, got); diff != "" {
		t.Fatalf("past order mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionKeepsUpcomingFetchOrder(t *testing.T) {
	t.Parallel()

	parts := Partition([]content.EventRecord{
		{ID: "u2", StartDate: date(2025, time.July, 2)},
		{ID: "u1", StartDate: date(2025, time.July, 1)},
	}, date(2025, time.June, 15))

	if parts.Upcoming[0].ID != "u2" || parts.Upcoming[1].ID != "u1" {
		t.Fatalf("upcoming reordered: %+v", parts.Upcoming)
	}
}

func TestFilterNarrowsWithoutReclassifying(t *testing.T) {
	t.Parallel()

	today := date(2025, time.June, 15)
	parts := Partition([]content.EventRecord{
		{ID: "music-up", StartDate: date(2025, time.July, 1), EventType: "music", CategoryID: "cat-1"},
		{ID: "food-up", StartDate: date(2025, time.July, 2), EventType: "food", CategoryID: "cat-2"},
		{ID: "music-past", StartDate: date(2025, time.June, 1), EventType: "music", CategoryID: "cat-1"},
	}, today)

	filtered := parts.Filter(Filters{EventType: "music"})
	if len(filtered.Upcoming) != 1 || filtered.Upcoming[0].ID != "music-up" {
		t.Fatalf("filtered upcoming = %+v, want music-up", filtered.Upcoming)
	}
	if len(filtered.Past) != 1 || filtered.Past[0].ID != "music-past" {
		t.Fatalf("filtered past = %+v, want music-past", filtered.Past)
	}

	both := parts.Filter(Filters{EventType: "music", CategoryID: "cat-2"})
	if len(both.Upcoming)+len(both.Current)+len(both.Past) != 0 {
		t.Fatalf("conjunctive filter kept events: %+v", both)
	}
}

func TestFiltersActive(t *testing.T) {
	t.Parallel()

	if (Filters{}).Active() {
		t.Fatal("empty filters reported active")
	}
	if !(Filters{EventType: "music"}).Active() {
		t.Fatal("type filter reported inactive")
	}
	if !(Filters{CategoryID: "cat-1"}).Active() {
		t.Fatal("category filter reported inactive")
	}
}
