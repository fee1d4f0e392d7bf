package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/emborough/localpages/internal/content"
)

type fetchStub struct {
	items []content.Story
	err   error
	calls int
}

func (f *fetchStub) fetch(ctx context.Context, locationIDs []string, limit int) ([]content.Story, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func stories(ids ...string) []content.Story {
	out := make([]content.Story, 0, len(ids))
	for _, id := range ids {
		out = append(out, content.Story{ID: id, Title: "story " + id})
	}
	return out
}

func TestResolveReturnsFirstNonEmptyTier(t *testing.T) {
	t.Parallel()

	neighborhood := &fetchStub{}
	area := &fetchStub{items: stories("s1", "s2")}
	citywide := &fetchStub{items: stories("s9")}

	result := Resolve(context.Background(), []Tier[content.Story]{
		{ScopeLabel: "Riverside", LocationIDs: []string{"loc-1"}, Limit: 4, Fetch: neighborhood.fetch},
		{ScopeLabel: "North End", LocationIDs: []string{"loc-2", "loc-3"}, Limit: 4, Fetch: area.fetch},
		{ScopeLabel: "citywide", Limit: 4, Fetch: citywide.fetch},
	}, false)

	if result.ScopeLabel != "North End" {
		t.Fatalf("scope label = %q, want %q", result.ScopeLabel, "North End")
	}
	if diff := cmp.Diff(stories("s1", "s2"), result.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if citywide.calls != 0 {
		t.Fatalf("citywide calls = %d, want 0", citywide.calls)
	}
}

func TestResolveSearchShortCircuitsFallback(t *testing.T) {
	t.Parallel()

	neighborhood := &fetchStub{}
	area := &fetchStub{items: stories("s1")}
	citywide := &fetchStub{items: stories("s2")}

	result := Resolve(context.Background(), []Tier[content.Story]{
		{ScopeLabel: "Riverside", LocationIDs: []string{"loc-1"}, Limit: 4, Fetch: neighborhood.fetch},
		{ScopeLabel: "North End", LocationIDs: []string{"loc-2"}, Limit: 4, Fetch: area.fetch},
		{ScopeLabel: "citywide", Limit: 4, Fetch: citywide.fetch},
	}, true)

	if neighborhood.calls != 1 {
		t.Fatalf("neighborhood calls = %d, want 1", neighborhood.calls)
	}
	if area.calls != 0 || citywide.calls != 0 {
		t.Fatalf("fallback tiers called (%d, %d), want none", area.calls, citywide.calls)
	}
	if len(result.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(result.Items))
	}
	if result.ScopeLabel != "Riverside" {
		t.Fatalf("scope label = %q, want %q", result.ScopeLabel, "Riverside")
	}
}

func TestResolveTreatsFetchFailureAsEmptyTier(t *testing.T) {
	t.Parallel()

	failing := &fetchStub{err: errors.New("store unavailable")}
	citywide := &fetchStub{items: stories("s1")}

	result := Resolve(context.Background(), []Tier[content.Story]{
		{ScopeLabel: "Riverside", LocationIDs: []string{"loc-1"}, Limit: 4, Fetch: failing.fetch},
		{ScopeLabel: "citywide", Limit: 4, Fetch: citywide.fetch},
	}, false)

	if result.ScopeLabel != "citywide" {
		t.Fatalf("scope label = %q, want %q", result.ScopeLabel, "citywide")
	}
	if len(result.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(result.Items))
	}
}

func TestResolveAllTiersEmptyKeepsFirstLabel(t *testing.T) {
	t.Parallel()

	result := Resolve(context.Background(), []Tier[content.Story]{
		{ScopeLabel: "Riverside", LocationIDs: []string{"loc-1"}, Limit: 4, Fetch: (&fetchStub{}).fetch},
		{ScopeLabel: "North End", LocationIDs: []string{"loc-2"}, Limit: 4, Fetch: (&fetchStub{}).fetch},
		{ScopeLabel: "citywide", Limit: 4, Fetch: (&fetchStub{}).fetch},
	}, false)

	if result.ScopeLabel != "Riverside" {
		t.Fatalf("scope label = %q, want %q", result.ScopeLabel, "Riverside")
	}
	if len(result.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(result.Items))
	}
}

func TestResolveNoTiers(t *testing.T) {
	t.Parallel()

	result := Resolve[content.Story](context.Background(), nil, false)
	if result.ScopeLabel != "" || len(result.Items) != 0 {
		t.Fatalf("result = %+v, want zero value", result)
	}
}
