// Package resolve implements tiered fallback resolution for directory content
// sections and the cross-section dedup accumulator threaded between them.
package resolve

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/emborough/localpages/internal/content"
)

var tracer = otel.Tracer("github.com/emborough/localpages/internal/directory/resolve")

// Fetch loads up to limit items for the given location scope. A nil location
// id slice means unscoped (citywide).
type Fetch[T content.Item] func(ctx context.Context, locationIDs []string, limit int) ([]T, error)

// Tier is one fallback attempt, from most to least specific scope.
type Tier[T content.Item] struct {
	// ScopeLabel is the human-readable name of the tier (neighborhood name,
	// area name, or "citywide").
	ScopeLabel string
	// LocationIDs scopes the fetch; nil means citywide.
	LocationIDs []string
	// Limit caps the number of items requested from this tier.
	Limit int
	// Fetch loads candidates for this tier.
	Fetch Fetch[T]
}

// Result pairs resolved items with the label of the tier that produced them.
type Result[T content.Item] struct {
	Items      []T
	ScopeLabel string
}

// Resolve walks tiers in order and returns the first non-empty result.
//
// When searchActive is true only the first tier executes, so a user-entered
// query searches within the location being viewed instead of silently widening
// scope. Fetch failures degrade to an empty tier and never propagate; a flaky
// source costs one tier, not the page.
//
// When every tier is empty the returned ScopeLabel is the first tier's label,
// keeping a stable heading for the empty-state affordance.
func Resolve[T content.Item](ctx context.Context, tiers []Tier[T], searchActive bool) Result[T] {
	if len(tiers) == 0 {
		return Result[T]{}
	}

	ctx, span := tracer.Start(ctx, "resolve.Resolve")
	defer span.End()
	span.SetAttributes(
		attribute.Int("resolve.tiers", len(tiers)),
		attribute.Bool("resolve.search_active", searchActive),
	)

	attempts := tiers
	if searchActive {
		attempts = tiers[:1]
	}

	for _, tier := range attempts {
		items := fetchTier(ctx, tier)
		if len(items) > 0 || searchActive {
			span.SetAttributes(attribute.String("resolve.satisfied_scope", tier.ScopeLabel))
			return Result[T]{Items: items, ScopeLabel: tier.ScopeLabel}
		}
	}

	return Result[T]{ScopeLabel: tiers[0].ScopeLabel}
}

func fetchTier[T content.Item](ctx context.Context, tier Tier[T]) []T {
	if tier.Fetch == nil {
		return nil
	}
	items, err := tier.Fetch(ctx, tier.LocationIDs, tier.Limit)
	if err != nil {
		log.Printf("resolve tier %q fetch failed: %v", tier.ScopeLabel, err)
		return nil
	}
	return items
}
