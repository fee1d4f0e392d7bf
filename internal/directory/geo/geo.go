// Package geo provides read-only lookups over the neighborhood/area hierarchy.
package geo

import (
	"sort"

	"github.com/emborough/localpages/internal/content"
)

// Hierarchy indexes location records for parent and sibling lookups. It is
// built once per page resolution from the location list and never mutated.
type Hierarchy struct {
	byID     map[string]content.Location
	bySlug   map[string]content.Location
	children map[string][]content.Location
}

// NewHierarchy builds a hierarchy from location records. A neighborhood whose
// parent id does not resolve is kept but treated as parentless.
func NewHierarchy(locations []content.Location) *Hierarchy {
	h := &Hierarchy{
		byID:     make(map[string]content.Location, len(locations)),
		bySlug:   make(map[string]content.Location, len(locations)),
		children: make(map[string][]content.Location),
	}
	for _, loc := range locations {
		if loc.ID == "" {
			continue
		}
		h.byID[loc.ID] = loc
		if loc.Slug != "" {
			h.bySlug[loc.Slug] = loc
		}
		if loc.ParentID != "" {
			h.children[loc.ParentID] = append(h.children[loc.ParentID], loc)
		}
	}
	for parentID := range h.children {
		siblings := h.children[parentID]
		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].Name < siblings[j].Name
		})
	}
	return h
}

// Lookup returns a location by id.
func (h *Hierarchy) Lookup(id string) (content.Location, bool) {
	if h == nil {
		return content.Location{}, false
	}
	loc, ok := h.byID[id]
	return loc, ok
}

// BySlug returns a location by its URL slug.
func (h *Hierarchy) BySlug(slug string) (content.Location, bool) {
	if h == nil {
		return content.Location{}, false
	}
	loc, ok := h.bySlug[slug]
	return loc, ok
}

// Parent returns the parent area of a neighborhood, if any.
func (h *Hierarchy) Parent(loc content.Location) (content.Location, bool) {
	if h == nil || loc.ParentID == "" {
		return content.Location{}, false
	}
	parent, ok := h.byID[loc.ParentID]
	return parent, ok
}

// Siblings returns neighborhoods sharing loc's parent area, excluding loc
// itself, ordered by name.
func (h *Hierarchy) Siblings(loc content.Location) []content.Location {
	if h == nil || loc.ParentID == "" {
		return nil
	}
	var siblings []content.Location
	for _, candidate := range h.children[loc.ParentID] {
		if candidate.ID == loc.ID {
			continue
		}
		siblings = append(siblings, candidate)
	}
	return siblings
}

// Neighborhoods returns the child neighborhoods of an area, ordered by name.
func (h *Hierarchy) Neighborhoods(areaID string) []content.Location {
	if h == nil {
		return nil
	}
	children := h.children[areaID]
	return append([]content.Location(nil), children...)
}

// Areas returns every parentless location, ordered by name.
func (h *Hierarchy) Areas() []content.Location {
	if h == nil {
		return nil
	}
	var areas []content.Location
	for _, loc := range h.byID {
		if loc.IsArea() {
			areas = append(areas, loc)
		}
	}
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].Name < areas[j].Name
	})
	return areas
}
