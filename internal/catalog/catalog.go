// Package catalog exposes the purchasable session packages. The catalog is
// read-only to the booking core; assignments snapshot the entry they were
// created from, so later catalog edits never touch open bundles.
package catalog

import (
	"context"
	"errors"
)

// Package is one purchasable bundle of pre-paid sessions.
type Package struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"price_cents"` // currency minor units (kurus)
	TotalSessions int    `json:"total_sessions"`
}

// ErrPackageNotFound is returned when no package exists with the given ID.
var ErrPackageNotFound = errors.New("package not found")

// Source resolves package definitions.
type Source interface {
	Get(ctx context.Context, packageID string) (*Package, error)
	List(ctx context.Context) ([]Package, error)
}

// StaticSource serves a fixed package list held in memory.
type StaticSource struct {
	packages []Package
	byID     map[string]Package
}

// NewStaticSource creates a source over the given package list.
func NewStaticSource(packages []Package) *StaticSource {
	byID := make(map[string]Package, len(packages))
	for _, p := range packages {
		byID[p.ID] = p
	}
	return &StaticSource{packages: packages, byID: byID}
}

// DefaultPackages is the stock bundle lineup offered to new practices.
func DefaultPackages() []Package {
	return []Package{
		{ID: "pkg-1", Name: "Tek Seans", PriceCents: 40000, TotalSessions: 1},
		{ID: "pkg-2", Name: "4 Seans Paketi", PriceCents: 140000, TotalSessions: 4},
		{ID: "pkg-3", Name: "8 Seans Paketi", PriceCents: 240000, TotalSessions: 8},
		{ID: "pkg-4", Name: "12 Seans Paketi", PriceCents: 280000, TotalSessions: 12},
	}
}

// Get returns the package with the given ID.
func (s *StaticSource) Get(ctx context.Context, packageID string) (*Package, error) {
	p, ok := s.byID[packageID]
	if !ok {
		return nil, ErrPackageNotFound
	}
	return &p, nil
}

// List returns all packages in catalog order.
func (s *StaticSource) List(ctx context.Context) ([]Package, error) {
	out := make([]Package, len(s.packages))
	copy(out, s.packages)
	return out, nil
}
