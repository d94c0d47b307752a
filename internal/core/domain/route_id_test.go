package domain_test

import (
	"testing"

	"github.com/parknav/parknav/internal/core/domain"
)

func routeKey() domain.RouteKey {
	return domain.RouteKey{
		Building: "B1",
		Version:  3,
		Start:    domain.Coord{Level: 0, Row: 0, Col: 0},
		End:      domain.Coord{Level: 1, Row: 2, Col: 2},
	}
}

func TestGenerateRouteID_Deterministic(t *testing.T) {
	id1 := domain.GenerateRouteID(routeKey())
	id2 := domain.GenerateRouteID(routeKey())
	if id1 != id2 {
		t.Errorf("GenerateRouteID() not deterministic: %s != %s", id1, id2)
	}
}

func TestGenerateRouteID_HashFormat(t *testing.T) {
	id := domain.GenerateRouteID(routeKey())
	if len(id) != 64 {
		t.Errorf("GenerateRouteID() length = %d, want 64 (SHA-256 hex)", len(id))
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Errorf("GenerateRouteID() contains non-hex character: %c", c)
			break
		}
	}
}

func TestGenerateRouteID_SensitiveToEveryComponent(t *testing.T) {
	base := routeKey()
	variants := map[string]domain.RouteKey{
		"building": {Building: "B2", Version: base.Version, Start: base.Start, End: base.End},
		"version":  {Building: base.Building, Version: 4, Start: base.Start, End: base.End},
		"start":    {Building: base.Building, Version: base.Version, Start: domain.Coord{Level: 0, Row: 0, Col: 1}, End: base.End},
		"end":      {Building: base.Building, Version: base.Version, Start: base.Start, End: domain.Coord{Level: 1, Row: 2, Col: 1}},
	}

	baseID := domain.GenerateRouteID(base)
	for name, key := range variants {
		if domain.GenerateRouteID(key) == baseID {
			t.Errorf("GenerateRouteID() ignored %s component", name)
		}
	}
}

func TestGenerateRouteID_DirectionMatters(t *testing.T) {
	forward := routeKey()
	backward := forward
	backward.Start, backward.End = forward.End, forward.Start

	if domain.GenerateRouteID(forward) == domain.GenerateRouteID(backward) {
		t.Error("GenerateRouteID() must distinguish direction")
	}
}

func TestStraightLineDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Coord
		want float64
	}{
		{"same cell", domain.Coord{}, domain.Coord{}, 0},
		{"single axis", domain.Coord{Row: 0}, domain.Coord{Row: 5}, 5},
		{"pythagorean", domain.Coord{Row: 0, Col: 0}, domain.Coord{Row: 3, Col: 4}, 5},
		{"level counts as one unit", domain.Coord{Level: 0}, domain.Coord{Level: 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.StraightLineDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("StraightLineDistance() = %v, want %v", got, tt.want)
			}
			if got := domain.StraightLineDistance(tt.b, tt.a); got != tt.want {
				t.Errorf("StraightLineDistance() not symmetric: %v != %v", got, tt.want)
			}
		})
	}
}
