package geo_test

import (
	"testing"

	"github.com/corray333/storefront/internal/service/models/geo"
	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name string
		a    geo.Point
		b    geo.Point
		want float64
	}{
		{
			name: "same_point",
			a:    geo.Point{Lat: -6.1754, Lon: 106.8272},
			b:    geo.Point{Lat: -6.1754, Lon: 106.8272},
			want: 0,
		},
		{
			name: "one_degree_longitude_at_equator",
			a:    geo.Point{Lat: 0, Lon: 0},
			b:    geo.Point{Lat: 0, Lon: 1},
			want: 111.19,
		},
		{
			name: "one_degree_latitude",
			a:    geo.Point{Lat: 0, Lon: 0},
			b:    geo.Point{Lat: 1, Lon: 0},
			want: 111.19,
		},
		{
			name: "jakarta_to_bandung",
			a:    geo.Point{Lat: -6.1754, Lon: 106.8272},
			b:    geo.Point{Lat: -6.9175, Lon: 107.6191},
			want: 120.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := geo.HaversineKm(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1.0)
		})
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := geo.Point{Lat: -6.2, Lon: 106.8}
	b := geo.Point{Lat: -6.3, Lon: 106.9}

	assert.InDelta(t, geo.HaversineKm(a, b), geo.HaversineKm(b, a), 1e-9)
}
