package shippingsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/corray333/storefront/internal/dal/interfaces/iaddressrepo"
	redisdal "github.com/corray333/storefront/internal/dal/redis"
	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/models/address"
	"github.com/corray333/storefront/internal/service/models/geo"
	"github.com/spf13/viper"
)

// geocoderClient resolves free-text addresses to coordinates.
type geocoderClient interface {
	Resolve(ctx context.Context, addressText string) (*geo.Point, error)
}

// coordinateCache caches resolved coordinates keyed by address id.
type coordinateCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// ShippingService resolves a delivery address to coordinates and prices
// the delivery by distance from the store origin.
type ShippingService struct {
	addressRepo iaddressrepo.IAddressRepository
	geocoder    geocoderClient
	cache       coordinateCache
	origin      geo.Point
	cacheTTL    time.Duration
}

// option is a function that configures the ShippingService.
type option func(*ShippingService)

// MustNewShippingService creates a new ShippingService.
func MustNewShippingService(opts ...option) *ShippingService {
	s := &ShippingService{
		origin: geo.Point{
			Lat: viper.GetFloat64("shipping.origin.lat"),
			Lon: viper.GetFloat64("shipping.origin.lon"),
		},
		cacheTTL: viper.GetDuration("shipping.coordinate_cache_ttl"),
	}
	if s.cacheTTL == 0 {
		s.cacheTTL = 24 * time.Hour
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithAddressRepo(repo iaddressrepo.IAddressRepository) option {
	return func(s *ShippingService) {
		s.addressRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithGeocoder(g geocoderClient) option {
	return func(s *ShippingService) {
		s.geocoder = g
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithCache(c coordinateCache) option {
	return func(s *ShippingService) {
		s.cache = c
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrigin(origin geo.Point) option {
	return func(s *ShippingService) {
		s.origin = origin
	}
}

// CostForDistanceKm maps a delivery distance to a shipping cost. The
// breakpoints and the floor rounding are a pricing policy constant:
// boundary distances belong to the lower tier.
func CostForDistanceKm(distanceKm float64) int64 {
	switch {
	case distanceKm <= 3:
		return 0
	case distanceKm <= 7:
		return 7000
	case distanceKm <= 10:
		return 10000
	default:
		return 15000 + 2000*int64(math.Floor(distanceKm-10))
	}
}

// Estimate is a priced delivery for one address.
type Estimate struct {
	Address    *address.Address `json:"address"`
	DistanceKm float64          `json:"distanceKm"`
	CostCents  int64            `json:"costCents"`
}

// EstimateForAddress resolves the address (the customer's default when
// addressID is nil) and prices delivery to it.
func (s *ShippingService) EstimateForAddress(
	ctx context.Context,
	act actor.Actor,
	addressID *int64,
) (*Estimate, error) {
	var addr *address.Address
	var err error
	if addressID == nil {
		addr, err = s.addressRepo.GetDefaultByCustomerID(ctx, act.CustomerID)
	} else {
		addr, err = s.addressRepo.GetByID(ctx, *addressID)
	}
	if err != nil {
		return nil, err
	}

	if addr.CustomerID != act.CustomerID && !act.IsAdmin() {
		return nil, actor.ErrForbidden
	}

	return s.Estimate(ctx, addr)
}

// Estimate prices delivery to an already loaded address.
func (s *ShippingService) Estimate(ctx context.Context, addr *address.Address) (*Estimate, error) {
	point, err := s.resolveCoordinates(ctx, addr)
	if err != nil {
		return nil, err
	}

	distance := geo.HaversineKm(s.origin, *point)

	return &Estimate{
		Address:    addr,
		DistanceKm: distance,
		CostCents:  CostForDistanceKm(distance),
	}, nil
}

// resolveCoordinates finds the address point: the stored column first,
// then the cache, then a geocoder round-trip whose result is written
// back to both.
func (s *ShippingService) resolveCoordinates(ctx context.Context, addr *address.Address) (*geo.Point, error) {
	if addr.Coordinates != nil {
		return addr.Coordinates, nil
	}

	key := cacheKey(addr.ID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			if point, err := parsePoint(cached); err == nil {
				return point, nil
			}
		} else if !errors.Is(err, redisdal.ErrCacheMiss) {
			slog.Warn("Coordinate cache read failed", "address_id", addr.ID, "error", err)
		}
	}

	point, err := s.geocoder.Resolve(ctx, addr.Text)
	if err != nil {
		return nil, err
	}

	if err := s.addressRepo.UpdateCoordinates(ctx, addr.ID, *point); err != nil {
		slog.Warn("Failed to persist geocoded coordinates", "address_id", addr.ID, "error", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, formatPoint(*point), s.cacheTTL); err != nil {
			slog.Warn("Coordinate cache write failed", "address_id", addr.ID, "error", err)
		}
	}

	return point, nil
}

func cacheKey(addressID int64) string {
	return fmt.Sprintf("shipping:coords:%d", addressID)
}

func formatPoint(p geo.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}

func parsePoint(s string) (*geo.Point, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed cached point %q", s)
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, err
	}

	return &geo.Point{Lat: lat, Lon: lon}, nil
}
