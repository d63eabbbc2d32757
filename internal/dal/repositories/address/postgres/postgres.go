package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/storefront/internal/dal/postgres"
	"github.com/corray333/storefront/internal/service/models/address"
	"github.com/corray333/storefront/internal/service/models/geo"
	"github.com/jackc/pgx/v5"
)

// AddressDal represents delivery address data access layer model
type AddressDal struct {
	Id         int64
	CustomerId int64
	Text       string
	Lat        *float64
	Lon        *float64
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ToModel converts AddressDal to service layer Address model
func (a *AddressDal) ToModel() *address.Address {
	var coords *geo.Point
	if a.Lat != nil && a.Lon != nil {
		coords = &geo.Point{Lat: *a.Lat, Lon: *a.Lon}
	}

	return &address.Address{
		ID:          a.Id,
		CustomerID:  a.CustomerId,
		Text:        a.Text,
		Coordinates: coords,
		IsDefault:   a.IsDefault,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

var addressColumns = []string{
	"id",
	"customer_id",
	"address_text",
	"lat",
	"lon",
	"is_default",
	"created_at",
	"updated_at",
}

type PostgresAddressRepository struct {
	conn postgres.Querier
}

func NewPostgresAddressRepository(conn postgres.Querier) *PostgresAddressRepository {
	return &PostgresAddressRepository{
		conn: conn,
	}
}

func (r *PostgresAddressRepository) getOne(ctx context.Context, pred interface{}) (*address.Address, error) {
	query, args, err := sq.Select(addressColumns...).
		From("delivery_addresses").
		Where(pred).
		Limit(1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal AddressDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.CustomerId,
		&dal.Text,
		&dal.Lat,
		&dal.Lon,
		&dal.IsDefault,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, address.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get delivery address: %w", err)
	}

	return dal.ToModel(), nil
}

// GetByID retrieves a delivery address by its id.
func (r *PostgresAddressRepository) GetByID(ctx context.Context, id int64) (*address.Address, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetDefaultByCustomerID retrieves the customer's default delivery address.
func (r *PostgresAddressRepository) GetDefaultByCustomerID(
	ctx context.Context,
	customerID int64,
) (*address.Address, error) {
	addr, err := r.getOne(ctx, sq.Eq{"customer_id": customerID, "is_default": true})
	if err != nil {
		if errors.Is(err, address.ErrNotFound) {
			return nil, address.ErrNoDefault
		}

		return nil, err
	}

	return addr, nil
}

// UpdateCoordinates stores the geocoded point on the address row.
func (r *PostgresAddressRepository) UpdateCoordinates(ctx context.Context, id int64, point geo.Point) error {
	query, args, err := sq.Update("delivery_addresses").
		Set("lat", point.Lat).
		Set("lon", point.Lon).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update delivery address coordinates: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return address.ErrNotFound
	}

	return nil
}
