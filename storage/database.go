// Package storage implements the primary-tier property source: a
// filter-driven SELECT against the warehouse's properties/addresses
// tables. Connection and query failures are returned as errors so the
// orchestrator can escalate; nothing here is allowed to panic past the
// boundary.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tanmoycuat/locationIntelligence/config"
	"github.com/tanmoycuat/locationIntelligence/models"
)

const dataSourceTag = "Synapse Database"

type Store struct {
	db *sql.DB
}

// NewStore opens a lazy connection pool. The pool is not pinged here: a
// down warehouse must surface as a fetch-time failure the orchestrator
// can recover from, not a startup fatal.
func NewStore(cfg config.Config) (*Store, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBSSLMode,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// FetchProperties queries the warehouse with every predicate the filter
// set can express server-side. A non-nil error means "no data from this
// tier", distinguishable from a valid empty result.
func (s *Store) FetchProperties(ctx context.Context, f models.Filters) ([]models.Property, error) {
	query, args := buildPropertyQuery(f)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var (
			p           models.Property
			id          int64
			lat, lon    sql.NullFloat64
			size        sql.NullInt64
			built       sql.NullInt64
			renovated   sql.NullInt64
			postalCode  sql.NullString
			lastUpdated sql.NullTime
		)
		if err := rows.Scan(
			&id,
			&p.PropertyName,
			&p.PropertyType,
			&p.Address,
			&p.City,
			&p.Country,
			&postalCode,
			&lat,
			&lon,
			&size,
			&built,
			&renovated,
			&lastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan property row: %w", err)
		}

		p.PropertyID = strconv.FormatInt(id, 10)
		p.PostalCode = postalCode.String
		if lat.Valid && lon.Valid {
			p.Latitude = &lat.Float64
			p.Longitude = &lon.Float64
		}
		if size.Valid {
			p.Size = int(size.Int64)
		}
		if built.Valid {
			year := int(built.Int64)
			p.YearBuilt = &year
		}
		if renovated.Valid {
			year := int(renovated.Int64)
			p.LastRenovation = &year
		}
		p.DataSource = dataSourceTag
		if lastUpdated.Valid {
			p.LastUpdated = lastUpdated.Time
		}

		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate property rows: %w", err)
	}

	return properties, nil
}

// buildPropertyQuery translates each present filter into an additional
// predicate on the properties/addresses join.
func buildPropertyQuery(f models.Filters) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT
			p.property_id,
			p.property_name,
			p.property_type,
			a.address_line1 || COALESCE(', ' || a.address_line2, '') AS address,
			a.city,
			a.country,
			a.postal_code,
			a.latitude,
			a.longitude,
			p.size,
			p.year_built,
			p.last_renovation,
			p.last_updated
		FROM properties p
		JOIN addresses a ON p.address_id = a.address_id
		WHERE 1=1`)

	var args []any
	if f.PropertyType != "" {
		args = append(args, f.PropertyType)
		fmt.Fprintf(&sb, " AND p.property_type = $%d", len(args))
	}
	if f.City != "" {
		args = append(args, f.City)
		fmt.Fprintf(&sb, " AND a.city = $%d", len(args))
	}
	if f.HasDateRange() {
		args = append(args, f.StartDate, f.EndDate)
		fmt.Fprintf(&sb, " AND p.last_updated BETWEEN $%d AND $%d", len(args)-1, len(args))
	}

	return sb.String(), args
}
