package bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgxpool.Pool used by the repository; it allows
// injecting pgxmock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores bookings in the relational database. Service
// and client details are kept as JSONB blobs to match the booking form's
// free-form shape.
type PostgresRepository struct {
	db Querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("bookings: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithQuerier allows injecting mocks for tests.
func NewPostgresRepositoryWithQuerier(q Querier) *PostgresRepository {
	return &PostgresRepository{db: q}
}

// Create inserts a new confirmed booking row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	serviceJSON, err := json.Marshal(req.Service)
	if err != nil {
		return nil, fmt.Errorf("bookings: marshal service: %w", err)
	}
	clientJSON, err := json.Marshal(req.Client)
	if err != nil {
		return nil, fmt.Errorf("bookings: marshal client: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO bookings (id, service, client, date, time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		serviceJSON,
		clientJSON,
		req.Date,
		req.Time,
		StatusConfirmed,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("bookings: insert failed: %w", err)
	}

	return &Booking{
		ID:        id.String(),
		Service:   req.Service,
		Client:    req.Client,
		Date:      req.Date,
		Time:      req.Time,
		Status:    StatusConfirmed,
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches a booking row.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT id, service, client, date, time, status, created_at
		FROM bookings
		WHERE id = $1
	`
	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("bookings: select failed: %w", err)
	}
	return booking, nil
}

// List returns all bookings, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*Booking, error) {
	query := `
		SELECT id, service, client, date, time, status, created_at
		FROM bookings
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("bookings: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("bookings: scan row: %w", err)
		}
		out = append(out, booking)
	}
	return out, rows.Err()
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var (
		b           Booking
		serviceJSON []byte
		clientJSON  []byte
	)
	if err := row.Scan(&b.ID, &serviceJSON, &clientJSON, &b.Date, &b.Time, &b.Status, &b.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(serviceJSON, &b.Service); err != nil {
		return nil, fmt.Errorf("decode service: %w", err)
	}
	if err := json.Unmarshal(clientJSON, &b.Client); err != nil {
		return nil, fmt.Errorf("decode client: %w", err)
	}
	return &b, nil
}
