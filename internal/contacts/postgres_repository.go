package contacts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgxpool.Pool used by the repository.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores contacts in the relational database.
type PostgresRepository struct {
	db Querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("contacts: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithQuerier allows injecting mocks for tests.
func NewPostgresRepositoryWithQuerier(q Querier) *PostgresRepository {
	return &PostgresRepository{db: q}
}

// Create inserts a new contact row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateContactRequest, urgencyLevel int) (*Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if urgencyLevel < 1 {
		urgencyLevel = 1
	}

	id := uuid.New()
	query := `
		INSERT INTO contacts (id, name, email, phone, enquiry_type, preferred_location, message, urgency_level, privacy_consent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Phone,
		req.EnquiryType,
		req.PreferredLocation,
		req.Message,
		urgencyLevel,
		req.PrivacyConsent,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("contacts: insert failed: %w", err)
	}

	return &Contact{
		ID:                id.String(),
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		EnquiryType:       req.EnquiryType,
		PreferredLocation: req.PreferredLocation,
		Message:           req.Message,
		UrgencyLevel:      urgencyLevel,
		PrivacyConsent:    req.PrivacyConsent,
		CreatedAt:         createdAt,
	}, nil
}

// GetByID fetches a contact row.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Contact, error) {
	query := `
		SELECT id, name, email, phone, enquiry_type, preferred_location, message, urgency_level, privacy_consent, created_at
		FROM contacts
		WHERE id = $1
	`
	var c Contact
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.EnquiryType,
		&c.PreferredLocation,
		&c.Message,
		&c.UrgencyLevel,
		&c.PrivacyConsent,
		&c.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("contacts: select failed: %w", err)
	}
	return &c, nil
}

// List returns all contacts, most urgent first then newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*Contact, error) {
	query := `
		SELECT id, name, email, phone, enquiry_type, preferred_location, message, urgency_level, privacy_consent, created_at
		FROM contacts
		ORDER BY urgency_level DESC, created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("contacts: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.EnquiryType,
			&c.PreferredLocation,
			&c.Message,
			&c.UrgencyLevel,
			&c.PrivacyConsent,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("contacts: scan row: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
