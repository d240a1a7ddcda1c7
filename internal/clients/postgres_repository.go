package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores clients in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("clients: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new client row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO clients (id, full_name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.FullName,
		req.Email,
		req.Phone,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("clients: insert failed: %w", err)
	}

	return &Client{
		ID:        id.String(),
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches a client by ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	query := `
		SELECT id, full_name, email, phone, created_at
		FROM clients
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	var client Client
	if err := row.Scan(
		&client.ID,
		&client.FullName,
		&client.Email,
		&client.Phone,
		&client.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("clients: select failed: %w", err)
	}
	return &client, nil
}

// List returns all clients ordered by registration time.
func (r *PostgresRepository) List(ctx context.Context) ([]*Client, error) {
	query := `
		SELECT id, full_name, email, phone, created_at
		FROM clients
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("clients: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Client
	for rows.Next() {
		var client Client
		if err := rows.Scan(
			&client.ID,
			&client.FullName,
			&client.Email,
			&client.Phone,
			&client.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("clients: scan failed: %w", err)
		}
		out = append(out, &client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("clients: iterate failed: %w", err)
	}
	return out, nil
}
