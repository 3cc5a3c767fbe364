package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Run is one stored analysis or optimization request with its result.
type Run struct {
	ID        uuid.UUID       `json:"id"`
	UserID    int             `json:"user_id"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Output    json.RawMessage `json:"output"`
	CreatedAt time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
	SaveRun(ctx context.Context, run Run) (Run, error)
	ListRuns(ctx context.Context, userID int) ([]Run, error)
	GetRun(ctx context.Context, userID int, id uuid.UUID) (Run, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT UNIQUE NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS analysis_runs (
	id UUID PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	kind TEXT NOT NULL,
	input JSONB NOT NULL,
	output JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS analysis_runs_user_idx ON analysis_runs (user_id, created_at DESC);`

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return 0, ErrDuplicate
	}
	return id, err
}

// GetBylogin returns a zero id and empty hash when the login is unknown.
func (r *PostgresUserRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresUserRepository) SaveRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	query := "INSERT INTO analysis_runs (id, user_id, kind, input, output) VALUES ($1, $2, $3, $4, $5) RETURNING created_at"
	err := r.db.QueryRowContext(ctx, query, run.ID, run.UserID, run.Kind, []byte(run.Input), []byte(run.Output)).Scan(&run.CreatedAt)
	return run, err
}

func (r *PostgresUserRepository) ListRuns(ctx context.Context, userID int) ([]Run, error) {
	query := "SELECT id, user_id, kind, input, output, created_at FROM analysis_runs WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.UserID, &run.Kind, &run.Input, &run.Output, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepository) GetRun(ctx context.Context, userID int, id uuid.UUID) (Run, error) {
	var run Run
	query := "SELECT id, user_id, kind, input, output, created_at FROM analysis_runs WHERE id=$1 AND user_id=$2"
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&run.ID, &run.UserID, &run.Kind, &run.Input, &run.Output, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	return run, err
}
