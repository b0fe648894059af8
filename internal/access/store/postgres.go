package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"vitrina/internal/access/models"
	"vitrina/internal/sentinel"
)

// PostgresStore persists allow-list records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed allow-list store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a record unless the telegram id is already granted.
func (s *PostgresStore) Create(ctx context.Context, record *models.AccessRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	query := `
		INSERT INTO access_records (id, telegram_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, record.ID, record.TelegramID, record.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("telegram id must be unique: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create access record: %w", err)
	}
	return nil
}

// FindByTelegramID retrieves the record for a telegram id.
func (s *PostgresStore) FindByTelegramID(ctx context.Context, telegramID int64) (*models.AccessRecord, error) {
	query := `
		SELECT id, telegram_id, created_at
		FROM access_records
		WHERE telegram_id = $1
	`
	record := &models.AccessRecord{}
	err := s.db.QueryRowContext(ctx, query, telegramID).Scan(&record.ID, &record.TelegramID, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find access record: %w", err)
	}
	return record, nil
}

// Delete removes the record for a telegram id.
func (s *PostgresStore) Delete(ctx context.Context, telegramID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM access_records WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return fmt.Errorf("delete access record: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete access record rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// ListAll returns all records ordered by creation time, newest first.
func (s *PostgresStore) ListAll(ctx context.Context) ([]*models.AccessRecord, error) {
	query := `
		SELECT id, telegram_id, created_at
		FROM access_records
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list access records: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var records []*models.AccessRecord
	for rows.Next() {
		record := &models.AccessRecord{}
		if err := rows.Scan(&record.ID, &record.TelegramID, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan access record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate access records: %w", err)
	}
	return records, nil
}

// Count returns the total number of records.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM access_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count access records: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
