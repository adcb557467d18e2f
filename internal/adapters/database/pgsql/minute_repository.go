package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	"github.com/opsdesk/requisition_backend/internal/core/domain"
	portsrepo "github.com/opsdesk/requisition_backend/internal/core/ports/repositories"
)

type MinuteRepository struct {
	db *pgxpool.Pool
}

func NewMinuteRepository(db *pgxpool.Pool) *MinuteRepository {
	return &MinuteRepository{db: db}
}

var _ portsrepo.MinuteRepositoryFacade = (*MinuteRepository)(nil)

const minuteColumns = `
        minute_id, title, meeting_date, attendees, body, action_items,
        created_by, created_at, updated_at`

func (r *MinuteRepository) SaveMinute(ctx context.Context, minute domain.Minute) error {
	query := `
        INSERT INTO minutes (
            minute_id, title, meeting_date, attendees, body, action_items,
            created_by, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		minute.MinuteID,
		minute.Title,
		minute.Date,
		minute.Attendees,
		minute.Body,
		minute.ActionItems,
		minute.CreatedBy,
		minute.CreatedAt,
		minute.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save minute: %w", err)
	}
	return nil
}

func scanMinute(row pgx.Row) (*domain.Minute, error) {
	var minute domain.Minute
	err := row.Scan(
		&minute.MinuteID,
		&minute.Title,
		&minute.Date,
		&minute.Attendees,
		&minute.Body,
		&minute.ActionItems,
		&minute.CreatedBy,
		&minute.CreatedAt,
		&minute.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &minute, nil
}

func (r *MinuteRepository) FindMinuteByID(ctx context.Context, minuteID string) (*domain.Minute, error) {
	query := `SELECT ` + minuteColumns + ` FROM minutes WHERE minute_id = $1;`
	minute, err := scanMinute(r.db.QueryRow(ctx, query, minuteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find minute by ID: %w", err)
	}
	return minute, nil
}

func (r *MinuteRepository) FindMinutes(ctx context.Context, limit int, offset int) ([]domain.Minute, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + minuteColumns + ` FROM minutes ORDER BY meeting_date DESC LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query minutes: %w", err)
	}
	defer rows.Close()

	minutes := []domain.Minute{}
	for rows.Next() {
		minute, err := scanMinute(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan minute row: %w", err)
		}
		minutes = append(minutes, *minute)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating minute rows: %w", rows.Err())
	}
	return minutes, nil
}

func (r *MinuteRepository) UpdateMinute(ctx context.Context, minute domain.Minute) error {
	query := `
        UPDATE minutes
        SET title = $1, meeting_date = $2, attendees = $3, body = $4,
            action_items = $5, updated_at = $6
        WHERE minute_id = $7;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		minute.Title,
		minute.Date,
		minute.Attendees,
		minute.Body,
		minute.ActionItems,
		minute.UpdatedAt,
		minute.MinuteID,
	)
	if err != nil {
		return fmt.Errorf("failed to update minute: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MinuteRepository) DeleteMinute(ctx context.Context, minuteID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM minutes WHERE minute_id = $1;`, minuteID)
	if err != nil {
		return fmt.Errorf("failed to delete minute: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
