package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	"github.com/opsdesk/requisition_backend/internal/core/domain"
	portsrepo "github.com/opsdesk/requisition_backend/internal/core/ports/repositories"
)

type RequisitionRepository struct {
	db *pgxpool.Pool
}

func NewRequisitionRepository(db *pgxpool.Pool) *RequisitionRepository {
	return &RequisitionRepository{db: db}
}

// Ensure RequisitionRepository implements the facade
var _ portsrepo.RequisitionRepositoryFacade = (*RequisitionRepository)(nil)

const requisitionColumns = `
        requisition_id, requisition_number, title, department, category, priority,
        purpose, comment, items, total_amount, requester, approved_by_finance,
        approved_by_hod, account_to_pay, status, approved_on, rejected_on,
        attachments, created_at, updated_at`

func (r *RequisitionRepository) SaveRequisition(ctx context.Context, req domain.Requisition) error {
	query := `
        INSERT INTO requisitions (
            requisition_id, requisition_number, title, department, category, priority,
            purpose, comment, items, total_amount, requester, approved_by_finance,
            approved_by_hod, account_to_pay, status, approved_on, rejected_on,
            attachments, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
    `
	_, err := r.db.Exec(ctx, query,
		req.RequisitionID,
		req.RequisitionNumber,
		req.Title,
		req.Department,
		req.Category,
		req.Priority,
		req.Purpose,
		req.Comment,
		req.Items,
		req.TotalAmount,
		req.User,
		req.ApprovedByFinance,
		req.ApprovedByHeadOfDepartment,
		req.AccountToPay,
		req.Status,
		req.ApprovedOn,
		req.RejectedOn,
		req.Attachments,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("requisition number %s already taken: %w", req.RequisitionNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save requisition: %w", err)
	}
	return nil
}

func scanRequisition(row pgx.Row) (*domain.Requisition, error) {
	var req domain.Requisition
	err := row.Scan(
		&req.RequisitionID,
		&req.RequisitionNumber,
		&req.Title,
		&req.Department,
		&req.Category,
		&req.Priority,
		&req.Purpose,
		&req.Comment,
		&req.Items,
		&req.TotalAmount,
		&req.User,
		&req.ApprovedByFinance,
		&req.ApprovedByHeadOfDepartment,
		&req.AccountToPay,
		&req.Status,
		&req.ApprovedOn,
		&req.RejectedOn,
		&req.Attachments,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequisitionRepository) FindRequisitionByID(ctx context.Context, requisitionID string) (*domain.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE requisition_id = $1;`
	req, err := scanRequisition(r.db.QueryRow(ctx, query, requisitionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find requisition by ID: %w", err)
	}
	return req, nil
}

func (r *RequisitionRepository) FindRequisitions(ctx context.Context) ([]domain.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query requisitions: %w", err)
	}
	defer rows.Close()
	return collectRequisitions(rows)
}

func (r *RequisitionRepository) FindRequisitionsByRequesterName(ctx context.Context, name string) ([]domain.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE requester->>'name' = $1 ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query requisitions by requester: %w", err)
	}
	defer rows.Close()
	return collectRequisitions(rows)
}

func collectRequisitions(rows pgx.Rows) ([]domain.Requisition, error) {
	requisitions := []domain.Requisition{}
	for rows.Next() {
		req, err := scanRequisition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan requisition row: %w", err)
		}
		requisitions = append(requisitions, *req)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating requisition rows: %w", rows.Err())
	}
	return requisitions, nil
}

// ApplyTransition is a single conditional UPDATE: the whole transition lands
// atomically or not at all. COALESCE keeps fields the plan did not set.
func (r *RequisitionRepository) ApplyTransition(ctx context.Context, requisitionID string, plan domain.TransitionPlan, now time.Time) (*domain.Requisition, error) {
	query := `
        UPDATE requisitions
        SET status = $1,
            approved_on = COALESCE($2, approved_on),
            rejected_on = COALESCE($3, rejected_on),
            comment = COALESCE($4, comment),
            approved_by_finance = COALESCE($5, approved_by_finance),
            updated_at = $6
        WHERE requisition_id = $7
        RETURNING ` + requisitionColumns + `;
    `
	req, err := scanRequisition(r.db.QueryRow(ctx, query,
		plan.Status,
		plan.ApprovedOn,
		plan.RejectedOn,
		plan.Comment,
		plan.ApprovedByFinance,
		now,
		requisitionID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to apply requisition transition: %w", err)
	}
	return req, nil
}

func (r *RequisitionRepository) DeleteRequisition(ctx context.Context, requisitionID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM requisitions WHERE requisition_id = $1;`, requisitionID)
	if err != nil {
		return fmt.Errorf("failed to delete requisition: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
