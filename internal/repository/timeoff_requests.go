package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
	"github.com/koesert/Rooster-Systeem-sub000/internal/scheduling"
)

const timeOffColumns = `id, user_id, start_date, end_date, reason, status, approver_id, created_at, version`

func scanTimeOffRequest(scan func(dst ...any) error) (*domain.TimeOffRequest, error) {
	req := &domain.TimeOffRequest{}
	dst := []any{
		&req.ID,
		&req.UserID,
		&req.StartDate,
		&req.EndDate,
		&req.Reason,
		&req.Status,
		&req.ApproverID,
		&req.CreatedAt,
		&req.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *Repository) CreateTimeOffRequest(req *domain.TimeOffRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO time_off_requests (user_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{req.UserID, req.StartDate, req.EndDate, req.Reason, req.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTimeOffRequestByID(id int64) (*domain.TimeOffRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `SELECT ` + timeOffColumns + ` FROM time_off_requests WHERE id = $1`

	return scanTimeOffRequest(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}

func (r *Repository) GetTimeOffRequestsByUser(userID int64) ([]*domain.TimeOffRequest, error) {
	query := `SELECT ` + timeOffColumns + ` FROM time_off_requests WHERE user_id = $1 ORDER BY start_date`
	return r.queryTimeOffRequests(query, userID)
}

// ListTimeOffRequests 按员工、状态和日期区间过滤，过滤条件都是可选的。
// 日期过滤取的是申请区间与查询区间相交的记录
func (r *Repository) ListTimeOffRequests(filter scheduling.TimeOffFilter) ([]*domain.TimeOffRequest, error) {
	query := `SELECT ` + timeOffColumns + ` FROM time_off_requests WHERE TRUE`
	args := make([]any, 0, 4)

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND end_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND start_date <= $%d", len(args))
	}

	query += " ORDER BY created_at DESC, id DESC"

	return r.queryTimeOffRequests(query, args...)
}

func (r *Repository) queryTimeOffRequests(query string, args ...any) ([]*domain.TimeOffRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.TimeOffRequest, 0)
	for rows.Next() {
		req, err := scanTimeOffRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// UpdateTimeOffRequest 更新申请本身，并在同一个事务里执行请假联动的
// 可用性变更，保证申请状态和日历上的休假不会出现不一致的中间状态
func (r *Repository) UpdateTimeOffRequest(req *domain.TimeOffRequest, muts []domain.AvailabilityMutation) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE time_off_requests
		SET
			start_date = $1,
			end_date = $2,
			reason = $3,
			status = $4,
			approver_id = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	args := []any{req.StartDate, req.EndDate, req.Reason, req.Status, req.ApproverID, req.ID, req.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&req.CreatedAt, &req.Version); err != nil {
		return err
	}

	if err := applyAvailabilityMutations(ctx, tx, muts); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) DeleteTimeOffRequest(id int64, muts []domain.AvailabilityMutation) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM time_off_requests WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return err
	}

	if err := applyAvailabilityMutations(ctx, tx, muts); err != nil {
		return err
	}

	return tx.Commit()
}
