package repository

import (
	"context"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
)

const shiftColumns = `id, user_id, date, start_time, end_time, open_ended, standby, note, created_at, version`

func scanShift(scan func(dst ...any) error) (*domain.Shift, error) {
	shift := &domain.Shift{}
	dst := []any{
		&shift.ID,
		&shift.UserID,
		&shift.Date,
		&shift.StartTime,
		&shift.EndTime,
		&shift.OpenEnded,
		&shift.Standby,
		&shift.Note,
		&shift.CreatedAt,
		&shift.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return shift, nil
}

func (r *Repository) queryShifts(query string, args ...any) ([]*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(rows.Scan)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shifts (user_id, date, start_time, end_time, open_ended, standby, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{shift.UserID, shift.Date, shift.StartTime, shift.EndTime, shift.OpenEnded, shift.Standby, shift.Note}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	return scanShift(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}

func (r *Repository) GetShiftsByUserAndDate(userID int64, date calendar.Date) ([]*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE user_id = $1 AND date = $2 ORDER BY start_time`
	return r.queryShifts(query, userID, date)
}

func (r *Repository) GetShiftsByUserAndDateRange(userID int64, from calendar.Date, to calendar.Date) ([]*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE user_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date, start_time`
	return r.queryShifts(query, userID, from, to)
}

func (r *Repository) GetShiftsByDateRange(from calendar.Date, to calendar.Date) ([]*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE date BETWEEN $1 AND $2 ORDER BY date, start_time, user_id`
	return r.queryShifts(query, from, to)
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE shifts
		SET
			user_id = $1,
			date = $2,
			start_time = $3,
			end_time = $4,
			open_ended = $5,
			standby = $6,
			note = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING created_at, version
	`

	args := []any{shift.UserID, shift.Date, shift.StartTime, shift.EndTime, shift.OpenEnded, shift.Standby, shift.Note, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM shifts WHERE id = $1`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
