package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
)

func (r *Repository) GetAvailabilityDays(userID int64, from calendar.Date, to calendar.Date) ([]*domain.AvailabilityDay, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, user_id, date, status, note, created_at, version
		FROM availability_days
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]*domain.AvailabilityDay, 0)
	for rows.Next() {
		day := &domain.AvailabilityDay{}
		dst := []any{&day.ID, &day.UserID, &day.Date, &day.Status, &day.Note, &day.CreatedAt, &day.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}

// applyAvailabilityMutations 在给定事务里逐条执行可用性变更：
// 状态为空删除记录，否则按 (user_id, date) 冲突键做 upsert。
// 周编辑和请假联动都走这一条路径
func applyAvailabilityMutations(ctx context.Context, tx *sql.Tx, muts []domain.AvailabilityMutation) error {
	for _, mut := range muts {
		if mut.Status == nil {
			query := `DELETE FROM availability_days WHERE user_id = $1 AND date = $2`
			if _, err := tx.ExecContext(ctx, query, mut.UserID, mut.Date); err != nil {
				return err
			}
			continue
		}

		query := `
			INSERT INTO availability_days (user_id, date, status, note)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, date) DO UPDATE
			SET status = EXCLUDED.status, note = EXCLUDED.note, version = availability_days.version + 1
		`
		if _, err := tx.ExecContext(ctx, query, mut.UserID, mut.Date, *mut.Status, mut.Note); err != nil {
			return err
		}
	}

	return nil
}

// ApplyAvailabilityMutations 把整批变更放在一个事务里提交，不存在部分成功
func (r *Repository) ApplyAvailabilityMutations(muts []domain.AvailabilityMutation) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := applyAvailabilityMutations(ctx, tx, muts); err != nil {
		return err
	}

	return tx.Commit()
}
