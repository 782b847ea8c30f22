package scheduling

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
)

type ShiftService struct {
	users  WorkerDirectory
	shifts ShiftStore
}

func NewShiftService(users WorkerDirectory, shifts ShiftStore) *ShiftService {
	return &ShiftService{
		users:  users,
		shifts: shifts,
	}
}

func (s *ShiftService) requireUser(id int64) error {
	if _, err := s.users.GetUserByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: id 为 %d", domain.ErrWorkerNotFound, id)
		}
		return err
	}
	return nil
}

// validateTimeRange 检查班次时间是否合法：开始时间必须可解析；
// 非开放班次必须有结束时间且严格晚于开始时间。开放班次的结束时间
// 会被抹掉，保证两者不会同时存在
func validateTimeRange(shift *domain.Shift) error {
	start, err := clockSeconds(shift.StartTime)
	if err != nil {
		return fmt.Errorf("%w: 开始时间格式错误", domain.ErrInvalidRange)
	}

	if shift.OpenEnded {
		shift.EndTime = nil
		return nil
	}

	if shift.EndTime == nil {
		return fmt.Errorf("%w: 非开放班次必须有结束时间", domain.ErrInvalidRange)
	}

	end, err := clockSeconds(*shift.EndTime)
	if err != nil {
		return fmt.Errorf("%w: 结束时间格式错误", domain.ErrInvalidRange)
	}

	if end <= start {
		return fmt.Errorf("%w: 结束时间必须晚于开始时间", domain.ErrInvalidRange)
	}

	return nil
}

func (s *ShiftService) validateNoConflict(shift *domain.Shift) error {
	// 替补班次不参与冲突检查，双向都不算
	if shift.Standby {
		return nil
	}

	existing, err := s.shifts.GetShiftsByUserAndDate(shift.UserID, shift.Date)
	if err != nil {
		return err
	}

	if conflict := firstConflict(existing, shift.ID, shift.StartTime, shift.EndTime, shift.OpenEnded); conflict != nil {
		return fmt.Errorf("%w: 与当天 %s 开始的班次冲突", domain.ErrOverlap, conflict.StartTime)
	}

	return nil
}

func (s *ShiftService) Create(shift *domain.Shift) error {
	if err := s.requireUser(shift.UserID); err != nil {
		return err
	}
	if err := validateTimeRange(shift); err != nil {
		return err
	}

	shift.Note = strings.TrimSpace(shift.Note)

	if err := s.validateNoConflict(shift); err != nil {
		return err
	}

	return s.shifts.CreateShift(shift)
}

func (s *ShiftService) Update(shift *domain.Shift) error {
	if _, err := s.shifts.GetShiftByID(shift.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: 班次不存在", domain.ErrNotFound)
		}
		return err
	}

	if err := s.requireUser(shift.UserID); err != nil {
		return err
	}
	if err := validateTimeRange(shift); err != nil {
		return err
	}

	shift.Note = strings.TrimSpace(shift.Note)

	if err := s.validateNoConflict(shift); err != nil {
		return err
	}

	return s.shifts.UpdateShift(shift)
}

func (s *ShiftService) Delete(id int64) error {
	if _, err := s.shifts.GetShiftByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: 班次不存在", domain.ErrNotFound)
		}
		return err
	}

	return s.shifts.DeleteShift(id)
}

func (s *ShiftService) GetByID(id int64) (*domain.Shift, error) {
	shift, err := s.shifts.GetShiftByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: 班次不存在", domain.ErrNotFound)
		}
		return nil, err
	}
	return shift, nil
}

func (s *ShiftService) ListForUser(userID int64, from calendar.Date, to calendar.Date) ([]*domain.Shift, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	if to.Before(from.Time) {
		return nil, fmt.Errorf("%w: 结束日期早于开始日期", domain.ErrInvalidRange)
	}

	return s.shifts.GetShiftsByUserAndDateRange(userID, from, to)
}

// WeekRoster 按 ISO 周标识（如 "2025-W07"）返回整周所有人的班次
func (s *ShiftService) WeekRoster(weekToken string) ([]*domain.Shift, error) {
	year, week, err := calendar.ParseISOWeekToken(weekToken)
	if err != nil {
		return nil, err
	}

	monday, sunday, err := calendar.WeekRangeFromISOWeek(year, week)
	if err != nil {
		return nil, err
	}

	return s.shifts.GetShiftsByDateRange(monday, sunday)
}
