package scheduling

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
)

// DayEdit 是员工对周视图中某一天的一次编辑，Status 为空表示
// 清掉该天的记录，恢复为未填写
type DayEdit struct {
	Status *domain.AvailabilityStatus
	Note   string
}

type AvailabilityManager struct {
	users          WorkerDirectory
	days           AvailabilityStore
	lookAheadWeeks int

	// 测试中会替换成固定时间
	Now func() time.Time
}

func NewAvailabilityManager(users WorkerDirectory, days AvailabilityStore, lookAheadWeeks int) *AvailabilityManager {
	return &AvailabilityManager{
		users:          users,
		days:           days,
		lookAheadWeeks: lookAheadWeeks,
		Now:            time.Now,
	}
}

func (m *AvailabilityManager) requireUser(id int64) error {
	if _, err := m.users.GetUserByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: id 为 %d", domain.ErrWorkerNotFound, id)
		}
		return err
	}
	return nil
}

// weekOpenForEdit 判断某周是否允许员工直接编辑：目标周的周一必须
// 严格晚于本周周一，且不能超出向前看窗口（本周加上后面三周）。
// 本周和窗口之外的周一律锁定
func (m *AvailabilityManager) weekOpenForEdit(monday calendar.Date) bool {
	currentMonday := calendar.MondayOf(calendar.DateOf(m.Now()))
	lastOpenMonday := currentMonday.AddDays((m.lookAheadWeeks - 1) * 7)

	return monday.After(currentMonday.Time) && !monday.After(lastOpenMonday.Time)
}

func (m *AvailabilityManager) weekDays(userID int64, monday calendar.Date) (map[string]*domain.AvailabilityDay, error) {
	days, err := m.days.GetAvailabilityDays(userID, monday, monday.AddDays(6))
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*domain.AvailabilityDay, len(days))
	for _, day := range days {
		byDate[calendar.FormatDateToken(day.Date)] = day
	}
	return byDate, nil
}

// GetWeek 返回一周七天（周一~周日）的可用性视图，没有记录的日期
// 状态为空，表示未填写
func (m *AvailabilityManager) GetWeek(userID int64, weekStartToken string) ([]domain.DayAvailability, error) {
	if err := m.requireUser(userID); err != nil {
		return nil, err
	}

	weekStart, err := calendar.ParseDateToken(weekStartToken)
	if err != nil {
		return nil, err
	}
	monday := calendar.MondayOf(weekStart)

	byDate, err := m.weekDays(userID, monday)
	if err != nil {
		return nil, err
	}

	week := make([]domain.DayAvailability, 7)
	for i := range week {
		date := monday.AddDays(i)
		week[i] = domain.DayAvailability{
			Date:    date,
			DayName: calendar.DayName(date),
		}

		if day, exists := byDate[calendar.FormatDateToken(date)]; exists {
			week[i].ID = &day.ID
			week[i].Status = &day.Status
			week[i].Note = day.Note
		}
	}

	return week, nil
}

// UpdateWeek 一次性处理整周七天的编辑，整批变更在一个事务中提交，
// 不存在部分成功。规则：
//   - 目标周必须处于可编辑窗口内，否则返回 Locked
//   - 已是休假状态的天直接跳过，休假只能通过请假流程撤销
//   - 提交状态为空的天删除已有记录
func (m *AvailabilityManager) UpdateWeek(userID int64, weekStartToken string, edits [7]DayEdit) error {
	if err := m.requireUser(userID); err != nil {
		return err
	}

	weekStart, err := calendar.ParseDateToken(weekStartToken)
	if err != nil {
		return err
	}
	monday := calendar.MondayOf(weekStart)

	if !m.weekOpenForEdit(monday) {
		return fmt.Errorf("%w: 只能编辑下周起 %d 周内的可用性", domain.ErrLocked, m.lookAheadWeeks-1)
	}

	byDate, err := m.weekDays(userID, monday)
	if err != nil {
		return err
	}

	muts := make([]domain.AvailabilityMutation, 0, 7)
	for i, edit := range edits {
		date := monday.AddDays(i)
		existing := byDate[calendar.FormatDateToken(date)]

		// 休假优先于直接编辑，覆盖和清空都跳过
		if existing != nil && existing.Status == domain.AvailabilityTimeOff {
			continue
		}

		if edit.Status == nil {
			if existing != nil {
				muts = append(muts, domain.AvailabilityMutation{
					UserID: userID,
					Date:   date,
				})
			}
			continue
		}

		status := *edit.Status
		muts = append(muts, domain.AvailabilityMutation{
			UserID: userID,
			Date:   date,
			Status: &status,
			Note:   strings.TrimSpace(edit.Note),
		})
	}

	if len(muts) == 0 {
		return nil
	}

	return m.days.ApplyAvailabilityMutations(muts)
}

// TimeOffMutations 生成请假联动写入的整批变更：status 非空时把区间内
// 每一天置为该状态，为空时清掉这些天的记录。调用方负责把它和请假
// 状态更新放在同一个事务里
func TimeOffMutations(userID int64, start calendar.Date, end calendar.Date, status *domain.AvailabilityStatus) []domain.AvailabilityMutation {
	muts := make([]domain.AvailabilityMutation, 0)
	for date := start; !date.After(end.Time); date = date.AddDays(1) {
		mut := domain.AvailabilityMutation{
			UserID: userID,
			Date:   date,
		}
		if status != nil {
			s := *status
			mut.Status = &s
		}
		muts = append(muts, mut)
	}
	return muts
}

// SyncTimeOff 由请假流程驱动，绕过员工编辑的锁定窗口直接写入
func (m *AvailabilityManager) SyncTimeOff(userID int64, start calendar.Date, end calendar.Date, status *domain.AvailabilityStatus) error {
	if err := m.requireUser(userID); err != nil {
		return err
	}
	if end.Before(start.Time) {
		return fmt.Errorf("%w: 结束日期早于开始日期", domain.ErrInvalidRange)
	}

	return m.days.ApplyAvailabilityMutations(TimeOffMutations(userID, start, end, status))
}
