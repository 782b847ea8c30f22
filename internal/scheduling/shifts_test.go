package scheduling_test

import (
	"testing"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
	"github.com/koesert/Rooster-Systeem-sub000/internal/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShiftService() (*scheduling.ShiftService, *fakeShiftStore) {
	directory := newFakeDirectory(
		&domain.User{ID: 1, FullName: "王伟", Role: domain.RoleEmployee},
		&domain.User{ID: 2, FullName: "李娟", Role: domain.RoleEmployee},
	)
	store := newFakeShiftStore()
	return scheduling.NewShiftService(directory, store), store
}

func TestShiftService_Create(t *testing.T) {
	svc, _ := newShiftService()

	shift := &domain.Shift{
		UserID:    1,
		Date:      calendar.NewDate(2025, time.March, 24),
		StartTime: "09:00:00",
		EndTime:   strPtr("17:00:00"),
		Note:      "  开店  ",
	}

	require.NoError(t, svc.Create(shift))
	assert.NotZero(t, shift.ID)
	assert.Equal(t, "开店", shift.Note)
}

func TestShiftService_Create_UnknownWorker(t *testing.T) {
	svc, _ := newShiftService()

	shift := &domain.Shift{
		UserID:    42,
		Date:      calendar.NewDate(2025, time.March, 24),
		StartTime: "09:00:00",
		EndTime:   strPtr("17:00:00"),
	}

	assert.ErrorIs(t, svc.Create(shift), domain.ErrWorkerNotFound)
}

func TestShiftService_Create_InvalidTimeRange(t *testing.T) {
	svc, _ := newShiftService()
	date := calendar.NewDate(2025, time.March, 24)

	tests := []struct {
		name  string
		shift *domain.Shift
	}{
		{"结束早于开始", &domain.Shift{UserID: 1, Date: date, StartTime: "17:00:00", EndTime: strPtr("09:00:00")}},
		{"结束等于开始", &domain.Shift{UserID: 1, Date: date, StartTime: "09:00:00", EndTime: strPtr("09:00:00")}},
		{"缺少结束时间", &domain.Shift{UserID: 1, Date: date, StartTime: "09:00:00"}},
		{"开始时间格式错误", &domain.Shift{UserID: 1, Date: date, StartTime: "9点", EndTime: strPtr("17:00:00")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Create(tt.shift), domain.ErrInvalidRange)
		})
	}
}

func TestShiftService_Create_OpenEndedDropsEndTime(t *testing.T) {
	svc, _ := newShiftService()

	shift := &domain.Shift{
		UserID:    1,
		Date:      calendar.NewDate(2025, time.March, 24),
		StartTime: "15:00:00",
		EndTime:   strPtr("17:00:00"),
		OpenEnded: true,
	}

	require.NoError(t, svc.Create(shift))
	assert.Nil(t, shift.EndTime)
}

func TestShiftService_Create_Conflict(t *testing.T) {
	svc, _ := newShiftService()
	date := calendar.NewDate(2025, time.March, 24)

	require.NoError(t, svc.Create(&domain.Shift{
		UserID: 1, Date: date, StartTime: "09:00:00", EndTime: strPtr("17:00:00"),
	}))

	err := svc.Create(&domain.Shift{
		UserID: 1, Date: date, StartTime: "16:00:00", EndTime: strPtr("20:00:00"),
	})
	assert.ErrorIs(t, err, domain.ErrOverlap)

	// 另一个员工同一时段不受影响
	assert.NoError(t, svc.Create(&domain.Shift{
		UserID: 2, Date: date, StartTime: "16:00:00", EndTime: strPtr("20:00:00"),
	}))

	// 次日同一时段也不受影响
	assert.NoError(t, svc.Create(&domain.Shift{
		UserID: 1, Date: date.AddDays(1), StartTime: "16:00:00", EndTime: strPtr("20:00:00"),
	}))
}

func TestShiftService_Create_StandbyNeverConflicts(t *testing.T) {
	svc, _ := newShiftService()
	date := calendar.NewDate(2025, time.March, 24)

	require.NoError(t, svc.Create(&domain.Shift{
		UserID: 1, Date: date, StartTime: "09:00:00", EndTime: strPtr("17:00:00"),
	}))

	// 替补班次可以压在正常班次上
	require.NoError(t, svc.Create(&domain.Shift{
		UserID: 1, Date: date, StartTime: "10:00:00", EndTime: strPtr("12:00:00"), Standby: true,
	}))

	// 正常班次也可以压在替补班次上
	assert.NoError(t, svc.Create(&domain.Shift{
		UserID: 1, Date: date, StartTime: "17:00:00", EndTime: strPtr("18:00:00"),
	}))
}

func TestShiftService_Update_ExcludesSelf(t *testing.T) {
	svc, _ := newShiftService()
	date := calendar.NewDate(2025, time.March, 24)

	shift := &domain.Shift{
		UserID: 1, Date: date, StartTime: "09:00:00", EndTime: strPtr("17:00:00"),
	}
	require.NoError(t, svc.Create(shift))

	// 改自己的时间不应和自己旧的区间冲突
	shift.StartTime = "10:00:00"
	shift.EndTime = strPtr("16:00:00")
	assert.NoError(t, svc.Update(shift))
}

func TestShiftService_Update_NotFound(t *testing.T) {
	svc, _ := newShiftService()

	err := svc.Update(&domain.Shift{
		ID: 99, UserID: 1, Date: calendar.NewDate(2025, time.March, 24),
		StartTime: "09:00:00", EndTime: strPtr("17:00:00"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShiftService_Delete(t *testing.T) {
	svc, store := newShiftService()

	shift := &domain.Shift{
		UserID: 1, Date: calendar.NewDate(2025, time.March, 24),
		StartTime: "09:00:00", EndTime: strPtr("17:00:00"),
	}
	require.NoError(t, svc.Create(shift))
	require.NoError(t, svc.Delete(shift.ID))

	assert.Empty(t, store.shifts)
	assert.ErrorIs(t, svc.Delete(shift.ID), domain.ErrNotFound)
}

func TestShiftService_ListForUser(t *testing.T) {
	svc, _ := newShiftService()
	monday := calendar.NewDate(2025, time.March, 24)

	require.NoError(t, svc.Create(&domain.Shift{
		UserID: 1, Date: monday, StartTime: "09:00:00", EndTime: strPtr("12:00:00"),
	}))
	require.NoError(t, svc.Create(&domain.Shift{
		UserID: 1, Date: monday.AddDays(10), StartTime: "09:00:00", EndTime: strPtr("12:00:00"),
	}))

	shifts, err := svc.ListForUser(1, monday, monday.AddDays(6))
	require.NoError(t, err)
	assert.Len(t, shifts, 1)

	_, err = svc.ListForUser(1, monday, monday.AddDays(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestShiftService_WeekRoster(t *testing.T) {
	svc, _ := newShiftService()

	// 2025-W13 是 3 月 24 日到 3 月 30 日
	require.NoError(t, svc.Create(&domain.Shift{
		UserID: 1, Date: calendar.NewDate(2025, time.March, 24), StartTime: "09:00:00", EndTime: strPtr("12:00:00"),
	}))
	require.NoError(t, svc.Create(&domain.Shift{
		UserID: 2, Date: calendar.NewDate(2025, time.March, 30), StartTime: "09:00:00", EndTime: strPtr("12:00:00"),
	}))
	require.NoError(t, svc.Create(&domain.Shift{
		UserID: 1, Date: calendar.NewDate(2025, time.March, 31), StartTime: "09:00:00", EndTime: strPtr("12:00:00"),
	}))

	shifts, err := svc.WeekRoster("2025-W13")
	require.NoError(t, err)
	assert.Len(t, shifts, 2)

	_, err = svc.WeekRoster("2025W13")
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}
