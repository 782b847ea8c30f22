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

func newAvailabilityManager() (*scheduling.AvailabilityManager, *fakeAvailabilityStore) {
	directory := newFakeDirectory(&domain.User{ID: 1, FullName: "王伟", Role: domain.RoleEmployee})
	store := newFakeAvailabilityStore()

	m := scheduling.NewAvailabilityManager(directory, store, 4)
	m.Now = fixedNow
	return m, store
}

// 固定时间是 2025-03-19 周三，本周周一是 3 月 17 日
var (
	currentMonday = calendar.NewDate(2025, time.March, 17)
	nextMonday    = currentMonday.AddDays(7)
)

func TestAvailabilityManager_GetWeek(t *testing.T) {
	m, store := newAvailabilityManager()

	status := domain.AvailabilityAvailable
	require.NoError(t, store.ApplyAvailabilityMutations([]domain.AvailabilityMutation{
		{UserID: 1, Date: nextMonday.AddDays(2), Status: &status, Note: "只能上午"},
	}))

	week, err := m.GetWeek(1, calendar.FormatDateToken(nextMonday))
	require.NoError(t, err)
	require.Len(t, week, 7)

	assert.Equal(t, nextMonday, week[0].Date)
	assert.Equal(t, "周一", week[0].DayName)
	assert.Nil(t, week[0].Status)

	require.NotNil(t, week[2].Status)
	assert.Equal(t, domain.AvailabilityAvailable, *week[2].Status)
	assert.Equal(t, "只能上午", week[2].Note)

	assert.Equal(t, "周日", week[6].DayName)
}

func TestAvailabilityManager_GetWeek_SnapsToMonday(t *testing.T) {
	m, _ := newAvailabilityManager()

	// 传周四也会对齐到那一周的周一
	week, err := m.GetWeek(1, calendar.FormatDateToken(nextMonday.AddDays(3)))
	require.NoError(t, err)
	assert.Equal(t, nextMonday, week[0].Date)
}

func TestAvailabilityManager_UpdateWeek(t *testing.T) {
	m, store := newAvailabilityManager()

	edits := [7]scheduling.DayEdit{
		{Status: statusPtr(domain.AvailabilityAvailable)},
		{Status: statusPtr(domain.AvailabilityNotAvailable), Note: "  晚上有课  "},
	}

	require.NoError(t, m.UpdateWeek(1, calendar.FormatDateToken(nextMonday), edits))

	require.NotNil(t, store.statusOn(1, nextMonday))
	assert.Equal(t, domain.AvailabilityAvailable, *store.statusOn(1, nextMonday))

	day := store.days[1][calendar.FormatDateToken(nextMonday.AddDays(1))]
	require.NotNil(t, day)
	assert.Equal(t, domain.AvailabilityNotAvailable, day.Status)
	assert.Equal(t, "晚上有课", day.Note)

	// 没有填的天保持未填写
	assert.Nil(t, store.statusOn(1, nextMonday.AddDays(2)))
}

func TestAvailabilityManager_UpdateWeek_LockWindow(t *testing.T) {
	m, _ := newAvailabilityManager()
	edits := [7]scheduling.DayEdit{{Status: statusPtr(domain.AvailabilityAvailable)}}

	tests := []struct {
		name   string
		monday calendar.Date
		locked bool
	}{
		{"本周锁定", currentMonday, true},
		{"过去的周锁定", currentMonday.AddDays(-7), true},
		{"下周开放", currentMonday.AddDays(7), false},
		{"第三周开放", currentMonday.AddDays(14), false},
		{"窗口最后一周开放", currentMonday.AddDays(21), false},
		{"窗口之外锁定", currentMonday.AddDays(28), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.UpdateWeek(1, calendar.FormatDateToken(tt.monday), edits)
			if tt.locked {
				assert.ErrorIs(t, err, domain.ErrLocked)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAvailabilityManager_UpdateWeek_ClearDay(t *testing.T) {
	m, store := newAvailabilityManager()

	require.NoError(t, m.UpdateWeek(1, calendar.FormatDateToken(nextMonday), [7]scheduling.DayEdit{
		{Status: statusPtr(domain.AvailabilityAvailable)},
	}))
	require.NotNil(t, store.statusOn(1, nextMonday))

	// 状态为空的编辑删除记录
	require.NoError(t, m.UpdateWeek(1, calendar.FormatDateToken(nextMonday), [7]scheduling.DayEdit{}))
	assert.Nil(t, store.statusOn(1, nextMonday))
}

func TestAvailabilityManager_UpdateWeek_TimeOffWins(t *testing.T) {
	m, store := newAvailabilityManager()

	// 周二已经由请假流程置为休假
	timeOff := domain.AvailabilityTimeOff
	require.NoError(t, store.ApplyAvailabilityMutations(
		scheduling.TimeOffMutations(1, nextMonday.AddDays(1), nextMonday.AddDays(1), &timeOff),
	))

	// 员工把整周都标成可上班，休假那天应该原样保留
	edits := [7]scheduling.DayEdit{}
	for i := range edits {
		edits[i] = scheduling.DayEdit{Status: statusPtr(domain.AvailabilityAvailable)}
	}
	require.NoError(t, m.UpdateWeek(1, calendar.FormatDateToken(nextMonday), edits))

	assert.Equal(t, domain.AvailabilityTimeOff, *store.statusOn(1, nextMonday.AddDays(1)))
	assert.Equal(t, domain.AvailabilityAvailable, *store.statusOn(1, nextMonday))
	assert.Equal(t, domain.AvailabilityAvailable, *store.statusOn(1, nextMonday.AddDays(6)))
}

func TestAvailabilityManager_UpdateWeek_TimeOffSurvivesClear(t *testing.T) {
	m, store := newAvailabilityManager()

	// 周二已经由请假流程置为休假
	timeOff := domain.AvailabilityTimeOff
	require.NoError(t, store.ApplyAvailabilityMutations(
		scheduling.TimeOffMutations(1, nextMonday.AddDays(1), nextMonday.AddDays(1), &timeOff),
	))

	// 整周提交空状态，休假那天不能被清掉
	require.NoError(t, m.UpdateWeek(1, calendar.FormatDateToken(nextMonday), [7]scheduling.DayEdit{}))

	status := store.statusOn(1, nextMonday.AddDays(1))
	require.NotNil(t, status)
	assert.Equal(t, domain.AvailabilityTimeOff, *status)
}

func TestAvailabilityManager_UpdateWeek_UnknownWorker(t *testing.T) {
	m, _ := newAvailabilityManager()

	err := m.UpdateWeek(42, calendar.FormatDateToken(nextMonday), [7]scheduling.DayEdit{})
	assert.ErrorIs(t, err, domain.ErrWorkerNotFound)
}

func TestTimeOffMutations(t *testing.T) {
	timeOff := domain.AvailabilityTimeOff
	start := calendar.NewDate(2025, time.June, 10)
	end := calendar.NewDate(2025, time.June, 12)

	muts := scheduling.TimeOffMutations(1, start, end, &timeOff)
	require.Len(t, muts, 3)
	for i, mut := range muts {
		assert.Equal(t, start.AddDays(i), mut.Date)
		require.NotNil(t, mut.Status)
		assert.Equal(t, domain.AvailabilityTimeOff, *mut.Status)
	}

	// 状态为空生成的是删除
	cleared := scheduling.TimeOffMutations(1, start, end, nil)
	require.Len(t, cleared, 3)
	for _, mut := range cleared {
		assert.Nil(t, mut.Status)
	}

	// 单天区间只有一条
	assert.Len(t, scheduling.TimeOffMutations(1, start, start, &timeOff), 1)
}

func TestAvailabilityManager_SyncTimeOff_BypassesLock(t *testing.T) {
	m, store := newAvailabilityManager()

	// 请假联动不受编辑窗口限制，本周也能写
	timeOff := domain.AvailabilityTimeOff
	require.NoError(t, m.SyncTimeOff(1, currentMonday, currentMonday.AddDays(1), &timeOff))

	assert.Equal(t, domain.AvailabilityTimeOff, *store.statusOn(1, currentMonday))
	assert.Equal(t, domain.AvailabilityTimeOff, *store.statusOn(1, currentMonday.AddDays(1)))

	err := m.SyncTimeOff(1, currentMonday, currentMonday.AddDays(-1), &timeOff)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}
