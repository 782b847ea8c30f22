package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMondayOf(t *testing.T) {
	tests := []struct {
		name string
		in   calendar.Date
		want calendar.Date
	}{
		{"周一取自己", calendar.NewDate(2025, time.March, 17), calendar.NewDate(2025, time.March, 17)},
		{"周三退两天", calendar.NewDate(2025, time.March, 19), calendar.NewDate(2025, time.March, 17)},
		{"周六退五天", calendar.NewDate(2025, time.March, 22), calendar.NewDate(2025, time.March, 17)},
		{"周日退六天", calendar.NewDate(2025, time.March, 23), calendar.NewDate(2025, time.March, 17)},
		{"跨月", calendar.NewDate(2025, time.May, 1), calendar.NewDate(2025, time.April, 28)},
		{"跨年", calendar.NewDate(2025, time.January, 1), calendar.NewDate(2024, time.December, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.MondayOf(tt.in))
		})
	}
}

func TestDayName(t *testing.T) {
	monday := calendar.NewDate(2025, time.March, 17)
	names := []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

	for i, want := range names {
		assert.Equal(t, want, calendar.DayName(monday.AddDays(i)))
	}
}

func TestParseDateToken(t *testing.T) {
	d, err := calendar.ParseDateToken("21-03-2025")
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.March, 21), d)

	// 回写保持同一种格式
	assert.Equal(t, "21-03-2025", calendar.FormatDateToken(d))
}

func TestParseDateToken_ISOFallback(t *testing.T) {
	d, err := calendar.ParseDateToken("2025-03-21")
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.March, 21), d)
}

func TestParseDateToken_Invalid(t *testing.T) {
	for _, token := range []string{"", "2025/03/21", "32-01-2025", "21-13-2025", "随便写的"} {
		_, err := calendar.ParseDateToken(token)
		assert.ErrorIs(t, err, calendar.ErrInvalidFormat, "token %q", token)
	}
}

func TestWeekRangeFromISOWeek(t *testing.T) {
	// 2024 年第一周包含 1 月 4 日，周一是 1 月 1 日
	monday, sunday, err := calendar.WeekRangeFromISOWeek(2024, 1)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2024, time.January, 1), monday)
	assert.Equal(t, calendar.NewDate(2024, time.January, 7), sunday)

	// 2026 年 1 月 1 日是周四，第一周的周一落在 2025 年
	monday, sunday, err = calendar.WeekRangeFromISOWeek(2026, 1)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.December, 29), monday)
	assert.Equal(t, calendar.NewDate(2026, time.January, 4), sunday)
}

func TestWeekRangeFromISOWeek_MatchesISOWeek(t *testing.T) {
	// 范围内每一天的 ISOWeek 都应该回到同一个 (年, 周)
	for week := 1; week <= 52; week++ {
		monday, sunday, err := calendar.WeekRangeFromISOWeek(2025, week)
		require.NoError(t, err)

		for d := monday; !d.After(sunday.Time); d = d.AddDays(1) {
			y, w := d.ISOWeek()
			assert.Equal(t, 2025, y)
			assert.Equal(t, week, w)
		}
	}
}

func TestWeekRangeFromISOWeek_OutOfRange(t *testing.T) {
	_, _, err := calendar.WeekRangeFromISOWeek(2025, 0)
	assert.ErrorIs(t, err, calendar.ErrInvalidFormat)

	_, _, err = calendar.WeekRangeFromISOWeek(2025, 54)
	assert.ErrorIs(t, err, calendar.ErrInvalidFormat)
}

func TestParseISOWeekToken(t *testing.T) {
	year, week, err := calendar.ParseISOWeekToken("2025-W07")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 7, week)
}

func TestParseISOWeekToken_Invalid(t *testing.T) {
	for _, token := range []string{"", "2025W07", "2025-W7", "2025-W123", "abcd-Wxy"} {
		_, _, err := calendar.ParseISOWeekToken(token)
		assert.ErrorIs(t, err, calendar.ErrInvalidFormat, "token %q", token)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := calendar.NewDate(2025, time.March, 21)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"21-03-2025"`, string(data))

	var parsed calendar.Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d, parsed)
}

func TestDateNormalizesTimezone(t *testing.T) {
	// 不同时区写入的同一天要相等
	loc := time.FixedZone("UTC+8", 8*3600)
	a := calendar.DateOf(time.Date(2025, time.March, 21, 23, 30, 0, 0, loc))
	b := calendar.DateOf(time.Date(2025, time.March, 21, 1, 0, 0, 0, time.UTC))

	assert.Equal(t, a, b)
}
