package scheduling_test

import (
	"testing"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
	"github.com/koesert/Rooster-Systeem-sub000/internal/scheduling"
	"github.com/stretchr/testify/assert"
)

func shiftAt(start string, end *string, openEnded bool, standby bool) *domain.Shift {
	return &domain.Shift{
		UserID:    1,
		Date:      calendar.NewDate(2025, time.March, 24),
		StartTime: start,
		EndTime:   end,
		OpenEnded: openEnded,
		Standby:   standby,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name      string
		existing  *domain.Shift
		candStart string
		candEnd   *string
		candOpen  bool
		want      bool
	}{
		{
			name:      "部分重叠",
			existing:  shiftAt("09:00:00", strPtr("17:00:00"), false, false),
			candStart: "16:00:00", candEnd: strPtr("20:00:00"),
			want: true,
		},
		{
			name:      "完全包含",
			existing:  shiftAt("09:00:00", strPtr("17:00:00"), false, false),
			candStart: "10:00:00", candEnd: strPtr("12:00:00"),
			want: true,
		},
		{
			name:      "首尾相接不算冲突",
			existing:  shiftAt("09:00:00", strPtr("18:00:00"), false, false),
			candStart: "18:00:00", candEnd: strPtr("22:00:00"),
			want: false,
		},
		{
			name:      "反向首尾相接也不算",
			existing:  shiftAt("18:00:00", strPtr("22:00:00"), false, false),
			candStart: "09:00:00", candEnd: strPtr("18:00:00"),
			want: false,
		},
		{
			name:      "完全分离",
			existing:  shiftAt("09:00:00", strPtr("12:00:00"), false, false),
			candStart: "14:00:00", candEnd: strPtr("17:00:00"),
			want: false,
		},
		{
			name:      "开放班次吞掉之后的所有时间",
			existing:  shiftAt("15:00:00", nil, true, false),
			candStart: "20:00:00", candEnd: strPtr("22:00:00"),
			want: true,
		},
		{
			name:      "开放班次开始前不冲突",
			existing:  shiftAt("15:00:00", nil, true, false),
			candStart: "09:00:00", candEnd: strPtr("15:00:00"),
			want: false,
		},
		{
			name:      "候选也是开放班次",
			existing:  shiftAt("09:00:00", strPtr("12:00:00"), false, false),
			candStart: "10:00:00", candEnd: nil, candOpen: true,
			want: true,
		},
		{
			name:      "替补班次永远不冲突",
			existing:  shiftAt("09:00:00", strPtr("17:00:00"), false, true),
			candStart: "10:00:00", candEnd: strPtr("12:00:00"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scheduling.Overlaps(tt.existing, tt.candStart, tt.candEnd, tt.candOpen))
		})
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	a := shiftAt("09:00:00", strPtr("13:00:00"), false, false)
	b := shiftAt("12:00:00", strPtr("18:00:00"), false, false)

	got1 := scheduling.Overlaps(a, b.StartTime, b.EndTime, b.OpenEnded)
	got2 := scheduling.Overlaps(b, a.StartTime, a.EndTime, a.OpenEnded)

	assert.True(t, got1)
	assert.Equal(t, got1, got2)
}
