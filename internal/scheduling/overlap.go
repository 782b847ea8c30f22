package scheduling

import (
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
)

const clockLayout = "15:04:05"

// 开放班次在比较时视为持续到当天最后一秒
const endOfDaySeconds = 23*3600 + 59*60 + 59

func clockSeconds(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

func intervalOf(start string, end *string, openEnded bool) (int, int, bool) {
	s, err := clockSeconds(start)
	if err != nil {
		return 0, 0, false
	}

	if openEnded || end == nil {
		return s, endOfDaySeconds, true
	}

	e, err := clockSeconds(*end)
	if err != nil {
		return 0, 0, false
	}

	return s, e, true
}

// Overlaps 判断同一天内已有班次和候选时间段是否冲突。规则：
//  1. 替补班次不保证到场，永远不参与冲突检查
//  2. 开放班次视为持续到 23:59:59
//  3. 区间按半开 [start, end) 比较，首尾相接不算冲突
//
// 时间格式在写入前已经校验过，这里解析失败的脏数据直接视为不冲突
func Overlaps(existing *domain.Shift, candStart string, candEnd *string, candOpenEnded bool) bool {
	if existing.Standby {
		return false
	}

	s1, e1, ok := intervalOf(existing.StartTime, existing.EndTime, existing.OpenEnded)
	if !ok {
		return false
	}

	s2, e2, ok := intervalOf(candStart, candEnd, candOpenEnded)
	if !ok {
		return false
	}

	return s1 < e2 && s2 < e1
}

// firstConflict 返回候选时间段在同一天冲突的第一个班次，检查到即止。
// excludeID 用来在编辑时把自己从比较集合中排除
func firstConflict(existing []*domain.Shift, excludeID int64, candStart string, candEnd *string, candOpenEnded bool) *domain.Shift {
	for _, shift := range existing {
		if shift.ID == excludeID {
			continue
		}
		if Overlaps(shift, candStart, candEnd, candOpenEnded) {
			return shift
		}
	}
	return nil
}
