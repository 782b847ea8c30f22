package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 对外接口上所有日期一律使用 日-月-年 形式的文本，例如 "21-03-2025"
const DateTokenLayout = "02-01-2006"

var ErrInvalidFormat = errors.New("格式无效")

var dayNames = [7]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// MondayOf 返回 d 所在 ISO 周的周一，一周按 周一~周日 计算，
// 因此周日要往前退六天
func MondayOf(d Date) Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// DayName 返回本地化的星期名称
func DayName(d Date) string {
	return dayNames[(int(d.Weekday())+6)%7]
}

func ParseDateToken(token string) (Date, error) {
	if token == "" {
		return Date{}, fmt.Errorf("%w: 日期不能为空", ErrInvalidFormat)
	}

	if t, err := time.Parse(DateTokenLayout, token); err == nil {
		return DateOf(t), nil
	}

	// 兜底再尝试一次 ISO 格式，方便脚本调用
	if t, err := time.Parse(time.DateOnly, token); err == nil {
		return DateOf(t), nil
	}

	return Date{}, fmt.Errorf("%w: 无法解析日期 %q", ErrInvalidFormat, token)
}

func FormatDateToken(d Date) string {
	return d.Format(DateTokenLayout)
}

// WeekRangeFromISOWeek 解析 ISO (年, 周) 对应的 周一~周日 范围。
// ISO 规定第一周是包含 1 月 4 日的那一周
func WeekRangeFromISOWeek(year int, week int) (Date, Date, error) {
	if week < 1 || week > 53 {
		return Date{}, Date{}, fmt.Errorf("%w: 周数 %d 超出 1~53", ErrInvalidFormat, week)
	}

	jan4 := NewDate(year, time.January, 4)
	monday := MondayOf(jan4).AddDays((week - 1) * 7)
	sunday := monday.AddDays(6)

	return monday, sunday, nil
}

// ParseISOWeekToken 解析形如 "2025-W07" 的周标识，周数补零到两位
func ParseISOWeekToken(token string) (int, int, error) {
	yearPart, weekPart, found := strings.Cut(token, "-W")
	if !found || len(weekPart) != 2 {
		return 0, 0, fmt.Errorf("%w: 无法解析周标识 %q", ErrInvalidFormat, token)
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: 无法解析周标识 %q", ErrInvalidFormat, token)
	}

	week, err := strconv.Atoi(weekPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: 无法解析周标识 %q", ErrInvalidFormat, token)
	}

	return year, week, nil
}
