package domain

import (
	"fmt"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable    AvailabilityStatus = "可上班"
	AvailabilityNotAvailable AvailabilityStatus = "不可上班"
	AvailabilityTimeOff      AvailabilityStatus = "休假"
)

// ParseAvailabilityStatus 只应在外部接口边界使用，内部一律直接用常量
func ParseAvailabilityStatus(s string) (AvailabilityStatus, error) {
	switch AvailabilityStatus(s) {
	case AvailabilityAvailable, AvailabilityNotAvailable, AvailabilityTimeOff:
		return AvailabilityStatus(s), nil
	default:
		return "", fmt.Errorf("%w: 未知的可用性状态 %q", ErrInvalidFormat, s)
	}
}

type AvailabilityDay struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"userID"`
	Date      calendar.Date      `json:"date"`
	Status    AvailabilityStatus `json:"status"`
	Note      string             `json:"note"`
	CreatedAt time.Time          `json:"createdAt"`
	Version   int32              `json:"-"`
}

// DayAvailability 是周视图中的一天，没有记录的日期 ID 和 Status 为空，
// 表示该天未填写
type DayAvailability struct {
	ID      *int64              `json:"id"`
	Date    calendar.Date       `json:"date"`
	DayName string              `json:"dayName"`
	Status  *AvailabilityStatus `json:"status"`
	Note    string              `json:"note"`
}

// AvailabilityMutation 描述对某个 (员工, 日期) 的一次写入，
// Status 为空表示删除该天的记录
type AvailabilityMutation struct {
	UserID int64
	Date   calendar.Date
	Status *AvailabilityStatus
	Note   string
}
