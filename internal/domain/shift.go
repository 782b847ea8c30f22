package domain

import (
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
)

type Shift struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userID"`
	Date      calendar.Date `json:"date"`
	StartTime string        `json:"startTime"`
	EndTime   *string       `json:"endTime"` // 开放班次没有结束时间
	OpenEnded bool          `json:"openEnded"`
	Standby   bool          `json:"standby"`
	Note      string        `json:"note"`
	CreatedAt time.Time     `json:"createdAt"`
	Version   int32         `json:"-"`
}
