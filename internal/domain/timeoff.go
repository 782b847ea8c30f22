package domain

import (
	"fmt"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
)

type TimeOffStatus string

const (
	TimeOffPending   TimeOffStatus = "待审批"
	TimeOffApproved  TimeOffStatus = "已批准"
	TimeOffRejected  TimeOffStatus = "已驳回"
	TimeOffCancelled TimeOffStatus = "已取消"
)

// ParseTimeOffStatus 只应在外部接口边界使用，内部一律直接用常量
func ParseTimeOffStatus(s string) (TimeOffStatus, error) {
	switch TimeOffStatus(s) {
	case TimeOffPending, TimeOffApproved, TimeOffRejected, TimeOffCancelled:
		return TimeOffStatus(s), nil
	default:
		return "", fmt.Errorf("%w: 未知的请假状态 %q", ErrInvalidFormat, s)
	}
}

// IsBlocking 表示该状态的申请会阻止同一员工提交与之重叠的新申请
func (s TimeOffStatus) IsBlocking() bool {
	return s == TimeOffPending || s == TimeOffApproved
}

type TimeOffRequest struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"userID"`
	StartDate  calendar.Date `json:"startDate"`
	EndDate    calendar.Date `json:"endDate"` // 含当天
	Reason     string        `json:"reason"`
	Status     TimeOffStatus `json:"status"`
	ApproverID *int64        `json:"approverID"`
	CreatedAt  time.Time     `json:"createdAt"`
	Version    int32         `json:"-"`
}
