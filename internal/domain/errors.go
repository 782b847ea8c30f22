package domain

import (
	"errors"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
)

// 业务校验错误，handler 层通过 errors.Is 将其映射为给用户看的提示，
// 其余错误一律按服务器内部错误处理
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrWorkerNotFound     = errors.New("员工不存在")
	ErrInvalidFormat      = calendar.ErrInvalidFormat
	ErrInvalidRange       = errors.New("时间范围无效")
	ErrInsufficientNotice = errors.New("请假申请距开始日期不足最短提前天数")
	ErrOverlap            = errors.New("时间范围存在冲突")
	ErrLocked             = errors.New("当前状态不允许该操作")
	ErrForbidden          = errors.New("权限不足")
)
