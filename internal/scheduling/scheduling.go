package scheduling

import (
	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
)

// 引擎只依赖下面这些存储接口，生产环境由 repository 提供实现，
// 测试里注入内存假实现。找不到记录时返回 sql.ErrNoRows，和
// database/sql 的约定保持一致

type WorkerDirectory interface {
	GetUserByID(id int64) (*domain.User, error)
}

type ShiftStore interface {
	CreateShift(shift *domain.Shift) error
	UpdateShift(shift *domain.Shift) error
	DeleteShift(id int64) error
	GetShiftByID(id int64) (*domain.Shift, error)
	GetShiftsByUserAndDate(userID int64, date calendar.Date) ([]*domain.Shift, error)
	GetShiftsByUserAndDateRange(userID int64, from calendar.Date, to calendar.Date) ([]*domain.Shift, error)
	GetShiftsByDateRange(from calendar.Date, to calendar.Date) ([]*domain.Shift, error)
}

type AvailabilityStore interface {
	GetAvailabilityDays(userID int64, from calendar.Date, to calendar.Date) ([]*domain.AvailabilityDay, error)
	// ApplyAvailabilityMutations 必须把整批变更放在同一个事务中执行
	ApplyAvailabilityMutations(muts []domain.AvailabilityMutation) error
}

type TimeOffFilter struct {
	UserID *int64
	Status *domain.TimeOffStatus
	From   *calendar.Date
	To     *calendar.Date
}

type TimeOffStore interface {
	CreateTimeOffRequest(req *domain.TimeOffRequest) error
	GetTimeOffRequestByID(id int64) (*domain.TimeOffRequest, error)
	GetTimeOffRequestsByUser(userID int64) ([]*domain.TimeOffRequest, error)
	ListTimeOffRequests(filter TimeOffFilter) ([]*domain.TimeOffRequest, error)
	// 申请状态和可用性表的联动写入必须在同一个事务中完成，
	// 避免出现申请已批准但日历上没有休假的中间状态
	UpdateTimeOffRequest(req *domain.TimeOffRequest, muts []domain.AvailabilityMutation) error
	DeleteTimeOffRequest(id int64, muts []domain.AvailabilityMutation) error
}
