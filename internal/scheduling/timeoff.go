package scheduling

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
)

type TimeOffService struct {
	users      WorkerDirectory
	store      TimeOffStore
	noticeDays int

	// 测试中会替换成固定时间
	Now func() time.Time
}

func NewTimeOffService(users WorkerDirectory, store TimeOffStore, noticeDays int) *TimeOffService {
	return &TimeOffService{
		users:      users,
		store:      store,
		noticeDays: noticeDays,
		Now:        time.Now,
	}
}

func (s *TimeOffService) requireUser(id int64) error {
	if _, err := s.users.GetUserByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: id 为 %d", domain.ErrWorkerNotFound, id)
		}
		return err
	}
	return nil
}

func (s *TimeOffService) getRequest(id int64) (*domain.TimeOffRequest, error) {
	req, err := s.store.GetTimeOffRequestByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: 请假申请不存在", domain.ErrNotFound)
		}
		return nil, err
	}
	return req, nil
}

// 闭区间相交：s1 ≤ e2 且 s2 ≤ e1
func rangesIntersect(s1, e1, s2, e2 calendar.Date) bool {
	return !s1.After(e2.Time) && !s2.After(e1.Time)
}

// checkOverlap 检查新的日期区间是否与同一员工处于待审批或已批准
// 状态的其他申请相交，编辑时通过 excludeID 把自己排除掉
func (s *TimeOffService) checkOverlap(userID int64, excludeID int64, start, end calendar.Date) error {
	requests, err := s.store.GetTimeOffRequestsByUser(userID)
	if err != nil {
		return err
	}

	for _, req := range requests {
		if req.ID == excludeID || !req.Status.IsBlocking() {
			continue
		}
		if rangesIntersect(req.StartDate, req.EndDate, start, end) {
			return fmt.Errorf("%w: 与 %s 至 %s 的请假申请重叠",
				domain.ErrOverlap, calendar.FormatDateToken(req.StartDate), calendar.FormatDateToken(req.EndDate))
		}
	}

	return nil
}

func (s *TimeOffService) checkNotice(start calendar.Date) error {
	earliest := calendar.DateOf(s.Now()).AddDays(s.noticeDays)
	if start.Before(earliest.Time) {
		return fmt.Errorf("%w: 至少需要提前 %d 天申请", domain.ErrInsufficientNotice, s.noticeDays)
	}
	return nil
}

func (s *TimeOffService) Create(userID int64, reason string, start, end calendar.Date) (*domain.TimeOffRequest, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	if end.Before(start.Time) {
		return nil, fmt.Errorf("%w: 结束日期早于开始日期", domain.ErrInvalidRange)
	}
	if err := s.checkNotice(start); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(userID, 0, start, end); err != nil {
		return nil, err
	}

	req := &domain.TimeOffRequest{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Reason:    strings.TrimSpace(reason),
		Status:    domain.TimeOffPending,
	}

	if err := s.store.CreateTimeOffRequest(req); err != nil {
		return nil, err
	}

	return req, nil
}

// Decide 由经理批准或驳回待审批的申请。批准时休假会连同状态更新
// 一起写进可用性表
func (s *TimeOffService) Decide(requestID int64, managerID int64, newStatus domain.TimeOffStatus) (*domain.TimeOffRequest, error) {
	if newStatus != domain.TimeOffApproved && newStatus != domain.TimeOffRejected {
		return nil, fmt.Errorf("%w: 审批结果只能是批准或驳回", domain.ErrInvalidFormat)
	}

	req, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.TimeOffPending {
		return nil, fmt.Errorf("%w: 只有待审批的申请才能被审批", domain.ErrLocked)
	}

	req.Status = newStatus
	req.ApproverID = &managerID

	var muts []domain.AvailabilityMutation
	if newStatus == domain.TimeOffApproved {
		timeOff := domain.AvailabilityTimeOff
		muts = TimeOffMutations(req.UserID, req.StartDate, req.EndDate, &timeOff)
	}

	if err := s.store.UpdateTimeOffRequest(req, muts); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *TimeOffService) Cancel(requestID int64, callerID int64) (*domain.TimeOffRequest, error) {
	req, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.UserID != callerID {
		return nil, fmt.Errorf("%w: 只能取消自己的申请", domain.ErrForbidden)
	}
	if req.Status != domain.TimeOffPending {
		return nil, fmt.Errorf("%w: 只有待审批的申请才能取消", domain.ErrLocked)
	}

	req.Status = domain.TimeOffCancelled

	if err := s.store.UpdateTimeOffRequest(req, nil); err != nil {
		return nil, err
	}

	return req, nil
}

// Delete 删除申请：员工只能删除自己的待审批申请，经理可以删除任何
// 申请。删除已批准的申请时会把区间内的休假记录一并清掉
func (s *TimeOffService) Delete(requestID int64, caller *domain.User) error {
	req, err := s.getRequest(requestID)
	if err != nil {
		return err
	}

	if !caller.IsManagerOrAbove() {
		if req.UserID != caller.ID {
			return fmt.Errorf("%w: 只能删除自己的申请", domain.ErrForbidden)
		}
		if req.Status != domain.TimeOffPending {
			return fmt.Errorf("%w: 只有待审批的申请才能删除", domain.ErrLocked)
		}
	}

	var muts []domain.AvailabilityMutation
	if req.Status == domain.TimeOffApproved {
		muts = TimeOffMutations(req.UserID, req.StartDate, req.EndDate, nil)
	}

	return s.store.DeleteTimeOffRequest(req.ID, muts)
}

// Edit 修改申请。员工只能改自己的待审批申请，且重新适用提前期规则；
// 经理走特权路径，可以改任何状态的申请甚至直接改状态，但日期合法性
// 和重叠检查照旧。原先已批准的申请被改动时，旧区间的休假先清掉，
// 新区间（仍为已批准时）再写入，两者和状态更新同属一个事务
func (s *TimeOffService) Edit(requestID int64, caller *domain.User, reason string, start, end calendar.Date, newStatus *domain.TimeOffStatus) (*domain.TimeOffRequest, error) {
	req, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}

	manager := caller.IsManagerOrAbove()
	if !manager {
		if req.UserID != caller.ID {
			return nil, fmt.Errorf("%w: 只能修改自己的申请", domain.ErrForbidden)
		}
		if req.Status != domain.TimeOffPending {
			return nil, fmt.Errorf("%w: 只有待审批的申请才能修改", domain.ErrLocked)
		}
		if newStatus != nil {
			return nil, fmt.Errorf("%w: 员工不能直接修改申请状态", domain.ErrForbidden)
		}
	}

	if end.Before(start.Time) {
		return nil, fmt.Errorf("%w: 结束日期早于开始日期", domain.ErrInvalidRange)
	}
	if !manager {
		if err := s.checkNotice(start); err != nil {
			return nil, err
		}
	}
	if err := s.checkOverlap(req.UserID, req.ID, start, end); err != nil {
		return nil, err
	}

	wasApproved := req.Status == domain.TimeOffApproved
	oldStart, oldEnd := req.StartDate, req.EndDate

	req.Reason = strings.TrimSpace(reason)
	req.StartDate = start
	req.EndDate = end
	if manager && newStatus != nil {
		req.Status = *newStatus
		// 和 Decide 一样记录审批人
		if *newStatus == domain.TimeOffApproved || *newStatus == domain.TimeOffRejected {
			req.ApproverID = &caller.ID
		}
	}

	var muts []domain.AvailabilityMutation
	if wasApproved {
		muts = append(muts, TimeOffMutations(req.UserID, oldStart, oldEnd, nil)...)
	}
	if req.Status == domain.TimeOffApproved {
		timeOff := domain.AvailabilityTimeOff
		muts = append(muts, TimeOffMutations(req.UserID, req.StartDate, req.EndDate, &timeOff)...)
	}

	if err := s.store.UpdateTimeOffRequest(req, muts); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *TimeOffService) GetByID(requestID int64) (*domain.TimeOffRequest, error) {
	return s.getRequest(requestID)
}

func (s *TimeOffService) List(filter TimeOffFilter) ([]*domain.TimeOffRequest, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(filter.From.Time) {
		return nil, fmt.Errorf("%w: 结束日期早于开始日期", domain.ErrInvalidRange)
	}
	return s.store.ListTimeOffRequests(filter)
}
