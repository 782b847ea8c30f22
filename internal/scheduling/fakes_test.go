package scheduling_test

import (
	"database/sql"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
	"github.com/koesert/Rooster-Systeem-sub000/internal/scheduling"
)

// 内存版的存储实现，约定和 database/sql 一致：找不到记录返回 sql.ErrNoRows

type fakeDirectory struct {
	users map[int64]*domain.User
}

func newFakeDirectory(users ...*domain.User) *fakeDirectory {
	d := &fakeDirectory{users: map[int64]*domain.User{}}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *fakeDirectory) GetUserByID(id int64) (*domain.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

type fakeShiftStore struct {
	shifts map[int64]*domain.Shift
	nextID int64
}

func newFakeShiftStore() *fakeShiftStore {
	return &fakeShiftStore{shifts: map[int64]*domain.Shift{}, nextID: 1}
}

func (s *fakeShiftStore) CreateShift(shift *domain.Shift) error {
	shift.ID = s.nextID
	s.nextID++
	copied := *shift
	s.shifts[shift.ID] = &copied
	return nil
}

func (s *fakeShiftStore) UpdateShift(shift *domain.Shift) error {
	if _, ok := s.shifts[shift.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *shift
	s.shifts[shift.ID] = &copied
	return nil
}

func (s *fakeShiftStore) DeleteShift(id int64) error {
	if _, ok := s.shifts[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.shifts, id)
	return nil
}

func (s *fakeShiftStore) GetShiftByID(id int64) (*domain.Shift, error) {
	shift, ok := s.shifts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return shift, nil
}

func (s *fakeShiftStore) GetShiftsByUserAndDate(userID int64, date calendar.Date) ([]*domain.Shift, error) {
	result := []*domain.Shift{}
	for _, shift := range s.shifts {
		if shift.UserID == userID && shift.Date.Equal(date.Time) {
			result = append(result, shift)
		}
	}
	return result, nil
}

func (s *fakeShiftStore) GetShiftsByUserAndDateRange(userID int64, from calendar.Date, to calendar.Date) ([]*domain.Shift, error) {
	result := []*domain.Shift{}
	for _, shift := range s.shifts {
		if shift.UserID == userID && !shift.Date.Before(from.Time) && !shift.Date.After(to.Time) {
			result = append(result, shift)
		}
	}
	return result, nil
}

func (s *fakeShiftStore) GetShiftsByDateRange(from calendar.Date, to calendar.Date) ([]*domain.Shift, error) {
	result := []*domain.Shift{}
	for _, shift := range s.shifts {
		if !shift.Date.Before(from.Time) && !shift.Date.After(to.Time) {
			result = append(result, shift)
		}
	}
	return result, nil
}

type fakeAvailabilityStore struct {
	days   map[int64]map[string]*domain.AvailabilityDay
	nextID int64
}

func newFakeAvailabilityStore() *fakeAvailabilityStore {
	return &fakeAvailabilityStore{days: map[int64]map[string]*domain.AvailabilityDay{}, nextID: 1}
}

func (s *fakeAvailabilityStore) GetAvailabilityDays(userID int64, from calendar.Date, to calendar.Date) ([]*domain.AvailabilityDay, error) {
	result := []*domain.AvailabilityDay{}
	for _, day := range s.days[userID] {
		if !day.Date.Before(from.Time) && !day.Date.After(to.Time) {
			result = append(result, day)
		}
	}
	return result, nil
}

func (s *fakeAvailabilityStore) ApplyAvailabilityMutations(muts []domain.AvailabilityMutation) error {
	for _, mut := range muts {
		key := calendar.FormatDateToken(mut.Date)

		if mut.Status == nil {
			delete(s.days[mut.UserID], key)
			continue
		}

		if s.days[mut.UserID] == nil {
			s.days[mut.UserID] = map[string]*domain.AvailabilityDay{}
		}

		if existing, ok := s.days[mut.UserID][key]; ok {
			existing.Status = *mut.Status
			existing.Note = mut.Note
			continue
		}

		s.days[mut.UserID][key] = &domain.AvailabilityDay{
			ID:     s.nextID,
			UserID: mut.UserID,
			Date:   mut.Date,
			Status: *mut.Status,
			Note:   mut.Note,
		}
		s.nextID++
	}
	return nil
}

func (s *fakeAvailabilityStore) statusOn(userID int64, date calendar.Date) *domain.AvailabilityStatus {
	day, ok := s.days[userID][calendar.FormatDateToken(date)]
	if !ok {
		return nil
	}
	return &day.Status
}

type fakeTimeOffStore struct {
	requests     map[int64]*domain.TimeOffRequest
	availability *fakeAvailabilityStore
	nextID       int64
}

func newFakeTimeOffStore(availability *fakeAvailabilityStore) *fakeTimeOffStore {
	return &fakeTimeOffStore{
		requests:     map[int64]*domain.TimeOffRequest{},
		availability: availability,
		nextID:       1,
	}
}

func (s *fakeTimeOffStore) CreateTimeOffRequest(req *domain.TimeOffRequest) error {
	req.ID = s.nextID
	s.nextID++
	copied := *req
	s.requests[req.ID] = &copied
	return nil
}

func (s *fakeTimeOffStore) GetTimeOffRequestByID(id int64) (*domain.TimeOffRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *req
	return &copied, nil
}

func (s *fakeTimeOffStore) GetTimeOffRequestsByUser(userID int64) ([]*domain.TimeOffRequest, error) {
	result := []*domain.TimeOffRequest{}
	for _, req := range s.requests {
		if req.UserID == userID {
			result = append(result, req)
		}
	}
	return result, nil
}

func (s *fakeTimeOffStore) ListTimeOffRequests(filter scheduling.TimeOffFilter) ([]*domain.TimeOffRequest, error) {
	result := []*domain.TimeOffRequest{}
	for _, req := range s.requests {
		if filter.UserID != nil && req.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if filter.From != nil && req.EndDate.Before(filter.From.Time) {
			continue
		}
		if filter.To != nil && req.StartDate.After(filter.To.Time) {
			continue
		}
		result = append(result, req)
	}
	return result, nil
}

func (s *fakeTimeOffStore) UpdateTimeOffRequest(req *domain.TimeOffRequest, muts []domain.AvailabilityMutation) error {
	if _, ok := s.requests[req.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *req
	s.requests[req.ID] = &copied
	return s.availability.ApplyAvailabilityMutations(muts)
}

func (s *fakeTimeOffStore) DeleteTimeOffRequest(id int64, muts []domain.AvailabilityMutation) error {
	if _, ok := s.requests[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.requests, id)
	return s.availability.ApplyAvailabilityMutations(muts)
}

// 测试共用的固定时间，2025-03-19 是周三
var testNow = time.Date(2025, time.March, 19, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time {
	return testNow
}

func strPtr(s string) *string {
	return &s
}

func statusPtr(s domain.AvailabilityStatus) *domain.AvailabilityStatus {
	return &s
}
