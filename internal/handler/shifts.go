package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
)

func (h *Handler) shiftFromURL(w http.ResponseWriter, r *http.Request) (*domain.Shift, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "班次ID无效")
		return nil, false
	}

	shift, err := h.shifts.GetByID(id)
	if err != nil {
		h.schedulingError(w, r, err)
		return nil, false
	}

	return shift, true
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkerID  int64   `json:"workerID" validate:"required"`
		Date      string  `json:"date" validate:"required"`
		StartTime string  `json:"startTime" validate:"required"`
		EndTime   *string `json:"endTime"`
		OpenEnded bool    `json:"openEnded"`
		Standby   bool    `json:"standby"`
		Note      string  `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := calendar.ParseDateToken(req.Date)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	shift := &domain.Shift{
		UserID:    req.WorkerID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		OpenEnded: req.OpenEnded,
		Standby:   req.Standby,
		Note:      req.Note,
	}

	if err := h.shifts.Create(shift); err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建班次成功", shift)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift, ok := h.shiftFromURL(w, r)
	if !ok {
		return
	}

	h.successResponse(w, r, "获取班次成功", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift, ok := h.shiftFromURL(w, r)
	if !ok {
		return
	}

	var req struct {
		Date      *string `json:"date"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		OpenEnded *bool   `json:"openEnded"`
		Standby   *bool   `json:"standby"`
		Note      *string `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Date != nil {
		date, err := calendar.ParseDateToken(*req.Date)
		if err != nil {
			h.schedulingError(w, r, err)
			return
		}
		shift.Date = date
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = req.EndTime
	}
	if req.OpenEnded != nil {
		shift.OpenEnded = *req.OpenEnded
	}
	if req.Standby != nil {
		shift.Standby = *req.Standby
	}
	if req.Note != nil {
		shift.Note = *req.Note
	}

	if err := h.shifts.Update(shift); err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新班次成功", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift, ok := h.shiftFromURL(w, r)
	if !ok {
		return
	}

	if err := h.shifts.Delete(shift.ID); err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班次成功", nil)
}

// GetWeekRoster 按 ISO 周标识（如 /shifts/week/2025-W07）返回整周的排班表
func (h *Handler) GetWeekRoster(w http.ResponseWriter, r *http.Request) {
	weekToken := chi.URLParam(r, "week")

	shifts, err := h.shifts.WeekRoster(weekToken)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取周排班表成功", shifts)
}

func (h *Handler) GetWorkerShifts(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.User)

	from, err := calendar.ParseDateToken(r.URL.Query().Get("from"))
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}
	to, err := calendar.ParseDateToken(r.URL.Query().Get("to"))
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	shifts, err := h.shifts.ListForUser(worker.ID, from, to)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工班次成功", shifts)
}
