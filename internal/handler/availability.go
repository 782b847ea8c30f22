package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
	"github.com/koesert/Rooster-Systeem-sub000/internal/scheduling"
)

func (h *Handler) GetMyAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	weekStart := chi.URLParam(r, "weekStart")

	week, err := h.availability.GetWeek(myInfo.ID, weekStart)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取可用性成功", week)
}

func (h *Handler) UpdateMyAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	weekStart := chi.URLParam(r, "weekStart")

	var req struct {
		Days []struct {
			Status *string `json:"status"`
			Note   string  `json:"note"`
		} `json:"days" validate:"required,len=7"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 状态为空或空字符串表示清掉该天，休假状态不允许直接提交
	var edits [7]scheduling.DayEdit
	for i, day := range req.Days {
		edits[i].Note = day.Note

		if day.Status == nil || *day.Status == "" {
			continue
		}

		status, err := domain.ParseAvailabilityStatus(*day.Status)
		if err != nil {
			h.schedulingError(w, r, err)
			return
		}
		if status == domain.AvailabilityTimeOff {
			h.errorResponse(w, r, "休假状态只能通过请假流程设置")
			return
		}
		edits[i].Status = &status
	}

	if err := h.availability.UpdateWeek(myInfo.ID, weekStart, edits); err != nil {
		h.schedulingError(w, r, err)
		return
	}

	week, err := h.availability.GetWeek(myInfo.ID, weekStart)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新可用性成功", week)
}

func (h *Handler) GetWorkerAvailability(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.User)
	weekStart := chi.URLParam(r, "weekStart")

	week, err := h.availability.GetWeek(worker.ID, weekStart)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工可用性成功", week)
}
