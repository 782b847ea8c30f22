package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
	"github.com/koesert/Rooster-Systeem-sub000/internal/scheduling"
)

func (h *Handler) timeOffRequestID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "申请ID无效")
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateTimeOffRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
		Reason    string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, err := calendar.ParseDateToken(req.StartDate)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}
	end, err := calendar.ParseDateToken(req.EndDate)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	request, err := h.timeOff.Create(myInfo.ID, req.Reason, start, end)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交请假申请成功", request)
}

func (h *Handler) ListTimeOffRequests(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	filter := scheduling.TimeOffFilter{}
	query := r.URL.Query()

	if workerParam := query.Get("worker"); workerParam != "" {
		workerID, err := strconv.ParseInt(workerParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "员工ID无效")
			return
		}
		filter.UserID = &workerID
	}
	if statusParam := query.Get("status"); statusParam != "" {
		status, err := domain.ParseTimeOffStatus(statusParam)
		if err != nil {
			h.schedulingError(w, r, err)
			return
		}
		filter.Status = &status
	}
	if fromParam := query.Get("from"); fromParam != "" {
		from, err := calendar.ParseDateToken(fromParam)
		if err != nil {
			h.schedulingError(w, r, err)
			return
		}
		filter.From = &from
	}
	if toParam := query.Get("to"); toParam != "" {
		to, err := calendar.ParseDateToken(toParam)
		if err != nil {
			h.schedulingError(w, r, err)
			return
		}
		filter.To = &to
	}

	// 员工只能看到自己的申请
	if !myInfo.IsManagerOrAbove() {
		filter.UserID = &myInfo.ID
	}

	requests, err := h.timeOff.List(filter)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取请假申请列表成功", requests)
}

func (h *Handler) GetTimeOffRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	id, ok := h.timeOffRequestID(w, r)
	if !ok {
		return
	}

	request, err := h.timeOff.GetByID(id)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	if !myInfo.IsManagerOrAbove() && request.UserID != myInfo.ID {
		h.errorResponse(w, r, "权限不足")
		return
	}

	h.successResponse(w, r, "获取请假申请成功", request)
}

func (h *Handler) EditTimeOffRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	id, ok := h.timeOffRequestID(w, r)
	if !ok {
		return
	}

	var req struct {
		StartDate string  `json:"startDate" validate:"required"`
		EndDate   string  `json:"endDate" validate:"required"`
		Reason    string  `json:"reason" validate:"required"`
		Status    *string `json:"status" validate:"omitempty,oneof=待审批 已批准 已驳回 已取消"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, err := calendar.ParseDateToken(req.StartDate)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}
	end, err := calendar.ParseDateToken(req.EndDate)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	var newStatus *domain.TimeOffStatus
	if req.Status != nil {
		status, err := domain.ParseTimeOffStatus(*req.Status)
		if err != nil {
			h.schedulingError(w, r, err)
			return
		}
		newStatus = &status
	}

	request, err := h.timeOff.Edit(id, myInfo, req.Reason, start, end, newStatus)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "修改请假申请成功", request)
}

func (h *Handler) DeleteTimeOffRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	id, ok := h.timeOffRequestID(w, r)
	if !ok {
		return
	}

	if err := h.timeOff.Delete(id, myInfo); err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除请假申请成功", nil)
}

func (h *Handler) CancelTimeOffRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	id, ok := h.timeOffRequestID(w, r)
	if !ok {
		return
	}

	request, err := h.timeOff.Cancel(id, myInfo.ID)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "取消请假申请成功", request)
}

func (h *Handler) DecideTimeOffRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	id, ok := h.timeOffRequestID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=已批准 已驳回"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	status, err := domain.ParseTimeOffStatus(req.Status)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	request, err := h.timeOff.Decide(id, myInfo.ID, status)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	// 审批结果通过邮件通知申请人，发信失败不影响审批本身
	if owner, err := h.repository.GetUserByID(request.UserID); err == nil {
		mailMessage := domain.MailMessage{
			Type: "time_off_decided",
			To:   owner.Email,
			Data: domain.TimeOffDecidedMailData{
				FullName:  owner.FullName,
				StartDate: calendar.FormatDateToken(request.StartDate),
				EndDate:   calendar.FormatDateToken(request.EndDate),
				Status:    string(request.Status),
			},
		}
		if err := h.publishMail(mailMessage); err != nil {
			slog.Error("请假审批通知邮件投递失败", "error", err, "requestID", request.ID)
		}
	}

	h.successResponse(w, r, "审批请假申请成功", request)
}
