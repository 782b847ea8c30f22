package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
	"github.com/koesert/Rooster-Systeem-sub000/internal/repository"
	"github.com/koesert/Rooster-Systeem-sub000/internal/scheduling"
	"github.com/koesert/Rooster-Systeem-sub000/internal/utils"
)

// SeedDemoData 生成一套连贯的演示数据：若干员工、本周和下周的班次、
// 未来几周的可用性，以及部分已批准的请假申请（批准后的休假会同步
// 写进可用性表）
func SeedDemoData(r *repository.Repository, password string, emailDomain string, workerCount int, noticeDays int) {
	if workerCount <= 0 {
		slog.Error("请输入合法的员工数量")
		return
	}

	// 插入员工
	workers := make([]*domain.User, 0, workerCount)
	for i := 0; i < workerCount; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomain)
		if err != nil {
			slog.Error("无法生成随机员工", slog.String("error", err.Error()))
			continue
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("无法插入员工", slog.String("error", err.Error()))
			continue
		}
		workers = append(workers, user)
	}
	slog.Info("插入员工成功", slog.Int("count", len(workers)))

	currentMonday := calendar.MondayOf(calendar.DateOf(time.Now()))

	// 本周和下周各排几天班
	shiftCount := 0
	for _, worker := range workers {
		for week := 0; week < 2; week++ {
			monday := currentMonday.AddDays(week * 7)
			for day := 0; day < 7; day++ {
				if rand.Intn(2) == 0 {
					continue
				}
				shift := utils.GenerateRandomShift(worker.ID, monday.AddDays(day))
				if err := r.CreateShift(shift); err != nil {
					slog.Error("无法插入班次", slog.String("error", err.Error()))
					continue
				}
				shiftCount++
			}
		}
	}
	slog.Info("插入班次成功", slog.Int("count", shiftCount))

	// 未来三周的可用性
	dayCount := 0
	for _, worker := range workers {
		muts := []domain.AvailabilityMutation{}
		for week := 1; week <= 3; week++ {
			monday := currentMonday.AddDays(week * 7)
			for day := 0; day < 7; day++ {
				if mut := utils.GenerateRandomAvailabilityMutation(worker.ID, monday.AddDays(day)); mut != nil {
					muts = append(muts, *mut)
				}
			}
		}
		if len(muts) == 0 {
			continue
		}
		if err := r.ApplyAvailabilityMutations(muts); err != nil {
			slog.Error("无法插入可用性记录", slog.String("error", err.Error()))
			continue
		}
		dayCount += len(muts)
	}
	slog.Info("插入可用性记录成功", slog.Int("count", dayCount))

	// 约三分之一的员工有请假申请，其中一半直接批准
	requestCount := 0
	for _, worker := range workers {
		if rand.Intn(3) != 0 {
			continue
		}
		req := utils.GenerateRandomTimeOffRequest(worker.ID, noticeDays)
		if err := r.CreateTimeOffRequest(req); err != nil {
			slog.Error("无法插入请假申请", slog.String("error", err.Error()))
			continue
		}
		requestCount++

		if rand.Intn(2) == 0 {
			continue
		}
		req.Status = domain.TimeOffApproved
		timeOff := domain.AvailabilityTimeOff
		muts := scheduling.TimeOffMutations(req.UserID, req.StartDate, req.EndDate, &timeOff)
		if err := r.UpdateTimeOffRequest(req, muts); err != nil {
			slog.Error("无法批准请假申请", slog.String("error", err.Error()))
		}
	}
	slog.Info("插入请假申请成功", slog.Int("count", requestCount))
}
