package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/koesert/Rooster-Systeem-sub000/internal/config"
	"github.com/koesert/Rooster-Systeem-sub000/internal/repository"
	"github.com/koesert/Rooster-Systeem-sub000/internal/scheduling"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	shifts       *scheduling.ShiftService
	availability *scheduling.AvailabilityManager
	timeOff      *scheduling.TimeOffService

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		shifts:       scheduling.NewShiftService(repo, repo),
		availability: scheduling.NewAvailabilityManager(repo, repo, cfg.Scheduling.LookAheadWeeks),
		timeOff:      scheduling.NewTimeOffService(repo, repo, cfg.Scheduling.NoticeDays),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/workers", func(r chi.Router) {
			r.With(h.requireManager).Post("/", h.CreateWorker)
			r.Get("/", h.GetAllWorkers) // 排班表要显示所有同事，人人可读
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.workerInfo)
				r.Get("/", h.GetWorker)
				r.With(h.preventOperateInitialAdmin).With(h.requireManager).Patch("/", h.UpdateWorker)
				r.With(h.preventOperateInitialAdmin).With(h.requireManager).Delete("/", h.DeleteWorker)
				r.With(h.requireManager).Patch("/password", h.UpdateWorkerPassword)
				r.Get("/shifts", h.GetWorkerShifts)
				r.Get("/availability/{weekStart}", h.GetWorkerAvailability)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.With(h.requireManager).Post("/", h.CreateShift)
			r.Get("/week/{week}", h.GetWeekRoster)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetShift)
				r.With(h.requireManager).Patch("/", h.UpdateShift)
				r.With(h.requireManager).Delete("/", h.DeleteShift)
			})
		})

		r.Route("/my-availability/{weekStart}", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyAvailability)
			r.With(h.preventInactiveWorker).Put("/", h.UpdateMyAvailability)
		})

		r.Route("/time-off-requests", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.preventInactiveWorker).Post("/", h.CreateTimeOffRequest)
			r.Get("/", h.ListTimeOffRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetTimeOffRequest)
				r.Patch("/", h.EditTimeOffRequest)
				r.Delete("/", h.DeleteTimeOffRequest)
				r.Post("/cancel", h.CancelTimeOffRequest)
				r.With(h.requireManager).Post("/decide", h.DecideTimeOffRequest)
			})
		})
	})
}
