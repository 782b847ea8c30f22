package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/config"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
	"github.com/koesert/Rooster-Systeem-sub000/internal/repository"
	"github.com/koesert/Rooster-Systeem-sub000/internal/seed"
	"github.com/koesert/Rooster-Systeem-sub000/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var workerID int64

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 插入随机班次, 3: 插入随机可用性, 4: 插入随机请假申请, 5: 插入整套演示数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&workerID, "worker-id", 0, "插入班次或可用性时指定的员工 ID，0 表示随机挑选")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 随机挑一个员工，或者使用命令行指定的那个
	pickWorker := func() (int64, bool) {
		if workerID > 0 {
			return workerID, true
		}
		workers, err := repo.GetAllUsers()
		if err != nil || len(workers) == 0 {
			slog.Error("无法获取员工列表，请先插入员工")
			return 0, false
		}
		return workers[rand.Intn(len(workers))].ID, true
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机员工", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入员工", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入员工成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的班次数量")
			return
		}
		id, ok := pickWorker()
		if !ok {
			return
		}

		monday := calendar.MondayOf(calendar.DateOf(time.Now()))
		cnt := n
		for i := 0; i < n; i++ {
			shift := utils.GenerateRandomShift(id, monday.AddDays(rand.Intn(14)))
			if err := repo.CreateShift(shift); err != nil {
				slog.Error("无法插入班次", slog.String("error", err.Error()))
				continue
			}
			cnt--
		}
		slog.Info("插入班次成功", slog.Int("count", n-cnt))
	case 3:
		id, ok := pickWorker()
		if !ok {
			return
		}

		// 给下一个可编辑周填一整周的可用性
		monday := calendar.MondayOf(calendar.DateOf(time.Now())).AddDays(7)
		muts := []domain.AvailabilityMutation{}
		for day := 0; day < 7; day++ {
			if mut := utils.GenerateRandomAvailabilityMutation(id, monday.AddDays(day)); mut != nil {
				muts = append(muts, *mut)
			}
		}
		if err := repo.ApplyAvailabilityMutations(muts); err != nil {
			slog.Error("无法插入可用性记录", slog.String("error", err.Error()))
			return
		}
		slog.Info("插入可用性记录成功", slog.Int("count", len(muts)))
	case 4:
		if n <= 0 {
			slog.Error("请输入合法的请假申请数量")
			return
		}
		id, ok := pickWorker()
		if !ok {
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			req := utils.GenerateRandomTimeOffRequest(id, cfg.Scheduling.NoticeDays)
			if err := repo.CreateTimeOffRequest(req); err != nil {
				slog.Error("无法插入请假申请", slog.String("error", err.Error()))
				continue
			}
			cnt--
		}
		slog.Info("插入请假申请成功", slog.Int("count", n-cnt))
	case 5:
		seed.SeedDemoData(repo, cfg.Seed.User.Password, cfg.Email.UserDomain, n, cfg.Scheduling.NoticeDays)
	default:
		slog.Error("指定的操作非法")
	}
}
