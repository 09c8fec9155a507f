package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"growthmarket/internal/config"
	"growthmarket/internal/handler"
	"growthmarket/internal/infra/database"
	"growthmarket/internal/infra/db"
	"growthmarket/internal/infra/mailer"
	"growthmarket/internal/infra/memory"
	infraRepo "growthmarket/internal/infra/repository"
	"growthmarket/internal/notification"
	"growthmarket/internal/repository"
	"growthmarket/internal/server"
	"growthmarket/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 永続化層の一式
type stores struct {
	orders    repository.OrderRepository
	payments  repository.PaymentRepository
	refunds   repository.RefundRepository
	users     repository.UserRepository
	auditLogs repository.AuditLogRepository
	tx        repository.TransactionManager
}

func newLogger(app config.App) *slog.Logger {
	opts := &slog.HandlerOptions{Level: app.SlogLevel()}
	if app.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func openStores(cfg config.Config, logger *slog.Logger) (stores, error) {
	if cfg.DB.Driver == "memory" {
		logger.Warn("using in-memory store; data is lost on restart")
		s := memory.NewStore()
		return stores{
			orders:    s.Orders(),
			payments:  s.Payments(),
			refunds:   s.Refunds(),
			users:     s.Users(),
			auditLogs: s.AuditLogs(),
			tx:        s.TxManager(),
		}, nil
	}

	//DB接続
	gormDB, err := db.Connect(cfg.DB, !cfg.App.IsProd())
	if err != nil {
		return stores{}, err
	}
	if cfg.DB.RunMigrations {
		if err := database.RunMigrations(logger, cfg.DB.MigrateURL(), cfg.DB.MigrationsPath); err != nil {
			return stores{}, err
		}
	}

	//Repository（GORM実装）生成
	return stores{
		orders:    infraRepo.NewOrderGormRepository(gormDB),
		payments:  infraRepo.NewPaymentGormRepository(gormDB),
		refunds:   infraRepo.NewRefundGormRepository(gormDB),
		users:     infraRepo.NewUserGormRepository(gormDB),
		auditLogs: infraRepo.NewAuditLogGormRepository(gormDB),
		tx:        infraRepo.NewTxManagerGorm(gormDB),
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	st, err := openStores(cfg, logger)
	if err != nil {
		logger.Error("store init failed", slog.Any("error", err))
		os.Exit(1)
	}

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//メール通知（SMTP 未設定ならログに出すだけ）
	dispatcher := notification.NewDispatcher(mailer.New(cfg.Mail, logger), logger, cfg.Mail.SendTimeout)
	defer dispatcher.Wait()

	//Usecase生成
	coordinator := usecase.NewCoordinator(st.orders, st.refunds, dispatcher, idGen, clock, cfg.Mail.AdminAddress, logger)
	orderUC := usecase.NewOrderUsecase(st.orders, dispatcher, idGen, clock, cfg.Mail.AdminAddress, logger)
	paymentUC := usecase.NewPaymentUsecase(st.payments, st.orders, coordinator, idGen, clock, logger)
	refundUC := usecase.NewRefundUsecase(st.refunds, st.orders, coordinator)
	adminOrderUC := usecase.NewAdminOrderUsecase(st.tx, st.orders, st.auditLogs, clock)
	authUC := usecase.NewAuthUsecase(
		st.users,
		usecase.NewBcryptPasswordHasher(bcrypt.DefaultCost),
		usecase.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL),
		idGen,
		clock,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := authUC.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Error("ensure admin failed", slog.Any("error", err))
		os.Exit(1)
	}

	//Handler生成
	e := server.New(cfg, logger,
		handler.NewAuthHandler(authUC),
		handler.NewOrderHandler(orderUC),
		handler.NewPaymentHandler(paymentUC),
		handler.NewRefundHandler(refundUC),
		handler.NewAdminOrderHandler(adminOrderUC),
		handler.NewAdminReviewHandler(paymentUC, refundUC),
	)

	//Server起動
	if err := server.Start(ctx, cfg, e, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		stop()
		dispatcher.Wait()
		os.Exit(1)
	}
}
