package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medoka/config"
	"medoka/internal/auth"
	"medoka/internal/db"
	"medoka/internal/health"
	"medoka/internal/logs"
	"medoka/internal/mail"
	"medoka/internal/manager"
	"medoka/internal/middleware"
	"medoka/internal/models"
	"medoka/internal/pharmacy"
	"medoka/internal/repo"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	db         *gorm.DB
	Router     *mux.Router
	Handler    http.Handler // Router, обёрнутый CORS'ом
	mailQueue  *mail.Dispatcher
	httpServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	/* 1) Логи */
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	/* 2) DB */
	d, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	a.db = d

	if err := a.db.AutoMigrate(
		&models.Manager{},
		&models.VerificationToken{},
		&models.RecoveryToken{},
		&models.Pharmacy{},
		&models.WorkDay{},
	); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	/* 3) Коллабораторы: почта, токены, стораджи */
	var mailer mail.Mailer = mail.LogMailer{}
	if a.cfg.Mail.Host != "" {
		mailer = mail.NewSMTPMailer(
			a.cfg.Mail.Host,
			a.cfg.Mail.Port,
			a.cfg.Mail.Username,
			a.cfg.Mail.Password,
			a.cfg.Mail.From,
			a.cfg.Mail.SenderName,
		)
	}
	a.mailQueue = mail.NewDispatcher(mailer, 64)

	tokens := auth.NewTokens(a.cfg.Auth.JWTSecret)
	ms := repo.NewManagerStore(a.db)
	ps := repo.NewPharmacyStore(a.db)

	/* 4) Router + middleware */
	a.Router = mux.NewRouter().StrictSlash(true)
	a.Router.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.LoggerMW,
	)
	// CORS — поверх роутера: mux прогоняет Use-цепочку только при
	// совпадении маршрута, и preflight OPTIONS до неё не доходит
	a.Handler = middleware.CORS(a.cfg.Server.Production, a.cfg.Frontend.URL)(a.Router)

	/* 5) Health */
	health.RegisterRoutesWithDB(a.Router, a.db) // /healthz, /readyz

	/* 6) API */
	guard := auth.Require(tokens)
	api := a.Router.PathPrefix("/api").Subrouter()
	manager.RegisterRoutes(api, manager.New(ms, tokens, a.mailQueue, a.cfg.Frontend.URL, a.cfg.Server.Production), guard)
	pharmacy.RegisterRoutes(api, pharmacy.New(ps), guard)

	/* (необязательно) вывести известные маршруты в лог при старте */
	_ = a.Router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		if len(methods) == 0 {
			methods = []string{"ANY"}
		}
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return fmt.Errorf("server not initialized")
	}

	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logs.Logger.Infof("shutdown signal: %s", s)
		a.cancel()
	}()

	// Жёсткие таймауты — это важно для production
	a.httpServer = &http.Server{
		Addr:              bind,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Logger.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logs.Logger.Errorf("http shutdown: %v", err)
	}
	// дошлём, что осталось в почтовой очереди
	if a.mailQueue != nil {
		a.mailQueue.Close()
	}
	return nil
}
