package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/tourkit/core"
	"github.com/dmitrymomot/tourkit/modules/users"
	"github.com/dmitrymomot/tourkit/pkg/auth"
	"github.com/dmitrymomot/tourkit/pkg/config"
	"github.com/dmitrymomot/tourkit/pkg/email"
	"github.com/dmitrymomot/tourkit/pkg/environment"
	"github.com/dmitrymomot/tourkit/pkg/httpserver"
	"github.com/dmitrymomot/tourkit/pkg/logger"
	"github.com/dmitrymomot/tourkit/pkg/metrics"
	"github.com/dmitrymomot/tourkit/pkg/mongo"
)

type appConfig struct {
	Environment  string `env:"APP_ENV" envDefault:"development"`
	DatabaseName string `env:"MONGODB_DATABASE" envDefault:"tourkit"`
	DevEmailDir  string `env:"DEV_EMAIL_DIR" envDefault:"./tmp/emails"`
}

func main() {
	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, "tourkit"))
	logger.SetAsDefault(log)

	if err := run(context.Background(), appCfg, log); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var mongoCfg mongo.Config
	config.MustLoad(&mongoCfg)

	db, err := mongo.NewWithDatabase(ctx, mongoCfg, appCfg.DatabaseName)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Warn("mongo disconnect failed", logger.Error(err))
		}
	}()

	storage := users.NewMongoStorage(db)
	if err := storage.EnsureIndexes(ctx); err != nil {
		return err
	}

	mailer, err := newMailer(appCfg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	var authCfg auth.Config
	config.MustLoad(&authCfg)

	svc, err := auth.NewService(storage, mailer, authCfg,
		auth.WithLogger(log),
		auth.WithCollector(collector),
	)
	if err != nil {
		return err
	}

	healthcheck := mongo.Healthcheck(db.Client())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Mount("/api/v1/users", users.NewHandler(svc, log).Router())
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := healthcheck(req.Context()); err != nil {
			_ = core.WriteError(w, core.ErrServiceUnavailable)
			return
		}
		_ = core.SuccessMessage(w, http.StatusOK, "ok")
	})

	var httpCfg httpserver.Config
	config.MustLoad(&httpCfg)

	log.Info("starting server",
		slog.String("addr", httpCfg.Addr),
		slog.String("environment", appCfg.Environment),
	)

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newMailer selects the outbound email transport. Production requires
// Postmark credentials; everywhere else missing tokens fall back to writing
// rendered emails to disk.
func newMailer(appCfg appConfig) (*email.Mailer, error) {
	var emailCfg email.Config
	config.MustLoad(&emailCfg)

	if emailCfg.PostmarkServerToken != "" && emailCfg.PostmarkAccountToken != "" {
		sender, err := email.NewPostmarkClient(emailCfg)
		if err != nil {
			return nil, err
		}
		return email.NewMailer(sender), nil
	}

	if environment.IsProduction(appCfg.Environment) {
		return nil, errors.New("postmark credentials are required in production")
	}

	return email.NewMailer(email.NewDevSender(appCfg.DevEmailDir)), nil
}
