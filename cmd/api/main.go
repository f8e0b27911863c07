package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"newsdesk/internal/config"
	pgRepo "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/announce"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/infra/mailer"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/observability/slo"
	"newsdesk/internal/observability/tracing"
	pkgconfig "newsdesk/internal/pkg/config"
	"newsdesk/internal/repository"

	accUC "newsdesk/internal/usecase/account"
	artUC "newsdesk/internal/usecase/article"
	nlUC "newsdesk/internal/usecase/newsletter"
	"newsdesk/internal/usecase/notify"
	rvUC "newsdesk/internal/usecase/readerview"
	subUC "newsdesk/internal/usecase/subscription"

	hhttp "newsdesk/internal/handler/http"
	haccount "newsdesk/internal/handler/http/account"
	harticle "newsdesk/internal/handler/http/article"
	hauth "newsdesk/internal/handler/http/auth"
	hnewsletter "newsdesk/internal/handler/http/newsletter"
	hreader "newsdesk/internal/handler/http/reader"
	"newsdesk/internal/handler/http/requestid"
	hsub "newsdesk/internal/handler/http/subscription"
	authservice "newsdesk/internal/service/auth"

	_ "newsdesk/docs" // swagger docs
)

// @title           Newsdesk API
// @version         1.0
// @description     Content publishing backend. Journalists and editors write
// @description     articles and newsletters; readers subscribe to publishers
// @description     and independent journalists and get notified on publication.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT authentication. Use the "Bearer {token}" format.

func main() {
	logger := initLogger()

	cfg := loadConfig(logger)
	secret := validateJWTSecret(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()

	shutdownTracing := initTracing(logger, cfg, version)

	handler := setupServer(logger, database, cfg, secret, version)

	runServer(logger, handler, database, cfg, version, shutdownTracing)
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads the environment configuration. Invalid values fall back
// to defaults with a warning; missing credentials for enabled integrations
// are fatal.
func loadConfig(logger *slog.Logger) *config.AppConfig {
	cfgMetrics := pkgconfig.NewConfigMetrics("api")
	cfg, warnings := config.LoadAppConfig(cfgMetrics)
	for _, warning := range warnings {
		logger.Warn("configuration fallback", slog.String("detail", warning))
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// validateJWTSecret checks the JWT_SECRET environment variable and returns
// the signing key. The server refuses to start with a weak or missing secret.
func validateJWTSecret(logger *slog.Logger) []byte {
	if err := hauth.ValidateJWTSecret("JWT_SECRET"); err != nil {
		logger.Error("JWT secret validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	return []byte(os.Getenv("JWT_SECRET"))
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// initTracing installs the OTLP trace exporter when tracing is enabled.
// Returns a shutdown function, which is a no-op when tracing is off.
func initTracing(logger *slog.Logger, cfg *config.AppConfig, version string) func(context.Context) error {
	if !cfg.Observability.EnableTracing {
		return func(context.Context) error { return nil }
	}
	shutdown, err := tracing.Init(context.Background(), cfg.Observability.TracingEndpoint, version)
	if err != nil {
		logger.Error("failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("tracing enabled",
		slog.String("endpoint", cfg.Observability.TracingEndpoint))
	return shutdown
}

// passwordPolicy holds the account security settings resolved at startup.
type passwordPolicy struct {
	MinLength     int
	WeakPasswords []string
	TokenExpiry   time.Duration
}

// loadPasswordPolicy resolves the password policy and token lifetime.
// SECURITY_CONFIG_PATH names an optional YAML override; without it the
// built-in defaults apply.
func loadPasswordPolicy(logger *slog.Logger) passwordPolicy {
	policy := passwordPolicy{
		MinLength:     12,
		WeakPasswords: []string{"password", "123456", "admin", "test", "secret"},
		TokenExpiry:   hauth.DefaultTokenExpiry,
	}

	path := os.Getenv("SECURITY_CONFIG_PATH")
	if path == "" {
		return policy
	}

	secCfg, err := config.LoadSecurityConfig(path)
	if err != nil {
		logger.Error("failed to load security config",
			slog.String("path", path),
			slog.Any("error", err))
		os.Exit(1)
	}
	policy.MinLength = secCfg.GetMinPasswordLength()
	if weak := secCfg.GetWeakPasswords(); len(weak) > 0 {
		policy.WeakPasswords = weak
	}
	if hours := secCfg.GetJWTExpiryHours(); hours > 0 {
		policy.TokenExpiry = time.Duration(hours) * time.Hour
	}
	logger.Info("security config loaded", slog.String("path", path))
	return policy
}

// buildMailer returns the SMTP mailer, or a no-op when mail is disabled.
func buildMailer(logger *slog.Logger, cfg *config.AppConfig) mailer.Mailer {
	if !cfg.SMTP.Enabled {
		logger.Warn("SMTP disabled, subscriber emails will be logged only")
		return mailer.NewNoOpMailer()
	}
	m, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Enabled:  true,
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Timeout:  cfg.SMTP.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize SMTP mailer", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("SMTP mailer enabled", slog.String("host", cfg.SMTP.Host))
	return m
}

// buildAnnouncer returns the X announcer behind a circuit breaker, or a
// no-op when announcements are disabled.
func buildAnnouncer(logger *slog.Logger, cfg *config.AppConfig) announce.Announcer {
	if !cfg.X.Enabled {
		logger.Warn("X announcements disabled, posts will be logged only")
		return announce.NewNoOpAnnouncer()
	}
	x, err := announce.NewXAnnouncer(announce.XConfig{
		Enabled:           true,
		APIKey:            cfg.X.APIKey,
		APIKeySecret:      cfg.X.APIKeySecret,
		AccessToken:       cfg.X.AccessToken,
		AccessTokenSecret: cfg.X.AccessTokenSecret,
		Timeout:           cfg.X.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize X announcer", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("X announcements enabled")
	return announce.NewBreakerAnnouncer(x)
}

// setupServer wires repositories, use cases, routes, and middleware into
// the root HTTP handler.
func setupServer(logger *slog.Logger, database *sql.DB, cfg *config.AppConfig, secret []byte, version string) http.Handler {
	users := pgRepo.NewUserRepo(database)
	publishers := pgRepo.NewPublisherRepo(database)
	articles := pgRepo.NewArticleRepo(database)
	newsletters := pgRepo.NewNewsletterRepo(database)

	policy := loadPasswordPolicy(logger)

	notifySvc := &notify.Service{
		Users:      users,
		Publishers: publishers,
		Mailer:     buildMailer(logger, cfg),
		Announcer:  buildAnnouncer(logger, cfg),
	}

	artSvc := &artUC.Service{Repo: articles, Users: users, Notify: notifySvc}
	nlSvc := &nlUC.Service{Repo: newsletters, Users: users, Notify: notifySvc}
	accSvc := &accUC.Service{
		Users:      users,
		Publishers: publishers,
		Mailer:     notifySvc.Mailer,
		Policy: accUC.PasswordPolicy{
			MinLength:     policy.MinLength,
			WeakPasswords: policy.WeakPasswords,
		},
		ResetSecret: secret,
		ResetTTL:    cfg.Reset.TTL,
		ResetURL:    cfg.Reset.URL,
	}
	subSvc := &subUC.Service{Users: users, Publishers: publishers}
	rvSvc := &rvUC.Service{Users: users, Articles: articles, Newsletters: newsletters}

	authProvider := hauth.NewRepositoryAuthProvider(users, policy.MinLength, policy.WeakPasswords)
	authService := authservice.NewAuthService(authProvider)
	issuer := hauth.TokenIssuer{Secret: secret, Expiry: policy.TokenExpiry}

	rootMux := setupRoutes(logger, database, cfg, version, users, secret,
		authService, issuer, artSvc, nlSvc, accSvc, subSvc, rvSvc)

	return applyMiddleware(logger, cfg, rootMux)
}

// setupRoutes registers all HTTP routes (public and protected).
func setupRoutes(
	logger *slog.Logger,
	database *sql.DB,
	cfg *config.AppConfig,
	version string,
	users repository.UserRepository,
	secret []byte,
	authService *authservice.AuthService,
	issuer hauth.TokenIssuer,
	artSvc *artUC.Service,
	nlSvc *nlUC.Service,
	accSvc *accUC.Service,
	subSvc *subUC.Service,
	rvSvc *rvUC.Service,
) *http.ServeMux {
	// The auth endpoints share one per-IP limiter so credential stuffing
	// and reset-email floods hit the same budget.
	authLimiter := hhttp.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	logger.Info("auth rate limiting enabled",
		slog.Int("limit", cfg.AuthRateLimit),
		slog.Duration("window", cfg.AuthRateWindow))

	publicMux := http.NewServeMux()
	publicMux.Handle("POST /auth/token", authLimiter.Limit(hauth.TokenHandler(authService, issuer)))
	publicMux.Handle("POST /auth/register", authLimiter.Limit(haccount.RegisterHandler{Svc: accSvc}))
	publicMux.Handle("POST /auth/password_reset", authLimiter.Limit(haccount.ResetRequestHandler{Svc: accSvc}))
	publicMux.Handle("POST /auth/password_reset/confirm", authLimiter.Limit(haccount.ResetConfirmHandler{Svc: accSvc}))

	publicMux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	publicMux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	publicMux.Handle("/live", &hhttp.LiveHandler{})
	if cfg.Observability.EnableMetrics {
		publicMux.Handle("/metrics", hhttp.MetricsHandler())
	}

	publicMux.Handle("/swagger/", httpSwagger.WrapHandler)

	privateMux := http.NewServeMux()
	harticle.Register(privateMux, artSvc)
	hnewsletter.Register(privateMux, nlSvc)
	hsub.Register(privateMux, subSvc)
	privateMux.Handle("GET /api/reader_view", hreader.ViewHandler{Svc: rvSvc})
	privateMux.Handle("POST /auth/change_password", haccount.ChangePasswordHandler{Svc: accSvc})

	protected := hauth.Authz(users, secret)(privateMux)

	rootMux := http.NewServeMux()
	rootMux.Handle("/auth/token", publicMux)
	rootMux.Handle("/auth/register", publicMux)
	rootMux.Handle("/auth/password_reset", publicMux)
	rootMux.Handle("/auth/password_reset/confirm", publicMux)
	rootMux.Handle("/health", publicMux)
	rootMux.Handle("/ready", publicMux)
	rootMux.Handle("/live", publicMux)
	rootMux.Handle("/metrics", publicMux)
	rootMux.Handle("/swagger/", publicMux)
	rootMux.Handle("/", protected)

	return rootMux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order outermost to innermost: Request ID, Tracing, Recovery, Logging,
// Body Limit, Timeout, Input Validation, Metrics.
func applyMiddleware(logger *slog.Logger, cfg *config.AppConfig, handler http.Handler) http.Handler {
	chain := handler

	// Apply in reverse order (innermost to outermost)
	if cfg.Observability.EnableMetrics {
		chain = hhttp.MetricsMiddleware(chain)
	}
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Timeout(cfg.RequestTimeout)(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	if cfg.Observability.EnableTracing {
		chain = tracing.Middleware(chain)
	}
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(
	logger *slog.Logger,
	handler http.Handler,
	database *sql.DB,
	cfg *config.AppConfig,
	version string,
	shutdownTracing func(context.Context) error,
) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Observability.EnableMetrics {
		db.StartPoolMetrics(ctx, database, 15*time.Second)
		slo.Start(ctx, time.Minute)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
