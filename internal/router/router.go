package router

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "secure-petstore/internal/adapters/storage/memory"
	pg "secure-petstore/internal/adapters/storage/postgres"
	"secure-petstore/internal/config"
	"secure-petstore/internal/docs"
	"secure-petstore/internal/domain/pets"
	"secure-petstore/internal/domain/users"
	"secure-petstore/internal/middleware"
	"secure-petstore/internal/platform/logger"
	"secure-petstore/internal/platform/metrics"
	"secure-petstore/internal/response"
)

const (
	apiPrefix  = "/api/v1"
	docsPrefix = "/api-docs"

	welcomeMessage = "Welcome to SecurePetStore Backend API!"
)

type Options struct {
	Config *config.Config
	Logger logger.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: denylist de tokens. nil => tokens sin estado y sin /auth/logout.
	Denylist users.Denylist

	// Opcional: si es nil se crea un registry propio.
	Metrics *metrics.Metrics

	// Opcional: se cierra al apagar el server para detener la limpieza de limiters.
	Done <-chan struct{}
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(response.Middleware(response.Options{Development: cfg.IsDevelopment()}))
	r.Use(middleware.Correlation(log))
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Recover)
	r.Use(m.Instrument)
	r.Use(middleware.SecurityHeaders(docsPrefix))
	r.Use(middleware.NewCORS(cfg.AllowedOrigins()).Handler)

	globalLimiter := middleware.NewRateLimiter("global", cfg.RateLimitRPS, cfg.RateLimitBurst, m)
	authLimiter := middleware.NewRateLimiter("auth", cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst, m)
	if opts.Done != nil {
		globalLimiter.StartCleanup(limiterCleanupInterval, opts.Done)
		authLimiter.StartCleanup(limiterCleanupInterval, opts.Done)
	}

	r.NotFound(response.NotFound)
	// Un método no soportado se reporta igual que una ruta inexistente.
	r.MethodNotAllowed(response.NotFound)

	var (
		petRepo  pets.Repository
		userRepo users.Repository
		ready    func(ctx context.Context) error
	)

	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		userRepo = pg.NewUsersRepo(opts.DB)
		ready = func(ctx context.Context) error { return pg.Ping(ctx, opts.DB) }
	} else {
		petRepo = mem.NewPetRepo()
		userRepo = mem.NewUserRepo()
		ready = func(context.Context) error { return nil }
	}

	// Services por módulo
	tokens := users.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)
	usersSvc := users.NewService(userRepo, tokens, opts.Denylist)
	petsSvc := pets.NewService(petRepo, cfg.FallbackEnabled())

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(welcomeMessage))
	})
	registerHealth(r, ready)

	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get(docsPrefix+"/*", httpSwagger.Handler(
		httpSwagger.URL(docsPrefix+"/doc.json"),
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	))

	// Rutas por módulo
	r.Route(apiPrefix, func(api chi.Router) {
		api.Use(globalLimiter.Handler)

		api.Group(func(ar chi.Router) {
			ar.Use(authLimiter.Handler)
			users.RegisterRoutes(ar, usersSvc)
		})
		pets.RegisterRoutes(api, petsSvc, usersSvc)
	})

	return r
}
