package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/foliocraft/foliocraft-backend/config"
	"github.com/foliocraft/foliocraft-backend/internal/admin"
	httpapi "github.com/foliocraft/foliocraft-backend/internal/api/http"
	"github.com/foliocraft/foliocraft-backend/internal/api/http/middleware"
	"github.com/foliocraft/foliocraft-backend/internal/api/http/routes"
	assetshttp "github.com/foliocraft/foliocraft-backend/internal/assets/http"
	assetsservice "github.com/foliocraft/foliocraft-backend/internal/assets/service"
	"github.com/foliocraft/foliocraft-backend/internal/auth"
	authhttp "github.com/foliocraft/foliocraft-backend/internal/auth/http"
	authmw "github.com/foliocraft/foliocraft-backend/internal/auth/middleware"
	cvdocument "github.com/foliocraft/foliocraft-backend/internal/cv/document"
	cvhttp "github.com/foliocraft/foliocraft-backend/internal/cv/http"
	"github.com/foliocraft/foliocraft-backend/internal/cv/markdown"
	cvrepository "github.com/foliocraft/foliocraft-backend/internal/cv/repository"
	cvservice "github.com/foliocraft/foliocraft-backend/internal/cv/service"
	"github.com/foliocraft/foliocraft-backend/internal/github"
	githubhttp "github.com/foliocraft/foliocraft-backend/internal/github/http"
	portfolioshttp "github.com/foliocraft/foliocraft-backend/internal/portfolios/http"
	portfoliosrepository "github.com/foliocraft/foliocraft-backend/internal/portfolios/repository"
	portfoliosservice "github.com/foliocraft/foliocraft-backend/internal/portfolios/service"
	"github.com/foliocraft/foliocraft-backend/internal/render"
	renderhttp "github.com/foliocraft/foliocraft-backend/internal/render/http"
	templateshttp "github.com/foliocraft/foliocraft-backend/internal/templates/http"
	templatesrepository "github.com/foliocraft/foliocraft-backend/internal/templates/repository"
	templatesservice "github.com/foliocraft/foliocraft-backend/internal/templates/service"
	"github.com/foliocraft/foliocraft-backend/internal/users"
)

// RouterDeps holds the opened connections. Redis, Verifier and Assets are
// optional; a nil Verifier selects header identity.
type RouterDeps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Pool     *pgxpool.Pool
	SQL      *sql.DB
	Redis    *redis.Client
	Verifier authmw.TokenVerifier
	Engine   *render.Engine
	Assets   *assetsservice.AssetService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, "X-User-Id", "X-User-Email"},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	var rdb redis.UniversalClient
	if dep.Redis != nil {
		rdb = dep.Redis
	}
	httpapi.NewHealthHandler("foliocraft-backend", cfg.App.Version, dep.Pool, rdb).RegisterRoutes(r)

	identity := auth.HeaderUser()
	if dep.Verifier != nil {
		identity = authmw.FirebaseAuthMiddleware(dep.Verifier)
	}

	var userDB users.DB
	if dep.Pool != nil {
		userDB = dep.Pool
	}
	userRepo := users.NewRepo(userDB)

	templateSvc := templatesservice.NewTemplateService(templatesrepository.NewTemplateRepository(dep.SQL), dep.Engine)
	portfolioSvc := portfoliosservice.NewPortfolioService(portfoliosrepository.NewPortfolioRepository(dep.SQL), templateSvc, dep.Engine)
	cvSvc := cvservice.NewCVService(cvrepository.NewCVRepository(dep.SQL), cvdocument.New(markdown.Default()))

	var statsCache github.Cache
	if rdb != nil {
		statsCache = github.NewRedisCache(rdb, cfg.GitHub.CacheTTL)
	}
	ghClient := github.NewClient(cfg.GitHub.Token, cfg.GitHub.APIURL, cfg.GitHub.RatePerSec, cfg.GitHub.Burst)
	statsSvc := github.NewStatsService(ghClient, statsCache, dep.Logger)

	v1 := routes.V1Deps{
		Identity:       identity,
		Users:          userRepo,
		Me:             authhttp.New(userRepo),
		Templates:      templateshttp.New(templateSvc, dep.Engine),
		Portfolios:     portfolioshttp.New(portfolioSvc),
		Render:         renderhttp.New(dep.Engine),
		CV:             cvhttp.New(cvSvc),
		GitHub:         githubhttp.New(statsSvc),
		Admin:          admin.New(userRepo, dep.Logger),
		PreviewLimiter: middleware.NewRateLimiter(cfg.Render.PreviewPerUser, 5),
	}
	if dep.Assets != nil {
		v1.Assets = assetshttp.New(dep.Assets, cfg.Assets.MaxUploadSize)
	}

	routes.RegisterPublic(r, v1)
	routes.RegisterV1(r, v1)

	return r
}
