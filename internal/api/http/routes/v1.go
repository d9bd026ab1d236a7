package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/foliocraft/foliocraft-backend/internal/admin"
	"github.com/foliocraft/foliocraft-backend/internal/api/http/middleware"
	assetshttp "github.com/foliocraft/foliocraft-backend/internal/assets/http"
	"github.com/foliocraft/foliocraft-backend/internal/auth"
	authhttp "github.com/foliocraft/foliocraft-backend/internal/auth/http"
	cvhttp "github.com/foliocraft/foliocraft-backend/internal/cv/http"
	githubhttp "github.com/foliocraft/foliocraft-backend/internal/github/http"
	portfolioshttp "github.com/foliocraft/foliocraft-backend/internal/portfolios/http"
	renderhttp "github.com/foliocraft/foliocraft-backend/internal/render/http"
	templateshttp "github.com/foliocraft/foliocraft-backend/internal/templates/http"
	"github.com/foliocraft/foliocraft-backend/internal/users"
)

// V1Deps carries the feature handlers mounted under /api/v1. Assets is nil
// when no bucket is configured.
type V1Deps struct {
	Identity       gin.HandlerFunc
	Users          *users.Repo
	Me             *authhttp.Handler
	Templates      *templateshttp.Handler
	Portfolios     *portfolioshttp.Handler
	Render         *renderhttp.Handler
	CV             *cvhttp.Handler
	Assets         *assetshttp.Handler
	GitHub         *githubhttp.Handler
	Admin          *admin.Handler
	PreviewLimiter *middleware.RateLimiter
}

// RegisterPublic attaches the unauthenticated document routes.
func RegisterPublic(r gin.IRouter, dep V1Deps) {
	dep.Render.RegisterServe(r)
	dep.Portfolios.RegisterPublic(r)
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	api.Use(dep.Identity, auth.WithUser(dep.Users))

	limitPreviews := dep.PreviewLimiter.Middleware(auth.UserDBID)

	dep.Me.Register(api)
	dep.Templates.RegisterPublic(api.Group("/templates"))
	dep.Portfolios.Register(api.Group("/portfolios"), limitPreviews)
	dep.Render.RegisterAPI(api, auth.RequireAdmin(), limitPreviews)
	dep.CV.Register(api.Group("/cv"))
	dep.GitHub.Register(api.Group("/github"))
	if dep.Assets != nil {
		dep.Assets.Register(api.Group("/assets"))
	}

	adminGroup := api.Group("/admin", auth.RequireAdmin())
	dep.Admin.Register(adminGroup)
	dep.Templates.RegisterAdmin(adminGroup.Group("/templates"))
}
