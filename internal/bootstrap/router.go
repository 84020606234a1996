package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/stewartad1/RapidEdge/internal/api/http"
	"github.com/stewartad1/RapidEdge/internal/api/http/middleware"
	dxfhttp "github.com/stewartad1/RapidEdge/internal/dxf/http"
	"github.com/stewartad1/RapidEdge/internal/dxf/repository"
	"github.com/stewartad1/RapidEdge/internal/dxf/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	RateLimit   float64 // requests/second per client, 0 disables
	RateBurst   int
	DB          *pgxpool.Pool // optional, enables measurement history
	Cache       *redis.Client // optional, enables the report cache
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(dep.CORSOrigins) == 1 && dep.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = dep.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/")
	api.Use(middleware.RequestIDMiddleware())
	if dep.RateLimit > 0 {
		api.Use(middleware.RateLimitMiddleware(rate.Limit(dep.RateLimit), dep.RateBurst))
	}

	var cache *repository.ReportCache
	if dep.Cache != nil {
		cache = repository.NewReportCache(dep.Cache)
	}
	var history *repository.HistoryRepository
	if dep.DB != nil {
		history = repository.NewHistoryRepository(dep.DB)
	}

	svc := service.New(cache, history)
	dxfhttp.New(svc).Register(api)

	return r
}
