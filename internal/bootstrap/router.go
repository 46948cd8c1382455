package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/decisio-app/decisio-backend/internal/api/http"
	decisionshttp "github.com/decisio-app/decisio-backend/internal/decisions/http"
	decisionsrepo "github.com/decisio-app/decisio-backend/internal/decisions/repository"
	decisionssvc "github.com/decisio-app/decisio-backend/internal/decisions/service"
	evaluationhttp "github.com/decisio-app/decisio-backend/internal/evaluation/http"
	evaluationrepo "github.com/decisio-app/decisio-backend/internal/evaluation/repository"
	evaluationsvc "github.com/decisio-app/decisio-backend/internal/evaluation/service"
	contexthttp "github.com/decisio-app/decisio-backend/internal/projectcontext/http"
	contextrepo "github.com/decisio-app/decisio-backend/internal/projectcontext/repository"
	contextsvc "github.com/decisio-app/decisio-backend/internal/projectcontext/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	DB          *pgxpool.Pool
	Redis       *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to " + dep.ServiceName,
			"health":  "/health",
		})
	})

	decisionService, evaluationService, contextService := BuildServices(dep.DB, dep.Redis)

	api := r.Group("/api/v1")

	decisionsGroup := api.Group("/decisions")
	decisionshttp.Register(decisionsGroup, decisionService)
	evaluationhttp.Register(decisionsGroup, evaluationService)

	contextGroup := api.Group("/project-context")
	contexthttp.Register(contextGroup, contextService)

	return r
}

// BuildServices wires the pool-backed repositories into the three services.
// The worker reuses it without a router.
func BuildServices(pool *pgxpool.Pool, rdb *redis.Client) (*decisionssvc.DecisionService, *evaluationsvc.EvaluationService, *contextsvc.ContextService) {
	decisionRepo := decisionsrepo.NewRepo(pool)

	// Typed-nil pitfall: the cache variable must be the interface type so a
	// missing redis client stays a nil interface inside the service.
	var cache contextsvc.CacheStore
	if rdb != nil {
		cache = contextrepo.NewCache(rdb)
	}
	contextService := contextsvc.NewContextService(contextrepo.NewRepo(pool), cache)

	evaluationService := evaluationsvc.NewEvaluationService(
		evaluationrepo.NewPgxTxRunner(pool),
		evaluationsvc.Stores{
			Decisions:   decisionRepo,
			Contexts:    contextrepo.NewRepo(pool),
			Snapshots:   evaluationrepo.NewSnapshotRepo(pool),
			Evaluations: evaluationrepo.NewEvaluationRepo(pool),
		},
	)

	return decisionssvc.NewDecisionService(decisionRepo), evaluationService, contextService
}
