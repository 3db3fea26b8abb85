package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	capacityUsecases "coachdesk/internal/application/capacity/usecases"
	studentUsecases "coachdesk/internal/application/student/usecases"
	"coachdesk/internal/infrastructure/auth"
	"coachdesk/internal/infrastructure/cache"
	"coachdesk/internal/infrastructure/config"
	"coachdesk/internal/infrastructure/repository"
	"coachdesk/internal/interfaces/http/handlers"
	"coachdesk/internal/interfaces/http/middleware"
	"coachdesk/internal/shared/db"
	"coachdesk/internal/shared/logger"
)

// Router wires repositories, use cases, and handlers, and owns the Gin
// engine.
type Router struct {
	engine          *gin.Engine
	capacityHandler *handlers.CapacityHandler
	studentHandler  *handlers.StudentHandler
	adminHandler    *handlers.AdminHandler
	authMiddleware  *middleware.AuthMiddleware
	allowedOrigins  []string

	// SweepExpiredUC is exposed for the expiry scheduler, which shares the
	// repositories wired here.
	SweepExpiredUC *capacityUsecases.SweepExpiredUseCase
}

// NewRouter creates an HTTP router with all dependencies wired.
// redisClient may be nil; capacity status caching is skipped then.
func NewRouter(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	planRepo := repository.NewPlanDefinitionRepository(gormDB, log)
	assignmentRepo := repository.NewPlanAssignmentRepository(gormDB, log)
	tokenRepo := repository.NewCapacityTokenRepository(gormDB, log)
	studentRepo := repository.NewStudentRepository(gormDB, log)

	txManager := db.NewTransactionManager(gormDB)

	var statusCache capacityUsecases.CapacityStatusCache
	if redisClient != nil {
		statusCache = cache.NewRedisCapacityStatusCache(redisClient, cfg.Capacity.StatusCacheTTLMinutes, log)
	}

	getStatusUC := capacityUsecases.NewGetCapacityStatusUseCase(
		assignmentRepo, planRepo, tokenRepo, studentRepo, statusCache, log)
	activateStudentUC := capacityUsecases.NewActivateStudentUseCase(
		assignmentRepo, planRepo, tokenRepo, studentRepo, txManager, statusCache, log)
	deactivateUC := capacityUsecases.NewDeactivateStudentUseCase(
		tokenRepo, studentRepo, txManager, statusCache, log)
	getRenewalUC := capacityUsecases.NewGetRenewalStateUseCase(assignmentRepo, log)
	startRenewalUC := capacityUsecases.NewStartRenewalUseCase(assignmentRepo, txManager, log)
	finalizeCycleUC := capacityUsecases.NewFinalizeCycleUseCase(
		assignmentRepo, planRepo, tokenRepo, studentRepo, txManager, statusCache, log)
	sweepExpiredUC := capacityUsecases.NewSweepExpiredUseCase(assignmentRepo, tokenRepo, log)

	createPlanUC := capacityUsecases.NewCreatePlanDefinitionUseCase(planRepo, log)
	listPlansUC := capacityUsecases.NewListPlanDefinitionsUseCase(planRepo, log)
	assignPlanUC := capacityUsecases.NewAssignPlanUseCase(
		assignmentRepo, planRepo, studentRepo, txManager, statusCache, log)
	addTokensUC := capacityUsecases.NewAddTokensUseCase(
		tokenRepo, txManager, statusCache, cfg.Capacity.DefaultTokenValidityDays, log)
	listTokensUC := capacityUsecases.NewListTokensUseCase(tokenRepo, log)

	createStudentUC := studentUsecases.NewCreateStudentUseCase(studentRepo, log)
	listStudentsUC := studentUsecases.NewListStudentsUseCase(studentRepo, log)
	getStudentUC := studentUsecases.NewGetStudentUseCase(studentRepo, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	return &Router{
		engine: engine,
		capacityHandler: handlers.NewCapacityHandler(
			getStatusUC, activateStudentUC, deactivateUC,
			getRenewalUC, startRenewalUC, finalizeCycleUC, log),
		studentHandler: handlers.NewStudentHandler(createStudentUC, listStudentsUC, getStudentUC, log),
		adminHandler: handlers.NewAdminHandler(
			createPlanUC, listPlansUC, assignPlanUC, addTokensUC, listTokensUC, log),
		authMiddleware: authMiddleware,
		allowedOrigins: cfg.Server.AllowedOrigins,
		SweepExpiredUC: sweepExpiredUC,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(log logger.Interface) {
	r.engine.Use(middleware.Logger(log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.setupCoachRoutes()
	r.setupStudentRoutes()
	r.setupAdminRoutes()
}

func (r *Router) setupCoachRoutes() {
	coaches := r.engine.Group("/coaches/:coach_id")
	coaches.Use(r.authMiddleware.RequireAuth())
	coaches.Use(r.authMiddleware.RequireCoachOwnership("coach_id"))
	{
		coaches.GET("/capacity", r.capacityHandler.GetCapacityStatus)

		coaches.POST("/students", r.studentHandler.CreateStudent)
		coaches.GET("/students", r.studentHandler.ListStudents)
		coaches.POST("/students/:student_id/activate", r.capacityHandler.ActivateStudent)

		coaches.GET("/renewal", r.capacityHandler.GetRenewalState)
		coaches.POST("/renewal/start", r.capacityHandler.StartRenewal)
		coaches.POST("/renewal/finalize", r.capacityHandler.FinalizeCycle)
	}
}

func (r *Router) setupStudentRoutes() {
	students := r.engine.Group("/students")
	students.Use(r.authMiddleware.RequireAuth())
	{
		students.GET("/:student_id", r.studentHandler.GetStudent)
		students.POST("/:student_id/deactivate", r.capacityHandler.DeactivateStudent)
	}
}

func (r *Router) setupAdminRoutes() {
	admin := r.engine.Group("/admin")
	admin.Use(r.authMiddleware.RequireAuth())
	admin.Use(r.authMiddleware.RequireAdmin())
	{
		admin.POST("/plans", r.adminHandler.CreatePlan)
		admin.GET("/plans", r.adminHandler.ListPlans)

		admin.POST("/coaches/:coach_id/plan", r.adminHandler.AssignPlan)
		admin.POST("/coaches/:coach_id/tokens", r.adminHandler.AddTokens)
		admin.GET("/coaches/:coach_id/tokens", r.adminHandler.ListTokens)
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
