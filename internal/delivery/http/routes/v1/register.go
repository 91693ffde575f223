package v1

import (
	"log"

	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	"skill-matrix/internal/delivery/http/handler"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/pkg/jwt"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/requirements"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, c *cache.Cache, parser requirements.Parser, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	masterRepo := repository.NewPostgresMasterSkillRepository(db)
	subRepo := repository.NewPostgresSubSkillRepository(db)
	employeeRepo := repository.NewPostgresEmployeeRepository(db)
	claimRepo := repository.NewPostgresClaimRepository(db)
	historyRepo := repository.NewPostgresHistoryRepository(db)
	matchingRepo := repository.NewPostgresMatchingRepository(db)
	dashboardRepo := repository.NewPostgresDashboardRepository(db)
	decisionRunner := repository.NewPostgresDecisionRunner(db)

	authUC := usecase.NewAuthUsecase(employeeRepo, jwtSvc)
	taxonomyUC := usecase.NewTaxonomyUsecase(masterRepo, subRepo)
	submissionUC := usecase.NewSubmissionUsecase(claimRepo, historyRepo, employeeRepo, taxonomyUC)
	approvalUC := usecase.NewApprovalUsecase(decisionRunner, claimRepo, historyRepo, employeeRepo)
	matchingUC := usecase.NewMatchingUsecase(matchingRepo, subRepo, masterRepo, parser)
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo, masterRepo, subRepo, c)
	employeeUC := usecase.NewEmployeeUsecase(employeeRepo)

	authHandler := handler.NewAuthHandler(authUC)
	skillHandler := handler.NewSkillHandler(taxonomyUC)
	submissionHandler := handler.NewSubmissionHandler(submissionUC)
	approvalHandler := handler.NewApprovalHandler(approvalUC, dashboardUC)
	matchingHandler := handler.NewMatchingHandler(matchingUC)
	dashboardHandler := handler.NewDashboardHandler(dashboardUC)
	employeeHandler := handler.NewEmployeeHandler(employeeUC)

	authHandler.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", authMw.Middleware())

	skillHandler.RegisterRoutes(protected.Group("/skills"))
	submissionHandler.RegisterRoutes(protected.Group("/skills"))
	matchingHandler.RegisterRoutes(protected.Group("/matching"))
	dashboardHandler.RegisterRoutes(protected.Group("/dashboard"))
	employeeHandler.RegisterRoutes(protected.Group("/employees"))

	approvals := protected.Group("/approvals", authMw.RequireApprover())
	approvalHandler.RegisterRoutes(approvals)
}
