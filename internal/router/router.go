package router

import (
	"time"

	"dayflow/internal/config"
	"dayflow/internal/handler"
	"dayflow/internal/middleware"
	"dayflow/internal/model"
	"dayflow/internal/repository"
	"dayflow/internal/service"
	"dayflow/internal/session"
	"dayflow/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	store := session.NewRedisStore(rdb, cfg.SessionIdleTimeout())
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	payrollRepo := repository.NewPayrollRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg, dispatcher)
	attendanceSvc := service.NewAttendanceService(attendanceRepo)
	leaveSvc := service.NewLeaveService(leaveRepo, attendanceRepo, userRepo, dispatcher)
	payrollSvc := service.NewPayrollService(payrollRepo)
	profileSvc := service.NewProfileService(profileRepo, userRepo, cfg)
	dashboardSvc := service.NewDashboardService(userRepo, attendanceSvc, attendanceRepo, leaveRepo, payrollSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, store)
	attendanceH := handler.NewAttendanceHandler(attendanceSvc)
	leaveH := handler.NewLeaveHandler(leaveSvc)
	payrollH := handler.NewPayrollHandler(payrollSvc, profileSvc, cfg)
	profileH := handler.NewProfileHandler(profileSvc)
	employeesH := handler.NewEmployeesHandler(authSvc, profileRepo)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/signup", authH.Signup)
	r.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	r.GET("/verify-email", authH.VerifyEmail)

	// Authenticated routes — session gate first, then CSRF on mutations
	authed := r.Group("", middleware.SessionAuth(store, cfg.SessionIdleTimeout()), middleware.CSRFGuard(store))
	{
		authed.POST("/logout", authH.Logout)
		authed.GET("/dashboard", dashboardH.Summary)

		authed.GET("/attendance", attendanceH.Page)
		authed.POST("/attendance/check-in", attendanceH.CheckIn)
		authed.POST("/attendance/check-out", attendanceH.CheckOut)

		authed.GET("/leave", leaveH.Mine)
		authed.POST("/leave", leaveH.Submit)

		authed.GET("/profile", profileH.Get)
		authed.POST("/profile", profileH.Update)
		authed.POST("/profile/picture", profileH.UploadPicture)

		authed.GET("/payroll", payrollH.Current)
		authed.GET("/payroll/payslip", payrollH.Payslip)

		// Management surface — HR and Admin only
		admin := authed.Group("/admin", middleware.RequireRole(model.RoleHR, model.RoleAdmin))
		{
			admin.GET("/employees", employeesH.List)
			admin.POST("/employees/:id/deactivate", employeesH.Deactivate)
			admin.POST("/employees/:id/reactivate", employeesH.Reactivate)

			admin.GET("/leave", leaveH.List)
			admin.GET("/leave/:id", leaveH.Get)
			admin.POST("/leave/:id/decide", leaveH.Decide)

			admin.GET("/payroll/:id", payrollH.History)
			admin.POST("/payroll/:id", payrollH.Upsert)
		}
	}

	return r
}
