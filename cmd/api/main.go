package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/examsync/examsync-api/api/swagger"
	"github.com/examsync/examsync-api/internal/handler"
	"github.com/examsync/examsync-api/internal/middleware"
	"github.com/examsync/examsync-api/internal/repository"
	"github.com/examsync/examsync-api/internal/service"
	"github.com/examsync/examsync-api/pkg/cache"
	"github.com/examsync/examsync-api/pkg/config"
	"github.com/examsync/examsync-api/pkg/database"
	"github.com/examsync/examsync-api/pkg/logger"
	"github.com/examsync/examsync-api/pkg/mail"
	corsmiddleware "github.com/examsync/examsync-api/pkg/middleware/cors"
	reqidmiddleware "github.com/examsync/examsync-api/pkg/middleware/requestid"
)

// @title ExamSync API
// @version 1.0.0
// @description Exam scheduling administration backend
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()
	mailer := mail.New(cfg.Mail, logr)
	metricsSvc := service.NewMetricsService()

	collegeRepo := repository.NewCollegeRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	programRepo := repository.NewProgramRepository(db)
	termRepo := repository.NewTermRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	buildingRepo := repository.NewBuildingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	examPeriodRepo := repository.NewExamPeriodRepository(db)
	examDetailRepo := repository.NewExamDetailRepository(db)
	modalityRepo := repository.NewModalityRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	inboxRepo := repository.NewInboxRepository(db)
	userRepo := repository.NewUserRepository(db)
	resetTokenRepo := repository.NewResetTokenRepository(redisClient, cfg.Auth.ResetTokenTTL)

	collegeSvc := service.NewCollegeService(collegeRepo, validate, logr)
	departmentSvc := service.NewDepartmentService(departmentRepo, validate, logr)
	programSvc := service.NewProgramService(programRepo, validate, logr)
	termSvc := service.NewTermService(termRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, validate, logr)
	sectionSvc := service.NewSectionService(sectionRepo, validate, logr)
	facilitySvc := service.NewFacilityService(buildingRepo, roomRepo, validate, logr)
	examPeriodSvc := service.NewExamPeriodService(examPeriodRepo, collegeRepo, validate, logr)
	examDetailSvc := service.NewExamDetailService(examDetailRepo, validate, logr)
	modalitySvc := service.NewModalityService(modalityRepo, validate, logr)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, validate, logr)
	roleSvc := service.NewRoleService(roleRepo, validate, logr)
	inboxSvc := service.NewInboxService(inboxRepo, validate, logr)
	userSvc := service.NewUserService(userRepo, validate, logr)
	authSvc := service.NewAuthService(userRepo, resetTokenRepo, mailer, cfg.Auth, cfg.Mail, validate, logr)
	exportSvc := service.NewExportService(examDetailRepo, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Anonymous access is permitted everywhere today; claims are attached
	// when a valid token is presented.
	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.OptionalAuth(authSvc))

	registerRoutes(api, routeDeps{
		auth:         handler.NewAuthHandler(authSvc),
		colleges:     handler.NewCollegeHandler(collegeSvc),
		departments:  handler.NewDepartmentHandler(departmentSvc),
		programs:     handler.NewProgramHandler(programSvc),
		terms:        handler.NewTermHandler(termSvc),
		courses:      handler.NewCourseHandler(courseSvc),
		sections:     handler.NewSectionHandler(sectionSvc),
		facilities:   handler.NewFacilityHandler(facilitySvc),
		examPeriods:  handler.NewExamPeriodHandler(examPeriodSvc),
		examDetails:  handler.NewExamDetailHandler(examDetailSvc),
		modalities:   handler.NewModalityHandler(modalitySvc),
		availability: handler.NewAvailabilityHandler(availabilitySvc),
		roles:        handler.NewRoleHandler(roleSvc),
		inbox:        handler.NewInboxHandler(inboxSvc),
		users:        handler.NewUserHandler(userSvc, roleSvc),
		exports:      handler.NewExportHandler(exportSvc, cfg.Exports),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

type routeDeps struct {
	auth         *handler.AuthHandler
	colleges     *handler.CollegeHandler
	departments  *handler.DepartmentHandler
	programs     *handler.ProgramHandler
	terms        *handler.TermHandler
	courses      *handler.CourseHandler
	sections     *handler.SectionHandler
	facilities   *handler.FacilityHandler
	examPeriods  *handler.ExamPeriodHandler
	examDetails  *handler.ExamDetailHandler
	modalities   *handler.ModalityHandler
	availability *handler.AvailabilityHandler
	roles        *handler.RoleHandler
	inbox        *handler.InboxHandler
	users        *handler.UserHandler
	exports      *handler.ExportHandler
}

func registerRoutes(api *gin.RouterGroup, d routeDeps) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", d.auth.Login)
		auth.POST("/password-reset", d.auth.RequestPasswordReset)
		auth.POST("/password-reset/confirm", d.auth.ConfirmPasswordReset)
	}

	colleges := api.Group("/colleges")
	{
		colleges.GET("", d.colleges.List)
		colleges.GET("/:id", d.colleges.Get)
		colleges.POST("", d.colleges.Create)
		colleges.PUT("/:id", d.colleges.Update)
		colleges.DELETE("/:id", d.colleges.Delete)
	}

	departments := api.Group("/departments")
	{
		departments.GET("", d.departments.List)
		departments.GET("/:id", d.departments.Get)
		departments.POST("", d.departments.Create)
		departments.PUT("/:id", d.departments.Update)
		departments.DELETE("/:id", d.departments.Delete)
	}

	programs := api.Group("/programs")
	{
		programs.GET("", d.programs.List)
		programs.GET("/:id", d.programs.Get)
		programs.POST("", d.programs.Create)
		programs.PUT("/:id", d.programs.Update)
		programs.DELETE("/:id", d.programs.Delete)
	}

	terms := api.Group("/terms")
	{
		terms.GET("", d.terms.List)
		terms.GET("/:id", d.terms.Get)
		terms.POST("", d.terms.Create)
		terms.PUT("/:id", d.terms.Update)
		terms.DELETE("/:id", d.terms.Delete)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", d.courses.List)
		courses.GET("/:id", d.courses.Get)
		courses.POST("", d.courses.Create)
		courses.PUT("/:id", d.courses.Update)
		courses.DELETE("/:id", d.courses.Delete)
		courses.GET("/:id/users", d.courses.ListAssignments)
	}

	courseUsers := api.Group("/course-users")
	{
		courseUsers.POST("", d.courses.CreateAssignment)
		courseUsers.PUT("/:courseId/:userId", d.courses.UpdateAssignment)
		courseUsers.DELETE("/:courseId/:userId", d.courses.DeleteAssignment)
	}

	sections := api.Group("/sections")
	{
		sections.GET("", d.sections.List)
		sections.GET("/:id", d.sections.Get)
		sections.POST("", d.sections.Create)
		sections.PUT("/:id", d.sections.Update)
		sections.DELETE("/:id", d.sections.Delete)
	}

	buildings := api.Group("/buildings")
	{
		buildings.GET("", d.facilities.ListBuildings)
		buildings.GET("/:id", d.facilities.GetBuilding)
		buildings.POST("", d.facilities.CreateBuilding)
		buildings.PUT("/:id", d.facilities.UpdateBuilding)
		buildings.DELETE("/:id", d.facilities.DeleteBuilding)
	}

	rooms := api.Group("/rooms")
	{
		rooms.GET("", d.facilities.ListRooms)
		rooms.GET("/:id", d.facilities.GetRoom)
		rooms.POST("", d.facilities.CreateRoom)
		rooms.PUT("/:id", d.facilities.UpdateRoom)
		rooms.DELETE("/:id", d.facilities.DeleteRoom)
	}

	examPeriods := api.Group("/exam-periods")
	{
		examPeriods.GET("", d.examPeriods.List)
		examPeriods.PUT("/bulk", d.examPeriods.Reconcile)
		examPeriods.GET("/:id", d.examPeriods.Get)
		examPeriods.POST("", d.examPeriods.Create)
		examPeriods.PUT("/:id", d.examPeriods.Update)
		examPeriods.DELETE("/:id", d.examPeriods.Delete)
	}

	examDetails := api.Group("/exam-details")
	{
		examDetails.GET("", d.examDetails.List)
		examDetails.GET("/:id", d.examDetails.Get)
		examDetails.POST("", d.examDetails.Create)
		examDetails.PUT("/:id", d.examDetails.Update)
		examDetails.DELETE("/:id", d.examDetails.Delete)
	}

	modalities := api.Group("/modalities")
	{
		modalities.GET("", d.modalities.List)
		modalities.GET("/:id", d.modalities.Get)
		modalities.POST("", d.modalities.Create)
		modalities.PUT("/:id", d.modalities.Update)
		modalities.DELETE("/:id", d.modalities.Delete)
	}

	availabilities := api.Group("/availabilities")
	{
		availabilities.GET("", d.availability.List)
		availabilities.GET("/:id", d.availability.Get)
		availabilities.POST("", d.availability.Create)
		availabilities.PUT("/:id", d.availability.Update)
		availabilities.DELETE("/:id", d.availability.Delete)
	}

	roles := api.Group("/roles")
	{
		roles.GET("", d.roles.ListRoles)
		roles.GET("/:id", d.roles.GetRole)
		roles.POST("", d.roles.CreateRole)
		roles.PUT("/:id", d.roles.UpdateRole)
		roles.DELETE("/:id", d.roles.DeleteRole)
	}

	userRoles := api.Group("/user-roles")
	{
		userRoles.GET("", d.roles.ListUserRoles)
		userRoles.GET("/history", d.roles.ListHistory)
		userRoles.GET("/:id", d.roles.GetUserRole)
		userRoles.POST("", d.roles.CreateUserRole)
		userRoles.PUT("/:id", d.roles.UpdateUserRole)
		userRoles.DELETE("/:id", d.roles.DeleteUserRole)
	}

	inbox := api.Group("/inbox")
	{
		inbox.GET("", d.inbox.ListMessages)
		inbox.GET("/:id", d.inbox.GetMessage)
		inbox.POST("", d.inbox.CreateMessage)
		inbox.PATCH("/:id", d.inbox.PatchMessage)
		inbox.DELETE("/:id", d.inbox.DeleteMessage)
		inbox.GET("/:id/replies", d.inbox.ListReplies)
		inbox.POST("/:id/replies", d.inbox.CreateReply)
	}

	users := api.Group("/users")
	{
		users.GET("", d.users.List)
		users.GET("/:id", d.users.Get)
		users.POST("", d.users.Create)
		users.PUT("/:id", d.users.Update)
		users.DELETE("/:id", d.users.Delete)
		users.GET("/:id/roles", d.users.ListRoles)
	}

	api.GET("/exports/exam-schedule", d.exports.ExamSchedule)
}
