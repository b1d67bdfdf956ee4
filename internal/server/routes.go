// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "jobdesk-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"jobdesk-backend/internal/auth"
	"jobdesk-backend/internal/controller/application"
	"jobdesk-backend/internal/controller/company"
	"jobdesk-backend/internal/controller/contact"
	"jobdesk-backend/internal/controller/job"
	"jobdesk-backend/internal/controller/profile"
	"jobdesk-backend/internal/controller/user"
	"jobdesk-backend/internal/middleware"
	"jobdesk-backend/internal/model"
)

// RegisterRoutes will register each http endpoint routes to bound MyServer instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOriginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrigins := strings.Split(allowOriginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB)
	applications := application.NewApplicationController(s.DB)
	companies := company.NewCompanyController(s.DB)
	contacts := contact.NewContactController(s.DB)
	jobs := job.NewJobController(s.DB)
	profiles := profile.NewProfileController(s.DB)
	users := user.NewUserController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.Use(middleware.EnvRateLimitMiddleware(), middleware.SizeLimit(1<<20))
			authRoute.POST("register", lAuth.RegisterHandler)
			authRoute.POST("register-employer", lAuth.RegisterEmployerHandler)
			authRoute.POST("login", lAuth.LoginHandler)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))

			userRoute := needAuth.Group("/users")
			{
				userRoute.PUT("me", users.UpdateHandler)
				userRoute.DELETE("me", users.DeactivateHandler)
				userRoute.GET(":id", users.GetHandler)
			}

			companyRoute := needAuth.Group("/companies")
			{
				companyRoute.GET("", companies.ListHandler)
				companyRoute.GET(":id", companies.GetByIDHandler)
				companyRoute.POST("", middleware.CheckRole(model.RoleAdmin), companies.CreateHandler)
				companyRoute.Use(middleware.CheckRole(model.RoleEmployer, model.RoleAdmin))
				companyRoute.PUT(":id", companies.UpdateHandler)
				companyRoute.DELETE(":id", companies.DeleteHandler)
			}

			jobRoute := needAuth.Group("/jobs")
			{
				jobRoute.GET("", jobs.ListHandler)
				jobRoute.GET(":id", jobs.GetByIDHandler)
				jobRoute.GET("company/:companyId", jobs.ListByCompanyHandler)
				jobRoute.Use(middleware.CheckRole(model.RoleEmployer, model.RoleAdmin))
				jobRoute.POST("", jobs.CreateHandler)
				jobRoute.PUT(":id", jobs.UpdateHandler)
				jobRoute.DELETE(":id", jobs.DeleteHandler)
			}

			applicationRoute := needAuth.Group("/applications")
			{
				applicationRoute.POST("", middleware.CheckRole(model.RoleSeeker), applications.SubmitHandler)
				applicationRoute.GET("user/:userId", applications.ListForUserHandler)
				applicationRoute.GET("user/:userId/stats", applications.StatsHandler)
				applicationRoute.GET("company/:companyId", middleware.CheckRole(model.RoleEmployer, model.RoleAdmin), applications.ListForCompanyHandler)
				applicationRoute.GET(":id", applications.GetByIDHandler)
				applicationRoute.PATCH(":id/status", middleware.CheckRole(model.RoleEmployer, model.RoleAdmin), applications.UpdateStatusHandler)
				applicationRoute.DELETE(":id", applications.WithdrawHandler)
			}

			contactRoute := needAuth.Group("/contacts")
			{
				contactRoute.GET("", contacts.ListHandler)
				contactRoute.GET("company/:companyId", contacts.ListByCompanyHandler)
				contactRoute.Use(middleware.CheckRole(model.RoleEmployer, model.RoleAdmin))
				contactRoute.POST("", contacts.CreateHandler)
				contactRoute.PUT(":id", contacts.UpdateHandler)
				contactRoute.DELETE(":id", contacts.DeleteHandler)
			}

			profileRoute := needAuth.Group("/profile")
			{
				skillRoute := profileRoute.Group("/skills")
				{
					skillRoute.GET("user/:userId", profiles.ListSkillsHandler)
					skillRoute.Use(middleware.CheckRole(model.RoleSeeker))
					skillRoute.POST("", profiles.CreateSkillHandler)
					skillRoute.DELETE(":id", profiles.DeleteSkillHandler)
				}

				educationRoute := profileRoute.Group("/education")
				{
					educationRoute.GET("user/:userId", profiles.ListEducationHandler)
					educationRoute.Use(middleware.CheckRole(model.RoleSeeker))
					educationRoute.POST("", profiles.CreateEducationHandler)
					educationRoute.PUT(":id", profiles.UpdateEducationHandler)
					educationRoute.DELETE(":id", profiles.DeleteEducationHandler)
				}

				certificationRoute := profileRoute.Group("/certifications")
				{
					certificationRoute.GET("user/:userId", profiles.ListCertificationsHandler)
					certificationRoute.Use(middleware.CheckRole(model.RoleSeeker))
					certificationRoute.POST("", profiles.CreateCertificationHandler)
					certificationRoute.PUT(":id", profiles.UpdateCertificationHandler)
					certificationRoute.DELETE(":id", profiles.DeleteCertificationHandler)
				}

				languageRoute := profileRoute.Group("/languages")
				{
					languageRoute.GET("user/:userId", profiles.ListLanguagesHandler)
					languageRoute.Use(middleware.CheckRole(model.RoleSeeker))
					languageRoute.POST("", profiles.CreateLanguageHandler)
					languageRoute.PUT(":id", profiles.UpdateLanguageHandler)
					languageRoute.DELETE(":id", profiles.DeleteLanguageHandler)
				}
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
