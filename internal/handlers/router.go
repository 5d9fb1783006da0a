package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"medrecords-backend/internal/auth"
	"medrecords-backend/internal/middleware"
)

// RegisterAPI mounts the JSON surface under /api plus the health probe.
// Reads require authentication; patient/study writes require the modification
// role; user management requires admin.
func (h *Handler) RegisterAPI(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.Use(cors.Default())
	api.POST("/login", h.APILogin)
	api.POST("/logout", h.APILogout)

	authed := api.Group("", middleware.RequireAuth())
	authed.GET("/patients", h.ListPatients)
	authed.GET("/patients/:id", h.GetPatient)
	authed.GET("/studies", h.ListStudies)
	authed.GET("/studies/:id", h.GetStudy)
	authed.GET("/search", h.SearchRecords)

	modify := api.Group("", middleware.RequireRole(auth.ActionModify))
	modify.POST("/patients", h.CreatePatient)
	modify.PUT("/patients/:id", h.UpdatePatient)
	modify.POST("/studies", h.CreateStudy)
	modify.PUT("/studies/:id", h.UpdateStudy)

	admin := api.Group("/users", middleware.RequireRole(auth.ActionAdmin))
	admin.GET("", h.ListUsers)
	admin.POST("", h.CreateUser)
	admin.PUT("/:id", h.UpdateUser)
}

// RegisterFrontend mounts the server-rendered surface. Templates must already
// be loaded on the engine.
func (h *Handler) RegisterFrontend(r *gin.Engine) {
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.LoginSubmit)
	r.GET("/logout", h.LogoutPage)

	view := r.Group("", middleware.RequireLogin())
	view.GET("/", h.Dashboard)
	view.GET("/dashboard", h.Dashboard)
	view.GET("/patient/:id", h.PatientDetail)
	view.GET("/study/:id", h.StudyDetail)

	modify := r.Group("", middleware.RequireRolePage(auth.ActionModify))
	modify.GET("/patient/new", h.NewPatientForm)
	modify.POST("/patient/new", h.CreatePatientForm)
	modify.GET("/patient/edit/:id", h.EditPatientForm)
	modify.POST("/patient/edit/:id", h.UpdatePatientForm)
	modify.GET("/study/new", h.NewStudyForm)
	modify.POST("/study/new", h.CreateStudyForm)
	modify.GET("/study/edit/:id", h.EditStudyForm)
	modify.POST("/study/edit/:id", h.UpdateStudyForm)

	r.GET("/admin/users", middleware.RequireRolePage(auth.ActionAdmin), h.AdminUsersPage)
}
