package routes

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/controllers"
	"welfare-center-api/src/middleware"
	"welfare-center-api/src/models"
)

// appVersion is stamped at build time with -ldflags "-X ...routes.appVersion=".
var appVersion = "dev"

// InitRoutes wires every route group. Registration order matters: the
// system-admin-only paths under /api/admin go in before the admin/staff
// catch-all groups so the stricter guard wins.
func InitRoutes(app *fiber.App) {
	api := app.Group("/api", middleware.Authenticate())

	// liveness probes, open to load balancers
	test := api.Group("/test")
	test.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	test.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"version": appVersion})
	})

	authRoutes(api)
	publicRoutes(api)
	systemAdminRoutes(api)
	staffRoutes(api)
	memberRoutes(api)
}

func publicRoutes(api fiber.Router) {
	api.Get("/institutions", controllers.GetPublicInstitutions)
	api.Get("/files/:fileId", controllers.ServeFile)
}

// systemAdminRoutes guards each route individually: a group-level Use on
// /admin would also swallow the staff upload inbox at /admin/uploads.
func systemAdminRoutes(api fiber.Router) {
	sysAdmin := api.Group("/admin")
	guard := middleware.RequireRoles(models.RoleSystemAdmin)

	sysAdmin.Get("/", guard, controllers.GetAdmins)
	sysAdmin.Get("/pending", guard, controllers.GetPendingAdmins)
	sysAdmin.Put("/approve/:adminId", guard, controllers.ApproveAdmin)

	sysAdmin.Get("/institutions", guard, controllers.GetInstitutions)
	sysAdmin.Post("/institutions", guard, controllers.CreateInstitution)
	sysAdmin.Get("/institutions/:id", guard, controllers.GetInstitutionByID)
	sysAdmin.Put("/institutions/:id", guard, controllers.UpdateInstitution)
	sysAdmin.Delete("/institutions/:id", guard, controllers.DeleteInstitution)

	// registered after the static paths so "uploads" is never captured as an id
	sysAdmin.Put("/:adminId/status", guard, controllers.ChangeAdminStatus)
}

func memberRoutes(api fiber.Router) {
	member := api.Group("/user", middleware.RequireRoles(models.RoleUser))

	member.Get("/profile", controllers.GetMyProfile)
	member.Put("/profile", controllers.UpdateMyProfile)

	member.Get("/questions", controllers.GetMyQuestions)
	member.Get("/questions/pending", controllers.GetMyPendingQuestions)
	member.Get("/questions/completed", controllers.GetMyCompletedQuestions)
	member.Get("/questions/statistics", controllers.GetMyQuestionStatistics)
	// after the static question paths so none of them parse as an assignment id
	member.Get("/questions/:assignmentId", controllers.GetMyQuestion)

	member.Post("/responses", controllers.SubmitResponse)
	member.Post("/uploads", controllers.CreateUpload)
	member.Get("/uploads", controllers.GetMyUploads)
	member.Get("/uploads/:id", controllers.GetMyUploadByID)
}
