package routes

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/controllers"
)

func authRoutes(api fiber.Router) {
	auth := api.Group("/auth")

	auth.Post("/system-admin/login", controllers.SystemAdminLogin)
	auth.Post("/admin/login", controllers.AdminLogin)
	auth.Post("/user/login", controllers.UserLogin)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Post("/logout", controllers.Logout)
	auth.Post("/admin/register", controllers.RegisterAdmin)
	auth.Post("/user/signup", controllers.SignupUser)
}
