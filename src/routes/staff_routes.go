package routes

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/controllers"
	"welfare-center-api/src/middleware"
	"welfare-center-api/src/models"
)

// staffRoutes registers everything an institution admin or staff member can
// reach. All handlers scope their queries to the principal's institution.
func staffRoutes(api fiber.Router) {
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleStaff)

	users := api.Group("/users", staff)
	users.Post("/", controllers.CreateUser)
	users.Get("/", controllers.GetUsers)
	users.Get("/:id", controllers.GetUserByID)
	users.Put("/:id", controllers.UpdateUser)
	users.Delete("/:id", controllers.DeleteUser)
	users.Post("/:id/login-code", controllers.IssueUserLoginCode)

	groups := api.Group("/user-groups", staff)
	groups.Post("/", controllers.CreateUserGroup)
	groups.Get("/", controllers.GetUserGroups)
	groups.Get("/active", controllers.GetActiveUserGroups)
	groups.Get("/:id", controllers.GetUserGroupByID)
	groups.Put("/:id", controllers.UpdateUserGroup)
	groups.Delete("/:id", controllers.DeleteUserGroup)
	groups.Get("/:id/members", controllers.GetGroupMembers)
	groups.Post("/:id/members", controllers.AddGroupMembers)
	groups.Delete("/:id/members/:userId", controllers.RemoveGroupMember)

	categories := api.Group("/categories", staff)
	categories.Post("/", controllers.CreateCategory)
	categories.Get("/", controllers.GetCategories)
	categories.Get("/active", controllers.GetActiveCategories)
	categories.Put("/:id", controllers.UpdateCategory)
	categories.Delete("/:id", controllers.DeleteCategory)

	// static question paths first so "active" and friends never bind as :id
	questions := api.Group("/questions", staff)
	questions.Post("/", controllers.CreateQuestion)
	questions.Get("/", controllers.GetQuestions)
	questions.Get("/active", controllers.GetActiveQuestions)
	questions.Get("/statistics", controllers.GetQuestionStatistics)
	questions.Get("/by-type/:questionType", controllers.GetQuestionsByType)
	questions.Get("/:id", controllers.GetQuestionByID)
	questions.Put("/:id", controllers.UpdateQuestion)
	questions.Delete("/:id", controllers.DeleteQuestion)

	assignments := api.Group("/question-assignments", staff)
	assignments.Post("/", controllers.CreateAssignment)
	assignments.Get("/", controllers.GetAssignments)
	assignments.Get("/statistics", controllers.GetAssignmentStatistics)
	assignments.Get("/by-user/:userId", controllers.GetAssignmentsByUser)
	assignments.Get("/by-group/:groupId", controllers.GetAssignmentsByGroup)
	assignments.Put("/:id", controllers.UpdateAssignment)
	assignments.Delete("/:id", controllers.DeleteAssignment)

	responses := api.Group("/responses", staff)
	responses.Get("/recent", controllers.GetRecentResponses)
	responses.Get("/assignment/:assignmentId", controllers.GetAssignmentResponses)
	responses.Get("/user/:userId", controllers.GetUserResponses)
	responses.Get("/question/:questionId/user/:userId/history", controllers.GetResponseHistory)

	uploads := api.Group("/admin/uploads", staff)
	uploads.Get("/", controllers.GetInstitutionUploads)
	uploads.Get("/:id", controllers.GetInstitutionUploadByID)
	uploads.Put("/:id/response", controllers.RespondToUpload)

	dashboard := api.Group("/dashboard", staff)
	dashboard.Get("/stats", controllers.GetDashboardStats)
	dashboard.Get("/response-trends", controllers.GetResponseTrends)
	dashboard.Get("/user-groups", controllers.GetDashboardGroups)
	dashboard.Get("/recent-activities", controllers.GetRecentActivities)
}
