package controllers

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/middleware"
	"welfare-center-api/src/services/dashboard"
)

// GetDashboardStats godoc
// @Summary Dashboard summary
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Security BearerAuth
// @Router /dashboard/stats [get]
func GetDashboardStats(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	stats, err := dashboard.Stats(principal.InstitutionID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetResponseTrends godoc
// @Summary Daily response trend
// @Tags dashboard
// @Produce json
// @Param period query string false "7d or 30d (default 7d)"
// @Success 200 {array} models.DailyResponseCount
// @Security BearerAuth
// @Router /dashboard/response-trends [get]
func GetResponseTrends(c *fiber.Ctx) error {
	days := 7
	if c.Query("period") == "30d" {
		days = 30
	}

	principal := middleware.MustPrincipal(c)
	trend, err := dashboard.Trends(principal.InstitutionID, days)
	if err != nil {
		return err
	}
	return c.JSON(trend)
}

// GetDashboardGroups godoc
// @Summary Per-group dashboard stats
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.GroupStats
// @Security BearerAuth
// @Router /dashboard/user-groups [get]
func GetDashboardGroups(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	stats, err := dashboard.Groups(principal.InstitutionID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetRecentActivities godoc
// @Summary Recent activity feed
// @Tags dashboard
// @Produce json
// @Param limit query int false "Max rows (default 20)"
// @Param type query string false "RESPONSE, UPLOAD or USER_REGISTERED"
// @Success 200 {array} models.RecentActivity
// @Security BearerAuth
// @Router /dashboard/recent-activities [get]
func GetRecentActivities(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	feed, err := dashboard.Recent(principal.InstitutionID, c.QueryInt("limit", 20), c.Query("type"))
	if err != nil {
		return err
	}
	return c.JSON(feed)
}
