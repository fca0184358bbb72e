package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardStats is the institution home-screen summary. CompletionRate is
// today's distinct respondents over active members.
type DashboardStats struct {
	TotalUsers        int64   `json:"totalUsers"`
	ActiveUsers       int64   `json:"activeUsers"`
	TotalGroups       int64   `json:"totalGroups"`
	TotalQuestions    int64   `json:"totalQuestions"`
	ActiveQuestions   int64   `json:"activeQuestions"`
	ActiveAssignments int64   `json:"activeAssignments"`
	TodayResponses    int64   `json:"todayResponses"`
	TodayRespondents  int64   `json:"todayRespondents"`
	CompletionRate    float64 `json:"completionRate"`
	UnreadUploads     int64   `json:"unreadUploads"`
	PendingAdminCount int64   `json:"pendingAdminCount"`
}

// DailyResponseCount is one point of the submission trend chart.
type DailyResponseCount struct {
	Date        string `json:"date"`
	Responses   int64  `json:"responses"`
	Respondents int64  `json:"respondents"`
}

// GroupStats summarizes one user group for the dashboard.
type GroupStats struct {
	GroupID        primitive.ObjectID `json:"groupId"`
	GroupName      string             `json:"groupName"`
	MemberCount    int64              `json:"memberCount"`
	ResponsesToday int64              `json:"responsesToday"`
}

// RecentActivity is a unified feed row of the latest responses, uploads and
// member registrations.
type RecentActivity struct {
	Type       string             `json:"type"` // RESPONSE, UPLOAD or USER_REGISTERED
	UserID     primitive.ObjectID `json:"userId"`
	UserName   string             `json:"userName"`
	Summary    string             `json:"summary"`
	OccurredAt time.Time          `json:"occurredAt"`
}

// QuestionStatistics aggregates the question pool by type.
type QuestionStatistics struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	ByType   map[string]int64 `json:"byType"`
}

// AssignmentStatistics aggregates assignment targets and answered coverage.
type AssignmentStatistics struct {
	Total            int64 `json:"total"`
	UserAssignments  int64 `json:"userAssignments"`
	GroupAssignments int64 `json:"groupAssignments"`
	WithResponses    int64 `json:"withResponses"`
}

// UserQuestionStatistics is the member's own progress counter for today.
type UserQuestionStatistics struct {
	TotalAssigned  int     `json:"totalAssigned"`
	CompletedToday int     `json:"completedToday"`
	PendingToday   int     `json:"pendingToday"`
	CompletionRate float64 `json:"completionRate"`
}
