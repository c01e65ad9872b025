package routes

import (
	"github.com/dylankatchen/achieveup-badges/internal/handlers"
	"github.com/dylankatchen/achieveup-badges/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterBadgeRoutes(rg *gin.RouterGroup, h *handlers.BadgeHandler) {
	// Instructor view
	courses := rg.Group("/courses")
	courses.GET("/:courseId/badges", h.GetCourseBadges)

	// Student view
	students := rg.Group("/students")
	students.Use(middleware.LookupRateLimit())
	students.GET("/:studentId/badges", h.GetStudentBadges)
}
