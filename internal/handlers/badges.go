package handlers

import (
	"errors"
	"net/http"

	"github.com/dylankatchen/achieveup-badges/internal/client"
	"github.com/dylankatchen/achieveup-badges/internal/models"
	"github.com/dylankatchen/achieveup-badges/internal/services"
	apperrors "github.com/dylankatchen/achieveup-badges/pkg/errors"
	"github.com/dylankatchen/achieveup-badges/pkg/logger"
	"github.com/gin-gonic/gin"
)

// BadgeHandler serves the instructor and student badge views.
type BadgeHandler struct {
	deriver *services.BadgeDeriver
	lookup  *services.StudentBadgeLookup
	guard   *services.ViewGuard
}

func NewBadgeHandler(api services.BackendAPI) *BadgeHandler {
	return &BadgeHandler{
		deriver: services.NewBadgeDeriver(api),
		lookup:  services.NewStudentBadgeLookup(api),
		guard:   services.NewViewGuard(),
	}
}

// GetCourseBadges renders the instructor view: one badge per skill in the
// course's matrix with earned/not-earned student partitions.
func (h *BadgeHandler) GetCourseBadges(c *gin.Context) {
	courseID := c.Param("courseId")
	viewKey := "course:" + courseID

	gen := h.guard.Begin(viewKey)

	badges, err := h.deriver.DeriveBadges(c.Request.Context(), courseID)
	if err != nil {
		logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to derive course badges")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  upstreamMessage(err, "Failed to load the course skill matrix"),
			"badges": []models.Badge{},
		})
		return
	}

	// A newer load for the same course view supersedes this one.
	if !h.guard.Current(viewKey, gen) {
		logger.Debug().Str("course_id", courseID).Msg("Discarding superseded badge load")
		c.JSON(http.StatusOK, gin.H{
			"course_id":  courseID,
			"badges":     []models.Badge{},
			"superseded": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"course_id":    courseID,
		"badges":       badges,
		"total_skills": len(badges),
	})
}

// GetStudentBadges renders the student view: earned badges resolved by the
// backend, passed through verbatim.
func (h *BadgeHandler) GetStudentBadges(c *gin.Context) {
	studentID := c.Param("studentId")

	list, err := h.lookup.LookupBadges(c.Request.Context(), studentID)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, gin.H{
				"error":        appErr.Message,
				"badges":       []models.EarnedBadgeRecord{},
				"total_badges": 0,
			})
			return
		}

		logger.Error().Err(err).Str("student_id", studentID).Msg("Failed to fetch student badges")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":        upstreamMessage(err, "Failed to fetch student badges"),
			"badges":       []models.EarnedBadgeRecord{},
			"total_badges": 0,
		})
		return
	}

	c.JSON(http.StatusOK, list)
}

// upstreamMessage extracts the backend's human-readable failure message,
// falling back to a generic one for transport-level errors.
func upstreamMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return fallback
}
