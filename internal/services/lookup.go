package services

import (
	"context"
	"strings"

	"github.com/dylankatchen/achieveup-badges/internal/models"
	apperrors "github.com/dylankatchen/achieveup-badges/pkg/errors"
)

// StudentBadgeLookup serves the student view: badges the backend already
// resolved, passed through without derivation.
type StudentBadgeLookup struct {
	api BackendAPI
}

func NewStudentBadgeLookup(api BackendAPI) *StudentBadgeLookup {
	return &StudentBadgeLookup{api: api}
}

// LookupBadges fetches a student's earned badges. A blank or
// whitespace-only student ID is rejected before any network call.
// The backend's badges and total_badges are returned verbatim, with no
// cross-validation between count and list length.
func (l *StudentBadgeLookup) LookupBadges(ctx context.Context, studentID string) (*models.StudentBadgeList, error) {
	id := strings.TrimSpace(studentID)
	if id == "" {
		return nil, apperrors.BadRequest("Student ID is required")
	}

	list, err := l.api.GetStudentEarnedBadges(ctx, id)
	if err != nil {
		return nil, err
	}
	if list.Badges == nil {
		list.Badges = []models.EarnedBadgeRecord{}
	}
	return list, nil
}
