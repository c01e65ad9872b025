package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dylankatchen/achieveup-badges/internal/models"
	"github.com/dylankatchen/achieveup-badges/pkg/logger"
)

// BackendAPI is the slice of the AchieveUp backend the badge services need.
type BackendAPI interface {
	GetSkillMatrixByCourse(ctx context.Context, courseID string) ([]models.SkillMatrix, error)
	GetCourseStudentAnalytics(ctx context.Context, courseID string) (*models.CourseAnalytics, error)
	GetStudentEarnedBadges(ctx context.Context, studentID string) (*models.StudentBadgeList, error)
}

// BadgeDeriver builds the instructor badge view for a course from the
// course's skill matrix and student analytics.
type BadgeDeriver struct {
	api BackendAPI
}

func NewBadgeDeriver(api BackendAPI) *BadgeDeriver {
	return &BadgeDeriver{api: api}
}

var (
	beginnerHints = []string{"basic", "intro", "fundamental"}
	advancedHints = []string{"advanced", "expert", "master"}
)

// ClassifyLevel maps a skill name to a badge level by substring. The
// beginner hints are checked first, so "Intro to Advanced Topics" stays
// a beginner badge.
func ClassifyLevel(skillName string) models.BadgeLevel {
	lower := strings.ToLower(skillName)
	for _, hint := range beginnerHints {
		if strings.Contains(lower, hint) {
			return models.BadgeLevelBeginner
		}
	}
	for _, hint := range advancedHints {
		if strings.Contains(lower, hint) {
			return models.BadgeLevelAdvanced
		}
	}
	return models.BadgeLevelIntermediate
}

// DeriveBadges produces one badge per unique skill in the course's
// matrices, partitioning every analytics student into earned/not-earned
// at the threshold score.
//
// A missing or empty skill matrix is a valid empty result. A failed
// matrix fetch is fatal. A failed analytics fetch degrades to badges
// with empty partitions and is only logged.
func (d *BadgeDeriver) DeriveBadges(ctx context.Context, courseID string) ([]models.Badge, error) {
	matrices, err := d.api.GetSkillMatrixByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	skills := dedupeSkills(matrices)
	if len(skills) == 0 {
		return []models.Badge{}, nil
	}

	var students []models.StudentAnalytics
	analytics, err := d.api.GetCourseStudentAnalytics(ctx, courseID)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("course_id", courseID).
			Msg("Analytics fetch failed, rendering badges without student data")
	} else if analytics != nil {
		students = analytics.Students
	}

	badges := make([]models.Badge, 0, len(skills))
	for i, skill := range skills {
		badge := models.Badge{
			ID:          fmt.Sprintf("badge-%d", i),
			SkillName:   skill,
			Name:        skill + " Badge",
			Description: fmt.Sprintf("Awarded for demonstrating proficiency in %s", skill),
			Level:       ClassifyLevel(skill),
			Earned:      []models.BadgeStudent{},
			NotEarned:   []models.BadgeStudent{},
		}

		for _, student := range students {
			score := 0.0
			var earnedAt *time.Time
			if entry, ok := student.SkillBreakdown[skill]; ok {
				score = entry.Score
				earnedAt = entry.EarnedAt
			}

			placement := models.BadgeStudent{
				StudentID: student.ID,
				Name:      student.Name,
				Score:     score,
			}

			if score >= models.EarnedScoreThreshold {
				if earnedAt != nil {
					placement.EarnedAt = earnedAt
				} else {
					logger.Warn().
						Str("course_id", courseID).
						Str("student_id", student.ID).
						Str("skill", skill).
						Msg("Earned skill has no earned_at from backend")
				}
				badge.Earned = append(badge.Earned, placement)
			} else {
				badge.NotEarned = append(badge.NotEarned, placement)
			}
		}

		badges = append(badges, badge)
	}

	return badges, nil
}

// dedupeSkills flattens every matrix's skill list into unique names in
// first-seen order.
func dedupeSkills(matrices []models.SkillMatrix) []string {
	seen := make(map[string]bool)
	var skills []string
	for _, matrix := range matrices {
		for _, skill := range matrix.Skills {
			if skill == "" || seen[skill] {
				continue
			}
			seen[skill] = true
			skills = append(skills, skill)
		}
	}
	return skills
}
