package models

import "time"

type BadgeLevel string

const (
	BadgeLevelBeginner     BadgeLevel = "beginner"
	BadgeLevelIntermediate BadgeLevel = "intermediate"
	BadgeLevelAdvanced     BadgeLevel = "advanced"
)

// EarnedScoreThreshold is the minimum skill score for a badge to count
// as earned.
const EarnedScoreThreshold = 80.0

// SkillMatrix is one skill-matrix record for a course. A course may have
// several matrices with overlapping skill names.
type SkillMatrix struct {
	ID         string   `json:"id"`
	CourseID   string   `json:"course_id"`
	MatrixName string   `json:"matrix_name"`
	Skills     []string `json:"skills"`
}

// SkillScore is a student's analytics entry for a single skill.
// EarnedAt is only populated by the backend once the skill crosses the
// earning threshold; it may be absent even for qualifying scores.
type SkillScore struct {
	Score    float64    `json:"score"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// StudentAnalytics is one student's row in a course analytics response.
type StudentAnalytics struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	SkillBreakdown map[string]SkillScore `json:"skill_breakdown"`
}

type CourseAnalytics struct {
	Students []StudentAnalytics `json:"students"`
}

// BadgeStudent is a student's placement inside a badge partition.
type BadgeStudent struct {
	StudentID string     `json:"student_id"`
	Name      string     `json:"name"`
	Score     float64    `json:"score"`
	EarnedAt  *time.Time `json:"earned_at,omitempty"`
}

// Badge is the derived, per-skill view-model for the instructor screen.
// It is recomputed on every load and never persisted. The ID is synthetic
// (position in the deduplicated skill list) and not stable across loads.
type Badge struct {
	ID          string         `json:"id"`
	SkillName   string         `json:"skill_name"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Level       BadgeLevel     `json:"level"`
	Earned      []BadgeStudent `json:"earned"`
	NotEarned   []BadgeStudent `json:"not_earned"`
}

// EarnedBadgeRecord is a badge the backend already resolved for a student,
// passed through verbatim by the student view.
type EarnedBadgeRecord struct {
	BadgeID    string     `json:"badge_id"`
	SkillName  string     `json:"skill_name"`
	Level      BadgeLevel `json:"level"`
	Progress   float64    `json:"progress"`
	EarnedAt   *time.Time `json:"earned_at,omitempty"`
	CourseID   string     `json:"course_id"`
	CourseName string     `json:"course_name"`
}

type StudentBadgeList struct {
	Badges      []EarnedBadgeRecord `json:"badges"`
	TotalBadges int                 `json:"total_badges"`
}
