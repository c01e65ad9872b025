package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return New(server.URL, 5*time.Second), server
}

func TestGetSkillMatrixByCourse(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/skill-matrix/course/course-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"m1","course_id":"course-1","skills":["SQL","Python"]}]`))
	})
	defer server.Close()

	matrices, err := c.GetSkillMatrixByCourse(context.Background(), "course-1")

	assert.NoError(t, err)
	assert.Len(t, matrices, 1)
	assert.Equal(t, []string{"SQL", "Python"}, matrices[0].Skills)
}

func TestGetCourseStudentAnalytics(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/instructor/courses/course-1/analytics", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"students":[{"id":"s1","name":"Alice","skill_breakdown":{"SQL":{"score":91.5,"earned_at":"2026-03-14T12:00:00Z"}}}]}`))
	})
	defer server.Close()

	analytics, err := c.GetCourseStudentAnalytics(context.Background(), "course-1")

	assert.NoError(t, err)
	assert.Len(t, analytics.Students, 1)
	entry := analytics.Students[0].SkillBreakdown["SQL"]
	assert.Equal(t, 91.5, entry.Score)
	assert.NotNil(t, entry.EarnedAt)
	assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), entry.EarnedAt.UTC())
}

func TestGetStudentEarnedBadges(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/badges/student/student-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"badges":[{"badge_id":"b1","skill_name":"SQL","level":"intermediate","progress":92,"course_id":"c1","course_name":"Databases"}],"total_badges":1}`))
	})
	defer server.Close()

	list, err := c.GetStudentEarnedBadges(context.Background(), "student-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, list.TotalBadges)
	assert.Equal(t, "b1", list.Badges[0].BadgeID)
}

func TestAPIErrorUsesBackendMessage(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Student not found"}`))
	})
	defer server.Close()

	_, err := c.GetStudentEarnedBadges(context.Background(), "missing")

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Student not found", err.Error())
}

func TestAPIErrorFallbackMessage(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := c.GetSkillMatrixByCourse(context.Background(), "course-1")

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "backend request failed with status 500", err.Error())
}

func TestPathEscapesIdentifiers(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/badges/student/stu%2Fdent", r.URL.EscapedPath())
		w.Write([]byte(`{"badges":[],"total_badges":0}`))
	})
	defer server.Close()

	_, err := c.GetStudentEarnedBadges(context.Background(), "stu/dent")
	assert.NoError(t, err)
}
