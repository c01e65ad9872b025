package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dylankatchen/achieveup-badges/internal/client"
	"github.com/dylankatchen/achieveup-badges/internal/models"
	"github.com/dylankatchen/achieveup-badges/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeAPI struct {
	matrices     []models.SkillMatrix
	matrixErr    error
	analytics    *models.CourseAnalytics
	analyticsErr error
	badges       *models.StudentBadgeList
	badgesErr    error

	badgeCalls int
}

func (f *fakeAPI) GetSkillMatrixByCourse(ctx context.Context, courseID string) ([]models.SkillMatrix, error) {
	return f.matrices, f.matrixErr
}

func (f *fakeAPI) GetCourseStudentAnalytics(ctx context.Context, courseID string) (*models.CourseAnalytics, error) {
	return f.analytics, f.analyticsErr
}

func (f *fakeAPI) GetStudentEarnedBadges(ctx context.Context, studentID string) (*models.StudentBadgeList, error) {
	f.badgeCalls++
	return f.badges, f.badgesErr
}

func testContext(t *testing.T, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/", nil)
	c.Params = params
	return c, w
}

func TestGetCourseBadges(t *testing.T) {
	api := &fakeAPI{
		matrices: []models.SkillMatrix{{ID: "m1", Skills: []string{"SQL", "Advanced Python"}}},
		analytics: &models.CourseAnalytics{
			Students: []models.StudentAnalytics{
				{ID: "s1", Name: "Alice", SkillBreakdown: map[string]models.SkillScore{
					"SQL": {Score: 85},
				}},
			},
		},
	}
	h := NewBadgeHandler(api)

	c, w := testContext(t, gin.Params{{Key: "courseId", Value: "course-1"}})
	h.GetCourseBadges(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		CourseID    string         `json:"course_id"`
		Badges      []models.Badge `json:"badges"`
		TotalSkills int            `json:"total_skills"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "course-1", response.CourseID)
	assert.Equal(t, 2, response.TotalSkills)
	assert.Len(t, response.Badges, 2)
	assert.Equal(t, models.BadgeLevelAdvanced, response.Badges[1].Level)
	assert.Len(t, response.Badges[0].Earned, 1)
	assert.Len(t, response.Badges[1].NotEarned, 1)
}

func TestGetCourseBadgesMatrixFailure(t *testing.T) {
	api := &fakeAPI{
		matrixErr: &client.APIError{StatusCode: http.StatusServiceUnavailable, Message: "Canvas is down"},
	}
	h := NewBadgeHandler(api)

	c, w := testContext(t, gin.Params{{Key: "courseId", Value: "course-1"}})
	h.GetCourseBadges(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var response struct {
		Error  string         `json:"error"`
		Badges []models.Badge `json:"badges"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Canvas is down", response.Error)
	assert.Empty(t, response.Badges)
}

func TestGetStudentBadges(t *testing.T) {
	api := &fakeAPI{
		badges: &models.StudentBadgeList{
			Badges: []models.EarnedBadgeRecord{
				{BadgeID: "b1", SkillName: "SQL", Level: models.BadgeLevelIntermediate, Progress: 92},
			},
			TotalBadges: 1,
		},
	}
	h := NewBadgeHandler(api)

	c, w := testContext(t, gin.Params{{Key: "studentId", Value: "student-1"}})
	h.GetStudentBadges(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.StudentBadgeList
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.TotalBadges)
	assert.Len(t, response.Badges, 1)
}

func TestGetStudentBadgesBlankID(t *testing.T) {
	api := &fakeAPI{}
	h := NewBadgeHandler(api)

	c, w := testContext(t, gin.Params{{Key: "studentId", Value: "   "}})
	h.GetStudentBadges(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, api.badgeCalls)

	var response struct {
		Error       string                     `json:"error"`
		Badges      []models.EarnedBadgeRecord `json:"badges"`
		TotalBadges int                        `json:"total_badges"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Error)
	assert.Empty(t, response.Badges)
	assert.Equal(t, 0, response.TotalBadges)
}

func TestGetStudentBadgesUpstreamFailure(t *testing.T) {
	api := &fakeAPI{
		badgesErr: &client.APIError{StatusCode: http.StatusNotFound, Message: "Student not found"},
	}
	h := NewBadgeHandler(api)

	c, w := testContext(t, gin.Params{{Key: "studentId", Value: "missing"}})
	h.GetStudentBadges(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var response struct {
		Error       string                     `json:"error"`
		Badges      []models.EarnedBadgeRecord `json:"badges"`
		TotalBadges int                        `json:"total_badges"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Student not found", response.Error)
	assert.Empty(t, response.Badges)
	assert.Equal(t, 0, response.TotalBadges)
}
