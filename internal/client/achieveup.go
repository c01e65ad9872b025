package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dylankatchen/achieveup-badges/internal/models"
)

// APIError is a non-2xx response from the AchieveUp backend. Message holds
// whatever human-readable text the backend supplied, if any.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend request failed with status %d", e.StatusCode)
}

// Client talks to the AchieveUp backend API (skill matrix, instructor
// analytics and badge endpoints).
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GetSkillMatrixByCourse returns all skill-matrix records for a course.
// A course without a matrix yields an empty slice, not an error.
func (c *Client) GetSkillMatrixByCourse(ctx context.Context, courseID string) ([]models.SkillMatrix, error) {
	var matrices []models.SkillMatrix
	path := "/skill-matrix/course/" + url.PathEscape(courseID)
	if err := c.getJSON(ctx, path, &matrices); err != nil {
		return nil, err
	}
	return matrices, nil
}

// GetCourseStudentAnalytics returns per-student skill scores for a course.
func (c *Client) GetCourseStudentAnalytics(ctx context.Context, courseID string) (*models.CourseAnalytics, error) {
	var analytics models.CourseAnalytics
	path := "/instructor/courses/" + url.PathEscape(courseID) + "/analytics"
	if err := c.getJSON(ctx, path, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

// GetStudentEarnedBadges returns the badges the backend already resolved
// for a student across all their courses.
func (c *Client) GetStudentEarnedBadges(ctx context.Context, studentID string) (*models.StudentBadgeList, error) {
	var list models.StudentBadgeList
	path := "/badges/student/" + url.PathEscape(studentID)
	if err := c.getJSON(ctx, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Healthy reports whether the backend answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// The backend sends {"error": ...} or {"message": ...} on failure.
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		msg := body.Error
		if msg == "" {
			msg = body.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
