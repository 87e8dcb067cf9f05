package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

// PopularTags returns the most used tags, best first. limit <= 0 leaves the
// size to the server.
func (a *API) PopularTags(ctx context.Context, limit int) ([]models.Tag, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	out := []models.Tag{}
	if err := a.get(ctx, "/tags/popular", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "is required"}
	}
	var out models.Tag
	if err := a.post(ctx, "/tags", models.Tag{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Courses(ctx context.Context) ([]models.Course, error) {
	out := []models.Course{}
	if err := a.get(ctx, "/courses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyCourses lists the courses the current user is enrolled in.
func (a *API) MyCourses(ctx context.Context) ([]models.Course, error) {
	out := []models.Course{}
	if err := a.get(ctx, "/courses/my-courses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) CreateCourse(ctx context.Context, c models.NewCourse) (*models.Course, error) {
	if err := models.Validate(c); err != nil {
		return nil, err
	}
	var out models.Course
	if err := a.post(ctx, "/courses", c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Enroll(ctx context.Context, courseCode string) error {
	e := models.Enrollment{CourseCode: courseCode}
	if err := models.Validate(e); err != nil {
		return err
	}
	return a.post(ctx, "/courses/enroll", e, nil)
}

// Stats returns the dashboard counters of the current user.
func (a *API) Stats(ctx context.Context) (*models.Stats, error) {
	var out models.Stats
	if err := a.get(ctx, "/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
