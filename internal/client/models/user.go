package models

import "time"

type User struct {
	ID        int64     `json:"id,omitempty"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Profile is the public view of a user, including social counters.
type Profile struct {
	User
	Bio            string `json:"bio,omitempty"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	NotesCount     int    `json:"notes_count"`
	IsFollowing    bool   `json:"is_following"`
}

type Course struct {
	ID          int64  `json:"id,omitempty"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Stats is the dashboard summary for the current user.
type Stats struct {
	NotesCount     int `json:"notes_count"`
	PublicNotes    int `json:"public_notes"`
	BookmarksCount int `json:"bookmarks_count"`
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name,omitempty"`
}

// TokenResponse is returned by login, register and refresh.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// NewCourse is the body of POST /courses.
type NewCourse struct {
	Code        string `json:"code" validate:"required,max=20"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
}

// Enrollment is the body of POST /courses/enroll.
type Enrollment struct {
	CourseCode string `json:"course_code" validate:"required,max=20"`
}
