package models

import "time"

// Course represents a course owned by a single user. The optional fields are
// pointers so a partial update can tell "absent" from "set to empty".
type Course struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EstimatedTime   *string   `json:"estimatedTime"`
	MaterialsNeeded *string   `json:"materialsNeeded"`
	UserID          int64     `json:"userId"`
	Owner           *User     `json:"-"` // populated on reads via join
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// CourseDetail is the read shape of a course: generated and user-supplied
// fields plus the nested owner profile, timestamps and raw user_id excluded.
type CourseDetail struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	EstimatedTime   *string     `json:"estimatedTime"`
	MaterialsNeeded *string     `json:"materialsNeeded"`
	User            UserProfile `json:"user"`
}

// Detail returns the course's read shape. The owner must have been joined in.
func (c *Course) Detail() CourseDetail {
	d := CourseDetail{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
	}
	if c.Owner != nil {
		d.User = c.Owner.Profile()
	}
	return d
}

// CreateCourseRequest is the body of POST /api/courses. Any client-supplied
// userId is ignored; ownership always goes to the authenticated user.
type CreateCourseRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

// UpdateCourseRequest is the body of PUT /api/courses/{id}. Nil fields are
// left untouched on the stored course.
type UpdateCourseRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}
