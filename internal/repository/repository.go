package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/courseapp/course-service/internal/models"
	"github.com/lib/pq"
)

// Sentinel errors translated from driver-level conditions.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email address already in use")
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database. The email unique constraint
// is the single arbiter of duplicates, so concurrent signups with the same
// address cannot both succeed.
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email_address, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, user.FirstName, user.LastName, user.EmailAddress, user.Password).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email address
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, first_name, last_name, email_address, password, created_at, updated_at
		FROM users
		WHERE email_address = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.EmailAddress, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListCourses retrieves all courses with their owners joined in.
func (r *Repository) ListCourses() ([]models.Course, error) {
	query := `
		SELECT c.id, c.title, c.description, c.estimated_time, c.materials_needed, c.user_id,
		       u.id, u.first_name, u.last_name, u.email_address
		FROM courses c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		owner := &models.User{}
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.EstimatedTime, &c.MaterialsNeeded, &c.UserID,
			&owner.ID, &owner.FirstName, &owner.LastName, &owner.EmailAddress,
		); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		c.Owner = owner
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// FindCourseByID retrieves one course with its owner joined in.
func (r *Repository) FindCourseByID(id int64) (*models.Course, error) {
	c := &models.Course{}
	owner := &models.User{}
	query := `
		SELECT c.id, c.title, c.description, c.estimated_time, c.materials_needed, c.user_id,
		       u.id, u.first_name, u.last_name, u.email_address
		FROM courses c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.EstimatedTime, &c.MaterialsNeeded, &c.UserID,
		&owner.ID, &owner.FirstName, &owner.LastName, &owner.EmailAddress,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	c.Owner = owner
	return c, nil
}

// CreateCourse creates a new course in the database
func (r *Repository) CreateCourse(course *models.Course) error {
	query := `
		INSERT INTO courses (title, description, estimated_time, materials_needed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, course.Title, course.Description, course.EstimatedTime, course.MaterialsNeeded, course.UserID).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// UpdateCourse persists the course's mutable fields
func (r *Repository) UpdateCourse(course *models.Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, estimated_time = $3, materials_needed = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5`
	res, err := r.db.Exec(query, course.Title, course.Description, course.EstimatedTime, course.MaterialsNeeded, course.ID)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCourse removes a course by id
func (r *Repository) DeleteCourse(id int64) error {
	res, err := r.db.Exec(`DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
