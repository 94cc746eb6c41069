package service

import (
	"errors"
	"fmt"

	"github.com/courseapp/course-service/internal/models"
	"github.com/courseapp/course-service/internal/repository"
	"github.com/courseapp/course-service/internal/validation"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor applied to stored passwords.
const bcryptCost = 10

// Store is the persistence surface the service needs.
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	ListCourses() ([]models.Course, error)
	FindCourseByID(id int64) (*models.Course, error)
	CreateCourse(course *models.Course) error
	UpdateCourse(course *models.Course) error
	DeleteCourse(id int64) error
}

// WelcomeMailer sends the post-signup greeting. May be nil when SMTP is not
// configured.
type WelcomeMailer interface {
	SendWelcome(to, firstName string) error
}

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	mailer WelcomeMailer
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger, mailer WelcomeMailer) *Service {
	return &Service{store: store, log: log, mailer: mailer}
}

// RegisterUser validates the signup request, hashes the password and creates
// the user. Returns a *ValidationError for field-rule or uniqueness failures.
func (s *Service) RegisterUser(req models.CreateUserRequest) (*models.User, error) {
	if msgs := validation.NewUser(req); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		Password:     string(hashed),
	}

	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, &ValidationError{Messages: []string{validation.MsgEmailTaken}}
		}
		return nil, err
	}

	s.log.Infof("User registered: %s", user.EmailAddress)

	if s.mailer != nil {
		go func(to, name string) {
			if err := s.mailer.SendWelcome(to, name); err != nil {
				s.log.Warnf("Failed to send welcome email to %s: %v", to, err)
			}
		}(user.EmailAddress, user.FirstName)
	}

	return user, nil
}

// Authenticate verifies an email/password pair and returns the matching user.
// The failure is uniform whether the user does not exist or the password is
// wrong; the distinguishing detail is only logged.
func (s *Service) Authenticate(email, password string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warnf("User not found for username: %s", email)
		} else {
			s.log.Errorf("Failed to look up user %s: %v", email, err)
		}
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Warnf("Authentication failure for username: %s", email)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ListCourses returns all courses with their owners.
func (s *Service) ListCourses() ([]models.Course, error) {
	return s.store.ListCourses()
}

// GetCourse returns one course with its owner, or ErrCourseNotFound.
func (s *Service) GetCourse(id int64) (*models.Course, error) {
	course, err := s.store.FindCourseByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCourseNotFound
	}
	return course, err
}

// CreateCourse creates a course owned by the given user. Ownership always
// comes from the authenticated identity, never from the request body.
func (s *Service) CreateCourse(owner *models.User, req models.CreateCourseRequest) (*models.Course, error) {
	if msgs := validation.NewCourse(req); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	course := &models.Course{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
		UserID:          owner.ID,
	}

	if err := s.store.CreateCourse(course); err != nil {
		return nil, err
	}

	s.log.Infof("Course %d created by user %d", course.ID, owner.ID)
	return course, nil
}

// UpdateCourse applies a partial update to the course with the given id on
// behalf of the given user. Present fields replace stored values; absent
// fields are untouched.
func (s *Service) UpdateCourse(user *models.User, id int64, req models.UpdateCourseRequest) error {
	course, err := s.store.FindCourseByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCourseNotFound
	}
	if err != nil {
		return err
	}

	if course.UserID != user.ID {
		return ErrNotCourseOwner
	}

	if msgs := validation.CourseUpdate(req); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.EstimatedTime != nil {
		course.EstimatedTime = req.EstimatedTime
	}
	if req.MaterialsNeeded != nil {
		course.MaterialsNeeded = req.MaterialsNeeded
	}

	if err := s.store.UpdateCourse(course); err != nil {
		return err
	}

	s.log.Infof("Course %d updated by user %d", course.ID, user.ID)
	return nil
}

// DeleteCourse removes the course with the given id on behalf of the given
// user.
func (s *Service) DeleteCourse(user *models.User, id int64) error {
	course, err := s.store.FindCourseByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCourseNotFound
	}
	if err != nil {
		return err
	}

	if course.UserID != user.ID {
		return ErrNotCourseOwner
	}

	if err := s.store.DeleteCourse(id); err != nil {
		return err
	}

	s.log.Infof("Course %d deleted by user %d", id, user.ID)
	return nil
}
