package validation

import (
	"regexp"

	"github.com/courseapp/course-service/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Field rule messages. Clients receive these verbatim in the errors list.
const (
	MsgFirstNameRequired   = "First name is a required field"
	MsgLastNameRequired    = "Last name is a required field"
	MsgEmailRequired       = "eMail is required"
	MsgEmailInvalid        = "Must be a valid email address"
	MsgEmailTaken          = "This email address is already associated with another user."
	MsgPasswordRequired    = "Password is required"
	MsgTitleRequired       = "Title is a required field"
	MsgDescriptionRequired = "Description is a required field"
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// NewUser checks the field rules for user creation and returns one message
// per violated rule. Uniqueness is not checked here; the store's unique
// constraint decides that.
func NewUser(req models.CreateUserRequest) []string {
	var errs []string
	if req.FirstName == "" {
		errs = append(errs, MsgFirstNameRequired)
	}
	if req.LastName == "" {
		errs = append(errs, MsgLastNameRequired)
	}
	if req.EmailAddress == "" {
		errs = append(errs, MsgEmailRequired)
	} else if !ValidEmail(req.EmailAddress) {
		errs = append(errs, MsgEmailInvalid)
	}
	if req.Password == "" {
		errs = append(errs, MsgPasswordRequired)
	}
	return errs
}

// NewCourse checks the field rules for course creation.
func NewCourse(req models.CreateCourseRequest) []string {
	var errs []string
	if req.Title == "" {
		errs = append(errs, MsgTitleRequired)
	}
	if req.Description == "" {
		errs = append(errs, MsgDescriptionRequired)
	}
	return errs
}

// CourseUpdate checks the field rules for a partial course update. A nil
// field is absent and passes; a present field must satisfy its rule.
func CourseUpdate(req models.UpdateCourseRequest) []string {
	var errs []string
	if req.Title != nil && *req.Title == "" {
		errs = append(errs, MsgTitleRequired)
	}
	if req.Description != nil && *req.Description == "" {
		errs = append(errs, MsgDescriptionRequired)
	}
	return errs
}
