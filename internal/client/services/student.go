package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/coursehub/internal/client/api"
	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/client/session"
)

const minPasswordLength = 8

var errNotSignedIn = newUserError("Please log in first")

// StudentService wraps the student endpoints for the signed-in user.
type StudentService struct {
	client  api.Client
	session *session.Store
}

func NewStudentService(client api.Client, sess *session.Store) *StudentService {
	return &StudentService{client: client, session: sess}
}

func (s *StudentService) user() (*models.Identity, error) {
	u := s.session.User()
	if u == nil {
		return nil, errNotSignedIn
	}
	return u, nil
}

func (s *StudentService) Courses(ctx context.Context) ([]models.EnrolledCourse, error) {
	u, err := s.user()
	if err != nil {
		return nil, err
	}
	return s.client.StudentCourses(ctx, u.UserID)
}

func (s *StudentService) Summary(ctx context.Context) (*models.StudentSummary, error) {
	u, err := s.user()
	if err != nil {
		return nil, err
	}
	return s.client.StudentSummary(ctx, u.UserID)
}

func (s *StudentService) Wishlist(ctx context.Context) ([]models.WishlistItem, error) {
	u, err := s.user()
	if err != nil {
		return nil, err
	}
	return s.client.Wishlist(ctx, u.UserID)
}

// ToggleWishlist adds or removes a course and returns the backend's
// message.
func (s *StudentService) ToggleWishlist(ctx context.Context, courseID int64) (string, error) {
	u, err := s.user()
	if err != nil {
		return "", err
	}
	n, err := s.client.ToggleWishlist(ctx, u.UserID, courseID)
	if err != nil {
		return "", userErrorFrom(err, genericFailure)
	}
	return n.Message, nil
}

func (s *StudentService) Questions(ctx context.Context) ([]models.Question, error) {
	u, err := s.user()
	if err != nil {
		return nil, err
	}
	return s.client.ListQuestions(ctx, u.UserID)
}

// Ask starts a new Q&A thread on a course.
func (s *StudentService) Ask(ctx context.Context, courseID int64, title, message string) (string, error) {
	u, err := s.user()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(message) == "" {
		return "", newUserError("Title and message are required")
	}
	n, err := s.client.AskQuestion(ctx, api.AskQuestionRequest{
		UserID:   u.UserID,
		CourseID: courseID,
		Title:    title,
		Message:  message,
	})
	if err != nil {
		return "", userErrorFrom(err, genericFailure)
	}
	return n.Message, nil
}

// Reply posts a message to an existing thread and returns the thread.
func (s *StudentService) Reply(ctx context.Context, courseID int64, qaID, message string) (*models.Question, error) {
	u, err := s.user()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, newUserError("Message is required")
	}
	q, err := s.client.SendQAMessage(ctx, api.QAMessageRequest{
		UserID:   u.UserID,
		CourseID: courseID,
		QAID:     qaID,
		Message:  message,
	})
	if err != nil {
		return nil, userErrorFrom(err, genericFailure)
	}
	return q, nil
}

func (s *StudentService) Documents(ctx context.Context) ([]models.Document, error) {
	u, err := s.user()
	if err != nil {
		return nil, err
	}
	return s.client.Documents(ctx, u.UserID)
}

// ChangePassword validates the new password locally and submits it. A
// backend answer other than success comes back as a *UserError carrying the
// backend's message. On success the caller is expected to sign out.
func (s *StudentService) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) (string, error) {
	u, err := s.user()
	if err != nil {
		return "", err
	}
	switch {
	case newPassword == "":
		return "", newUserError("New password is required")
	case len(newPassword) < minPasswordLength:
		return "", newUserError("Password must be at least 8 characters")
	case newPassword != confirm:
		return "", newUserError("Password does not match")
	}

	n, err := s.client.ChangePassword(ctx, api.ChangePasswordRequest{
		UserID:      u.UserID,
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if err != nil {
		return "", userErrorFrom(err, "An error occurred while changing the password.")
	}
	if !n.Succeeded() {
		return "", newUserError(n.Message)
	}
	return n.Message, nil
}
