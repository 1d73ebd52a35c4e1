package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/coursehub/internal/client/api"
	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/client/session"
)

// TeacherService wraps the instructor endpoints.
type TeacherService struct {
	client  api.Client
	session *session.Store
}

func NewTeacherService(client api.Client, sess *session.Store) *TeacherService {
	return &TeacherService{client: client, session: sess}
}

// Register creates an instructor profile for the signed-in user. A token
// refresh keeps the old claims, so teacher_id only shows up in the identity
// after the user signs in again.
func (s *TeacherService) Register(ctx context.Context, req api.TeacherRequest) (*models.Teacher, error) {
	if s.session.User() == nil {
		return nil, errNotSignedIn
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, newUserError("Full name is required")
	}
	t, err := s.client.RegisterTeacher(ctx, req)
	if err != nil {
		return nil, fieldUserError(err, genericFailure, "full_name", "bio", "about", "country")
	}
	return t, nil
}

func (s *TeacherService) Status(ctx context.Context) (*models.TeacherStatus, error) {
	if s.session.User() == nil {
		return nil, errNotSignedIn
	}
	return s.client.TeacherStatus(ctx)
}

func (s *TeacherService) Profile(ctx context.Context) (*models.Teacher, error) {
	if s.session.User() == nil {
		return nil, errNotSignedIn
	}
	t, err := s.client.TeacherProfile(ctx)
	if err != nil {
		return nil, userErrorFrom(err, genericFailure)
	}
	return t, nil
}

// UpdateProfile sends only the non-empty fields of req.
func (s *TeacherService) UpdateProfile(ctx context.Context, req api.TeacherRequest) (*models.Teacher, error) {
	if s.session.User() == nil {
		return nil, errNotSignedIn
	}
	if req == (api.TeacherRequest{}) {
		return nil, newUserError("Nothing to update")
	}
	t, err := s.client.UpdateTeacherProfile(ctx, req)
	if err != nil {
		return nil, fieldUserError(err, genericFailure, "full_name", "bio", "about", "country")
	}
	return t, nil
}
