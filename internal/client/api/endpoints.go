package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
)

// ObtainToken exchanges email and password for a credential pair.
func (c *HTTPClient) ObtainToken(ctx context.Context, email, password string) (models.TokenPair, error) {
	var pair models.TokenPair
	body := map[string]string{"email": email, "password": password}
	if err := c.doRequest(ctx, http.MethodPost, "user/token/", body, &pair, ""); err != nil {
		return models.TokenPair{}, fmt.Errorf("client.ObtainToken: %w", err)
	}
	return pair, nil
}

// RefreshToken rotates the pair. When the backend does not rotate the
// refresh token, the presented one is kept.
func (c *HTTPClient) RefreshToken(ctx context.Context, refresh string) (models.TokenPair, error) {
	var pair models.TokenPair
	body := map[string]string{"refresh": refresh}
	if err := c.doRequest(ctx, http.MethodPost, "user/token/refresh/", body, &pair, ""); err != nil {
		return models.TokenPair{}, fmt.Errorf("client.RefreshToken: %w", err)
	}
	if pair.Refresh == "" {
		pair.Refresh = refresh
	}
	return pair, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "user/register/", req, nil, ""); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// ProviderLogin trades an identity-provider session token for a backend
// credential pair.
func (c *HTTPClient) ProviderLogin(ctx context.Context, providerToken string) (models.TokenPair, error) {
	var pair models.TokenPair
	if err := c.doRequest(ctx, http.MethodPost, "clerk/login/", nil, &pair, providerToken); err != nil {
		return models.TokenPair{}, fmt.Errorf("client.ProviderLogin: %w", err)
	}
	return pair, nil
}

func (c *HTTPClient) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	var p models.Profile
	if err := c.get(ctx, "user/profile/"+idPath(userID), &p); err != nil {
		return nil, fmt.Errorf("client.Profile: %w", err)
	}
	return &p, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req ChangePasswordRequest) (*Notice, error) {
	var n Notice
	if err := c.post(ctx, "user/change-password/", req, &n); err != nil {
		return nil, fmt.Errorf("client.ChangePassword: %w", err)
	}
	return &n, nil
}

func (c *HTTPClient) CartList(ctx context.Context, cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.get(ctx, "course/cart-list/"+url.PathEscape(cartID)+"/", &items); err != nil {
		return nil, fmt.Errorf("client.CartList: %w", err)
	}
	return items, nil
}

func (c *HTTPClient) Wishlist(ctx context.Context, userID int64) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := c.get(ctx, "student/wishlist/"+idPath(userID), &items); err != nil {
		return nil, fmt.Errorf("client.Wishlist: %w", err)
	}
	return items, nil
}

// ToggleWishlist adds the course to the wishlist, or removes it when it is
// already there.
func (c *HTTPClient) ToggleWishlist(ctx context.Context, userID, courseID int64) (*Notice, error) {
	var n Notice
	body := map[string]int64{"user_id": userID, "course_id": courseID}
	if err := c.post(ctx, "student/wishlist/"+idPath(userID), body, &n); err != nil {
		return nil, fmt.Errorf("client.ToggleWishlist: %w", err)
	}
	return &n, nil
}

func (c *HTTPClient) StudentCourses(ctx context.Context, userID int64) ([]models.EnrolledCourse, error) {
	var courses []models.EnrolledCourse
	if err := c.get(ctx, "student/course-list/"+idPath(userID), &courses); err != nil {
		return nil, fmt.Errorf("client.StudentCourses: %w", err)
	}
	return courses, nil
}

// StudentSummary returns the dashboard counters. The backend wraps them in
// a one-element list.
func (c *HTTPClient) StudentSummary(ctx context.Context, userID int64) (*models.StudentSummary, error) {
	var list []models.StudentSummary
	if err := c.get(ctx, "student/summary/"+idPath(userID), &list); err != nil {
		return nil, fmt.Errorf("client.StudentSummary: %w", err)
	}
	if len(list) == 0 {
		return &models.StudentSummary{}, nil
	}
	return &list[0], nil
}

func (c *HTTPClient) ListQuestions(ctx context.Context, userID int64) ([]models.Question, error) {
	var qs []models.Question
	if err := c.get(ctx, "student/question-answer-list-create/"+idPath(userID), &qs); err != nil {
		return nil, fmt.Errorf("client.ListQuestions: %w", err)
	}
	return qs, nil
}

func (c *HTTPClient) AskQuestion(ctx context.Context, req AskQuestionRequest) (*Notice, error) {
	var n Notice
	if err := c.post(ctx, "student/question-answer-list-create/"+idPath(req.UserID), req, &n); err != nil {
		return nil, fmt.Errorf("client.AskQuestion: %w", err)
	}
	return &n, nil
}

// SendQAMessage appends a message to a thread and returns the updated
// thread.
func (c *HTTPClient) SendQAMessage(ctx context.Context, req QAMessageRequest) (*models.Question, error) {
	var resp struct {
		Question models.Question `json:"question"`
	}
	if err := c.post(ctx, "student/question-answer-message-create/", req, &resp); err != nil {
		return nil, fmt.Errorf("client.SendQAMessage: %w", err)
	}
	return &resp.Question, nil
}

func (c *HTTPClient) Documents(ctx context.Context, userID int64) ([]models.Document, error) {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))

	var docs []models.Document
	if err := c.get(ctx, "ai-document-list/?"+params.Encode(), &docs); err != nil {
		return nil, fmt.Errorf("client.Documents: %w", err)
	}
	return docs, nil
}

func (c *HTTPClient) RegisterTeacher(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	var resp struct {
		Teacher models.Teacher `json:"teacher"`
	}
	if err := c.post(ctx, "teacher/register/", req, &resp); err != nil {
		return nil, fmt.Errorf("client.RegisterTeacher: %w", err)
	}
	return &resp.Teacher, nil
}

func (c *HTTPClient) TeacherStatus(ctx context.Context) (*models.TeacherStatus, error) {
	var st models.TeacherStatus
	if err := c.get(ctx, "teacher/status/", &st); err != nil {
		return nil, fmt.Errorf("client.TeacherStatus: %w", err)
	}
	return &st, nil
}

func (c *HTTPClient) TeacherProfile(ctx context.Context) (*models.Teacher, error) {
	var t models.Teacher
	if err := c.get(ctx, "teacher/profile/", &t); err != nil {
		return nil, fmt.Errorf("client.TeacherProfile: %w", err)
	}
	return &t, nil
}

func (c *HTTPClient) UpdateTeacherProfile(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	var resp struct {
		Teacher models.Teacher `json:"teacher"`
	}
	if err := c.call(ctx, http.MethodPatch, "teacher/profile/", req, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateTeacherProfile: %w", err)
	}
	return &resp.Teacher, nil
}

func idPath(id int64) string {
	return strconv.FormatInt(id, 10) + "/"
}
