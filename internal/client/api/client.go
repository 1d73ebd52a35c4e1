package api

import (
	"context"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
)

// TokenSource supplies bearer tokens for authenticated requests.
//
// Token returns a currently valid access token, refreshing first when the
// stored one is about to expire. ForceRefresh refreshes unconditionally and
// is used after the backend rejected a token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	ForceRefresh(ctx context.Context) (string, error)
}

// Client is the set of backend operations used by the CourseHub client.
type Client interface {
	ObtainToken(ctx context.Context, email, password string) (models.TokenPair, error)
	RefreshToken(ctx context.Context, refresh string) (models.TokenPair, error)
	Register(ctx context.Context, req RegisterRequest) error
	ProviderLogin(ctx context.Context, providerToken string) (models.TokenPair, error)

	Profile(ctx context.Context, userID int64) (*models.Profile, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) (*Notice, error)

	CartList(ctx context.Context, cartID string) ([]models.CartItem, error)
	Wishlist(ctx context.Context, userID int64) ([]models.WishlistItem, error)
	ToggleWishlist(ctx context.Context, userID, courseID int64) (*Notice, error)
	StudentCourses(ctx context.Context, userID int64) ([]models.EnrolledCourse, error)
	StudentSummary(ctx context.Context, userID int64) (*models.StudentSummary, error)
	ListQuestions(ctx context.Context, userID int64) ([]models.Question, error)
	AskQuestion(ctx context.Context, req AskQuestionRequest) (*Notice, error)
	SendQAMessage(ctx context.Context, req QAMessageRequest) (*models.Question, error)
	Documents(ctx context.Context, userID int64) ([]models.Document, error)

	RegisterTeacher(ctx context.Context, req TeacherRequest) (*models.Teacher, error)
	TeacherStatus(ctx context.Context) (*models.TeacherStatus, error)
	TeacherProfile(ctx context.Context) (*models.Teacher, error)
	UpdateTeacherProfile(ctx context.Context, req TeacherRequest) (*models.Teacher, error)
}

type RegisterRequest struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type ChangePasswordRequest struct {
	UserID      int64  `json:"user_id"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type AskQuestionRequest struct {
	UserID   int64  `json:"user_id"`
	CourseID int64  `json:"course_id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

type QAMessageRequest struct {
	UserID   int64  `json:"user_id"`
	CourseID int64  `json:"course_id"`
	QAID     string `json:"qa_id"`
	Message  string `json:"message"`
}

// TeacherRequest is the body of teacher registration and profile updates.
// Empty fields are omitted so PATCH leaves them untouched.
type TeacherRequest struct {
	FullName string `json:"full_name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	About    string `json:"about,omitempty"`
	Country  string `json:"country,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
}

// Notice is the {message, icon} acknowledgement several endpoints return.
// Icon is "success", "warning" or "error".
type Notice struct {
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

// Succeeded reports whether the backend flagged the notice as a success.
// Endpoints that omit the icon are treated as successful.
func (n *Notice) Succeeded() bool {
	return n != nil && (n.Icon == "" || n.Icon == "success")
}
