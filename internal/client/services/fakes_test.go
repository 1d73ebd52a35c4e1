package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/coursehub/internal/client/api"
	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/common"
)

// fakeClient implements api.Client for unit tests. Each operation delegates
// to its func field; a nil field returns zero values.
type fakeClient struct {
	mu sync.Mutex

	ObtainTokenFn   func(email, password string) (models.TokenPair, error)
	RefreshTokenFn  func(refresh string) (models.TokenPair, error)
	RegisterFn      func(req api.RegisterRequest) error
	ProviderLoginFn func(token string) (models.TokenPair, error)

	ProfileFn        func(userID int64) (*models.Profile, error)
	ChangePasswordFn func(req api.ChangePasswordRequest) (*api.Notice, error)
	CartListFn       func(cartID string) ([]models.CartItem, error)
	WishlistFn       func(userID int64) ([]models.WishlistItem, error)
	ToggleWishlistFn func(userID, courseID int64) (*api.Notice, error)
	AskQuestionFn    func(req api.AskQuestionRequest) (*api.Notice, error)
	SendQAMessageFn  func(req api.QAMessageRequest) (*models.Question, error)

	RegisterTeacherFn      func(req api.TeacherRequest) (*models.Teacher, error)
	UpdateTeacherProfileFn func(req api.TeacherRequest) (*models.Teacher, error)

	calls map[string]int
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeClient) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) ObtainToken(_ context.Context, email, password string) (models.TokenPair, error) {
	f.record("ObtainToken")
	if f.ObtainTokenFn == nil {
		return models.TokenPair{}, nil
	}
	return f.ObtainTokenFn(email, password)
}

func (f *fakeClient) RefreshToken(_ context.Context, refresh string) (models.TokenPair, error) {
	f.record("RefreshToken")
	if f.RefreshTokenFn == nil {
		return models.TokenPair{}, nil
	}
	return f.RefreshTokenFn(refresh)
}

func (f *fakeClient) Register(_ context.Context, req api.RegisterRequest) error {
	f.record("Register")
	if f.RegisterFn == nil {
		return nil
	}
	return f.RegisterFn(req)
}

func (f *fakeClient) ProviderLogin(_ context.Context, token string) (models.TokenPair, error) {
	f.record("ProviderLogin")
	if f.ProviderLoginFn == nil {
		return models.TokenPair{}, nil
	}
	return f.ProviderLoginFn(token)
}

func (f *fakeClient) Profile(_ context.Context, userID int64) (*models.Profile, error) {
	f.record("Profile")
	if f.ProfileFn == nil {
		return &models.Profile{}, nil
	}
	return f.ProfileFn(userID)
}

func (f *fakeClient) ChangePassword(_ context.Context, req api.ChangePasswordRequest) (*api.Notice, error) {
	f.record("ChangePassword")
	if f.ChangePasswordFn == nil {
		return &api.Notice{Icon: "success"}, nil
	}
	return f.ChangePasswordFn(req)
}

func (f *fakeClient) CartList(_ context.Context, cartID string) ([]models.CartItem, error) {
	f.record("CartList")
	if f.CartListFn == nil {
		return nil, nil
	}
	return f.CartListFn(cartID)
}

func (f *fakeClient) Wishlist(_ context.Context, userID int64) ([]models.WishlistItem, error) {
	f.record("Wishlist")
	if f.WishlistFn == nil {
		return nil, nil
	}
	return f.WishlistFn(userID)
}

func (f *fakeClient) ToggleWishlist(_ context.Context, userID, courseID int64) (*api.Notice, error) {
	f.record("ToggleWishlist")
	if f.ToggleWishlistFn == nil {
		return &api.Notice{}, nil
	}
	return f.ToggleWishlistFn(userID, courseID)
}

func (f *fakeClient) StudentCourses(context.Context, int64) ([]models.EnrolledCourse, error) {
	f.record("StudentCourses")
	return nil, nil
}

func (f *fakeClient) StudentSummary(context.Context, int64) (*models.StudentSummary, error) {
	f.record("StudentSummary")
	return &models.StudentSummary{}, nil
}

func (f *fakeClient) ListQuestions(context.Context, int64) ([]models.Question, error) {
	f.record("ListQuestions")
	return nil, nil
}

func (f *fakeClient) AskQuestion(_ context.Context, req api.AskQuestionRequest) (*api.Notice, error) {
	f.record("AskQuestion")
	if f.AskQuestionFn == nil {
		return &api.Notice{}, nil
	}
	return f.AskQuestionFn(req)
}

func (f *fakeClient) SendQAMessage(_ context.Context, req api.QAMessageRequest) (*models.Question, error) {
	f.record("SendQAMessage")
	if f.SendQAMessageFn == nil {
		return &models.Question{}, nil
	}
	return f.SendQAMessageFn(req)
}

func (f *fakeClient) Documents(context.Context, int64) ([]models.Document, error) {
	f.record("Documents")
	return nil, nil
}

func (f *fakeClient) RegisterTeacher(_ context.Context, req api.TeacherRequest) (*models.Teacher, error) {
	f.record("RegisterTeacher")
	if f.RegisterTeacherFn == nil {
		return &models.Teacher{}, nil
	}
	return f.RegisterTeacherFn(req)
}

func (f *fakeClient) TeacherStatus(context.Context) (*models.TeacherStatus, error) {
	f.record("TeacherStatus")
	return &models.TeacherStatus{}, nil
}

func (f *fakeClient) TeacherProfile(context.Context) (*models.Teacher, error) {
	f.record("TeacherProfile")
	return &models.Teacher{}, nil
}

func (f *fakeClient) UpdateTeacherProfile(_ context.Context, req api.TeacherRequest) (*models.Teacher, error) {
	f.record("UpdateTeacherProfile")
	if f.UpdateTeacherProfileFn == nil {
		return &models.Teacher{}, nil
	}
	return f.UpdateTeacherProfileFn(req)
}

// memCreds is an in-memory CredentialStore.
type memCreds struct {
	mu       sync.Mutex
	pair     models.TokenPair
	saves    int
	SaveErr  error
	ClearErr error
}

func (m *memCreds) Save(_ context.Context, pair models.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.pair = pair
	m.saves++
	return nil
}

func (m *memCreds) Load(context.Context) (models.TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.pair.Complete() {
		return m.pair, common.ErrNoCredentials
	}
	return m.pair, nil
}

func (m *memCreds) RefreshToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pair.Refresh, nil
}

func (m *memCreds) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = models.TokenPair{}
	return m.ClearErr
}

func (m *memCreds) Pair() models.TokenPair {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pair
}
