package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/coursehub/internal/client/api"
	"github.com/dmitrijs2005/coursehub/internal/client/config"
	"github.com/dmitrijs2005/coursehub/internal/client/events"
	"github.com/dmitrijs2005/coursehub/internal/client/idp"
	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/client/services"
	"github.com/dmitrijs2005/coursehub/internal/client/session"
	"github.com/dmitrijs2005/coursehub/internal/logging"
)

// fakeAuth mimics the auth service: it writes the session and publishes
// the same events the real one does.
type fakeAuth struct {
	sess *session.Store
	bus  *events.Bus

	user *models.Identity

	initOK   bool
	initErr  error
	initHook func()

	loginEmail, loginPass string
	loginErr              error

	regInput services.RegisterInput
	regErr   error

	providerToken string
	providerErr   error

	logoutCalls int
	logoutErr   error
	forceCalls  int
	forceErr    error
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Token(context.Context) (string, error) { return "access", nil }
func (f *fakeAuth) ForceRefresh(context.Context) (string, error) {
	f.forceCalls++
	return "access", f.forceErr
}
func (f *fakeAuth) Initialize(context.Context) (bool, error) {
	if f.initHook != nil {
		f.initHook()
		return f.initOK, f.initErr
	}
	if f.initOK {
		f.sess.SetUser(f.user)
	}
	return f.initOK, f.initErr
}
func (f *fakeAuth) signIn() *models.Identity {
	f.sess.SetUser(f.user)
	f.bus.Publish(events.Event{Type: events.Login, User: f.user})
	return f.user
}
func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.Identity, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.signIn(), nil
}
func (f *fakeAuth) Register(_ context.Context, in services.RegisterInput) (*models.Identity, error) {
	f.regInput = in
	if f.regErr != nil {
		return nil, f.regErr
	}
	return f.signIn(), nil
}
func (f *fakeAuth) LoginWithProvider(_ context.Context, token string) (*models.Identity, error) {
	f.providerToken = token
	if f.providerErr != nil {
		return nil, f.providerErr
	}
	return f.signIn(), nil
}
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	f.sess.Reset()
	f.bus.Publish(events.Event{Type: events.Logout})
	return f.logoutErr
}
func (f *fakeAuth) Refresh(context.Context) (models.TokenPair, error) {
	return models.TokenPair{}, nil
}
func (f *fakeAuth) CurrentUser() *models.Identity { return f.sess.User() }

type fakeUserData struct {
	mu      sync.Mutex
	loads   []*models.Identity
	resets  int
	data    services.UserData
	loadErr error
}

func (f *fakeUserData) Load(_ context.Context, u *models.Identity) (services.UserData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, u)
	return f.data, f.loadErr
}
func (f *fakeUserData) Snapshot() services.UserData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}
func (f *fakeUserData) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.data = services.UserData{}
}

type fakeStudent struct {
	courses   []models.EnrolledCourse
	summary   *models.StudentSummary
	wishlist  []models.WishlistItem
	questions []models.Question
	docs      []models.Document
	err       error

	toggled   int64
	toggleMsg string

	askCourse        int64
	askTitle, askMsg string

	replyCourse       int64
	replyQA, replyMsg string
	replyThread       *models.Question

	pwOld, pwNew, pwConfirm string
	pwMsg                   string
	pwErr                   error
}

func (f *fakeStudent) Courses(context.Context) ([]models.EnrolledCourse, error) {
	return f.courses, f.err
}
func (f *fakeStudent) Summary(context.Context) (*models.StudentSummary, error) {
	return f.summary, f.err
}
func (f *fakeStudent) Wishlist(context.Context) ([]models.WishlistItem, error) {
	return f.wishlist, f.err
}
func (f *fakeStudent) ToggleWishlist(_ context.Context, id int64) (string, error) {
	f.toggled = id
	return f.toggleMsg, f.err
}
func (f *fakeStudent) Questions(context.Context) ([]models.Question, error) {
	return f.questions, f.err
}
func (f *fakeStudent) Ask(_ context.Context, courseID int64, title, msg string) (string, error) {
	f.askCourse, f.askTitle, f.askMsg = courseID, title, msg
	return "Question sent", f.err
}
func (f *fakeStudent) Reply(_ context.Context, courseID int64, qaID, msg string) (*models.Question, error) {
	f.replyCourse, f.replyQA, f.replyMsg = courseID, qaID, msg
	return f.replyThread, f.err
}
func (f *fakeStudent) Documents(context.Context) ([]models.Document, error) {
	return f.docs, f.err
}
func (f *fakeStudent) ChangePassword(_ context.Context, o, n, c string) (string, error) {
	f.pwOld, f.pwNew, f.pwConfirm = o, n, c
	return f.pwMsg, f.pwErr
}

type fakeTeacher struct {
	teacher *models.Teacher
	status  *models.TeacherStatus
	err     error

	registered *api.TeacherRequest
	updated    *api.TeacherRequest
}

func (f *fakeTeacher) Register(_ context.Context, req api.TeacherRequest) (*models.Teacher, error) {
	f.registered = &req
	return f.teacher, f.err
}
func (f *fakeTeacher) Status(context.Context) (*models.TeacherStatus, error) {
	return f.status, f.err
}
func (f *fakeTeacher) Profile(context.Context) (*models.Teacher, error) {
	return f.teacher, f.err
}
func (f *fakeTeacher) UpdateProfile(_ context.Context, req api.TeacherRequest) (*models.Teacher, error) {
	f.updated = &req
	return f.teacher, f.err
}

// fakeSignIn hands token to the exchange function as the provider would.
type fakeSignIn struct {
	token string
	err   error
}

func (f *fakeSignIn) Run(ctx context.Context, exchange idp.ExchangeFunc) error {
	if f.err != nil {
		return f.err
	}
	return exchange(ctx, f.token)
}

type testApp struct {
	*App
	auth     *fakeAuth
	userData *fakeUserData
	student  *fakeStudent
	teacher  *fakeTeacher
	signIn   *fakeSignIn
	sess     *session.Store
	bus      *events.Bus
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	sess := session.NewStore()
	bus := events.NewBus()
	ta := &testApp{
		auth:     &fakeAuth{sess: sess, bus: bus, user: &models.Identity{UserID: 7, Username: "alice", Email: "alice@example.org", FullName: "Alice"}},
		userData: &fakeUserData{},
		student:  &fakeStudent{},
		teacher:  &fakeTeacher{},
		signIn:   &fakeSignIn{},
		sess:     sess,
		bus:      bus,
	}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	ta.App = NewApp(Deps{
		Config:   cfg,
		Auth:     ta.auth,
		UserData: ta.userData,
		Student:  ta.student,
		Teacher:  ta.teacher,
		SignIn:   ta.signIn,
		Session:  sess,
		Bus:      bus,
		Log:      logging.Discard(),
		In:       strings.NewReader(input),
		Out:      io.Discard,
	})
	return ta
}

// signInAs puts the app in the signed-in state the way a login would.
func (ta *testApp) signInAs(t *testing.T) {
	t.Helper()
	t.Cleanup(ta.App.subscribe())
	ta.auth.signIn()
}

// captureOutput redirects printlnFn into a buffer for the test's duration.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&buf, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &buf
}

// stubInputs replaces the prompt helpers with canned answers, consumed in
// order.
func stubInputs(t *testing.T, texts []string, secrets []string) {
	t.Helper()
	origST, origGS, origML := getSimpleText, getSecret, getMultiline
	next := func(q *[]string) (string, error) {
		if len(*q) == 0 {
			return "", io.EOF
		}
		v := (*q)[0]
		*q = (*q)[1:]
		return v, nil
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(&texts) }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(&texts) }
	getSecret = func(_ io.Writer, _ string) ([]byte, error) {
		v, err := next(&secrets)
		return []byte(v), err
	}
	t.Cleanup(func() {
		getSimpleText, getSecret, getMultiline = origST, origGS, origML
	})
}
