package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/client/api"
	"github.com/dmitrijs2005/coursehub/internal/client/config"
	"github.com/dmitrijs2005/coursehub/internal/client/events"
	"github.com/dmitrijs2005/coursehub/internal/client/idp"
	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/client/services"
	"github.com/dmitrijs2005/coursehub/internal/client/session"
	"github.com/dmitrijs2005/coursehub/internal/logging"
)

// View is the screen the REPL is currently on.
type View string

const defaultRequestTimeout = 15 * time.Second

const (
	ViewLogin View = "login"
	ViewHome  View = "home"
)

type userDataService interface {
	Load(ctx context.Context, user *models.Identity) (services.UserData, error)
	Snapshot() services.UserData
	Reset()
}

type studentService interface {
	Courses(ctx context.Context) ([]models.EnrolledCourse, error)
	Summary(ctx context.Context) (*models.StudentSummary, error)
	Wishlist(ctx context.Context) ([]models.WishlistItem, error)
	ToggleWishlist(ctx context.Context, courseID int64) (string, error)
	Questions(ctx context.Context) ([]models.Question, error)
	Ask(ctx context.Context, courseID int64, title, message string) (string, error)
	Reply(ctx context.Context, courseID int64, qaID, message string) (*models.Question, error)
	Documents(ctx context.Context) ([]models.Document, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) (string, error)
}

type teacherService interface {
	Register(ctx context.Context, req api.TeacherRequest) (*models.Teacher, error)
	Status(ctx context.Context) (*models.TeacherStatus, error)
	Profile(ctx context.Context) (*models.Teacher, error)
	UpdateProfile(ctx context.Context, req api.TeacherRequest) (*models.Teacher, error)
}

type signInFlow interface {
	Run(ctx context.Context, exchange idp.ExchangeFunc) error
}

// Deps are the collaborators an App is built from.
type Deps struct {
	Config   *config.Config
	Auth     services.AuthService
	UserData userDataService
	Student  studentService
	Teacher  teacherService
	SignIn   signInFlow
	Session  *session.Store
	Bus      *events.Bus
	Log      logging.Logger

	// In and Out default to the process stdin and stdout.
	In  io.Reader
	Out io.Writer
}

type App struct {
	config   *config.Config
	auth     services.AuthService
	userData userDataService
	student  studentService
	teacher  teacherService
	signIn   signInFlow
	session  *session.Store
	bus      *events.Bus
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer

	mu   sync.Mutex
	view View
}

func NewApp(d Deps) *App {
	in, out := d.In, d.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	log := d.Log
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		config:   d.Config,
		auth:     d.Auth,
		userData: d.UserData,
		student:  d.Student,
		teacher:  d.Teacher,
		signIn:   d.SignIn,
		session:  d.Session,
		bus:      d.Bus,
		log:      log.With("component", "cli"),
		reader:   bufio.NewReader(in),
		out:      out,
		view:     ViewLogin,
	}
}

// Run restores the stored session and serves the REPL until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.subscribe()()

	printlnFn("Welcome to CourseHub CLI (type 'help' for commands)")

	ok, err := a.auth.Initialize(ctx)
	if err != nil {
		a.report(err)
	}
	user := a.auth.CurrentUser()
	if ok && user != nil {
		a.setView(ViewHome)
		a.notify(noticeInfo, "Signed in as "+displayName(user))
	}
	a.reloadUserData(ctx, user)

	runREPL(ctx, a, a.status, a.reader)
}

// subscribe hooks the app to auth events and session changes and returns
// the function that undoes it.
func (a *App) subscribe() func() {
	offBus := a.bus.Subscribe(a.onAuthEvent)
	offSession := a.session.Subscribe(func(st session.State) {
		if st.Loading {
			printlnFn(dimStyle.Render("Loading..."))
		}
	})
	return func() {
		offBus()
		offSession()
	}
}

func (a *App) onAuthEvent(e events.Event) {
	switch e.Type {
	case events.Login:
		a.setView(ViewHome)
		a.reloadUserData(context.Background(), e.User)
	case events.Logout:
		a.setView(ViewLogin)
		a.userData.Reset()
	case events.Unauthorized:
		a.setView(ViewLogin)
		a.userData.Reset()
		a.notify(noticeWarning, "Your session has expired, please log in again")
	}
}

// reloadUserData refreshes the cart, profile and wishlist snapshot. Partial
// failures are logged by the loader; only the count is surfaced here.
func (a *App) reloadUserData(ctx context.Context, user *models.Identity) {
	ctx, cancel := context.WithTimeout(ctx, a.requestTimeout())
	defer cancel()
	if _, err := a.userData.Load(ctx, user); err != nil {
		a.log.Warn(ctx, "user data partially loaded", "error", err)
	}
}

func (a *App) requestTimeout() time.Duration {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return defaultRequestTimeout
	}
	return a.config.RequestTimeout
}

func (a *App) setView(v View) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = v
}

func (a *App) currentView() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) isLoggedIn() bool {
	return a.session.Get().Authenticated()
}

// status renders the prompt suffix: the user and cart size when signed in.
func (a *App) status() string {
	u := a.session.User()
	if u == nil {
		return "(" + string(a.currentView()) + ")"
	}
	return fmt.Sprintf("(%s, cart %d)", u.Username, a.userData.Snapshot().CartCount())
}

func displayName(u *models.Identity) string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
