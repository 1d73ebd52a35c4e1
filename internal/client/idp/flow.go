// Package idp signs a user in through the hosted identity-provider page.
//
// Flow starts an ephemeral localhost listener, opens the provider's sign-in
// page with a callback URL and a CSRF state, and waits for the provider to
// redirect back with a session token. The token is handed to an exchange
// function that trades it for backend credentials. Any failure on the
// callback redirects the browser to the local /login page with an error
// query parameter.
package idp

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
)

// ExchangeFunc trades a provider session token for a signed-in session.
type ExchangeFunc func(ctx context.Context, providerToken string) error

const (
	callbackPath = "/callback"
	loginPath    = "/login"

	// redirectGrace bounds how long the listener stays up after a failure so
	// the browser can follow the redirect to the login page.
	redirectGrace = 2 * time.Second
)

const successHTML = `<!doctype html><html><body><h2>Signed in to CourseHub</h2><p>You can close this window and return to the terminal.</p></body></html>`

type Flow struct {
	providerURL string
	timeout     time.Duration
	listenAddr  string
	log         logging.Logger

	open  func(url string) error
	onURL func(url string)
}

// NewFlow returns a Flow for the provider at providerURL that gives up
// after timeout.
func NewFlow(providerURL string, timeout time.Duration, log logging.Logger) *Flow {
	return &Flow{
		providerURL: strings.TrimRight(providerURL, "/"),
		timeout:     timeout,
		listenAddr:  "127.0.0.1:0",
		log:         log.With("component", "idp"),
		open:        OpenBrowser,
	}
}

// WithBrowser replaces the function that opens the sign-in page.
func (f *Flow) WithBrowser(open func(url string) error) *Flow {
	f.open = open
	return f
}

// OnSignInURL registers fn to receive the sign-in URL, e.g. to print it
// for users whose browser could not be opened.
func (f *Flow) OnSignInURL(fn func(url string)) *Flow {
	f.onURL = fn
	return f
}

// Run performs one sign-in attempt. It returns nil once exchange
// succeeded, common.ErrCallbackTimeout when no callback arrived in time,
// and otherwise the callback or exchange failure. There is no retry.
func (f *Flow) Run(ctx context.Context, exchange ExchangeFunc) error {
	listener, err := net.Listen("tcp", f.listenAddr)
	if err != nil {
		return fmt.Errorf("start callback listener: %w", err)
	}

	state := uuid.NewString()
	port := listener.Addr().(*net.TCPAddr).Port
	callbackURL := "http://127.0.0.1:" + strconv.Itoa(port) + callbackPath

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	result := make(chan error, 1)
	loginServed := make(chan struct{})
	var loginOnce, resultOnce sync.Once
	finish := func(err error) {
		resultOnce.Do(func() { result <- err })
	}

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			f.fail(w, r, common.ErrStateMismatch, finish)
			return
		}
		if msg := q.Get("error"); msg != "" {
			f.fail(w, r, fmt.Errorf("identity provider: %s", msg), finish)
			return
		}
		token := q.Get("token")
		if token == "" {
			f.fail(w, r, errors.New("callback received without token"), finish)
			return
		}
		if err := exchange(ctx, token); err != nil {
			f.fail(w, r, err, finish)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, successHTML)
		finish(nil)
	})
	mux.HandleFunc(loginPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w, `<!doctype html><html><body><h2>Sign-in failed</h2><p>%s</p><p>Return to the terminal to try again.</p></body></html>`,
			html.EscapeString(r.URL.Query().Get("error")))
		loginOnce.Do(func() { close(loginServed) })
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if srvErr := srv.Serve(listener); srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			finish(fmt.Errorf("callback server: %w", srvErr))
		}
	}()
	defer func() {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutCancel()
		_ = srv.Shutdown(shutCtx)
	}()

	params := url.Values{}
	params.Set("redirect_url", callbackURL)
	params.Set("state", state)
	signInURL := f.providerURL + "/sign-in?" + params.Encode()

	if f.onURL != nil {
		f.onURL(signInURL)
	}
	if err := f.open(signInURL); err != nil {
		f.log.Warn(ctx, "could not open browser", "error", err)
	}

	select {
	case err := <-result:
		if err != nil {
			select {
			case <-loginServed:
			case <-time.After(redirectGrace):
			}
		}
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return common.ErrCallbackTimeout
		}
		return ctx.Err()
	}
}

// fail redirects the browser to the login page with the error and reports
// err as the flow result.
func (f *Flow) fail(w http.ResponseWriter, r *http.Request, err error, finish func(error)) {
	f.log.Warn(r.Context(), "identity provider sign-in failed", "error", err)
	http.Redirect(w, r, loginPath+"?error="+url.QueryEscape(err.Error()), http.StatusFound)
	finish(err)
}
