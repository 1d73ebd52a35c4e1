package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/coursehub/internal/client/api"
	"github.com/dmitrijs2005/coursehub/internal/client/services"
	"github.com/dmitrijs2005/coursehub/internal/common"
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeWarning
	noticeError
)

var (
	noticeStyles = map[noticeLevel]lipgloss.Style{
		noticeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		noticeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		noticeWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		noticeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
	noticeIcons = map[noticeLevel]string{
		noticeInfo:    "i",
		noticeSuccess: "✓",
		noticeWarning: "!",
		noticeError:   "✗",
	}

	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

func renderNotice(level noticeLevel, msg string) string {
	return noticeStyles[level].Render(noticeIcons[level] + " " + msg)
}

func (a *App) notify(level noticeLevel, msg string) {
	printlnFn(renderNotice(level, msg))
}

func title(s string) string {
	return titleStyle.Render(s)
}

// report prints err as a notification. Failures the user can act on keep
// their message; everything else is logged and shown generically.
func (a *App) report(err error) {
	var userErr *services.UserError
	switch {
	case errors.As(err, &userErr):
		a.notify(noticeError, userErr.Message)
	case errors.Is(err, common.ErrRefreshFailed):
		// the unauthorized event has already told the user
		a.log.Debug(context.Background(), "command aborted by failed refresh", "error", err)
	case errors.Is(err, api.ErrUnauthorized):
		a.notify(noticeWarning, "Not authorized, please log in again")
	case errors.Is(err, api.ErrUnavailable):
		a.notify(noticeError, "Server is unavailable, try again later")
	case errors.Is(err, common.ErrCallbackTimeout):
		a.notify(noticeWarning, "Sign-in timed out, please try again")
	case errors.Is(err, common.ErrStateMismatch):
		a.notify(noticeError, "Sign-in was rejected, please try again")
	case errors.Is(err, context.Canceled):
		a.notify(noticeInfo, "Cancelled")
	default:
		a.log.Error(context.Background(), "command failed", "error", err)
		a.notify(noticeError, "Something went wrong")
	}
}
