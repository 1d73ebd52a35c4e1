package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	report(err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	SSO(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Dashboard(ctx context.Context) error
	Courses(ctx context.Context) error
	Summary(ctx context.Context) error
	Wishlist(ctx context.Context) error
	ToggleWishlist(ctx context.Context, courseID string) error
	Cart(ctx context.Context) error
	Questions(ctx context.Context) error
	Ask(ctx context.Context) error
	Reply(ctx context.Context) error
	Documents(ctx context.Context) error
	ChangePassword(ctx context.Context) error

	TeacherRegister(ctx context.Context) error
	TeacherStatus(ctx context.Context) error
	TeacherProfile(ctx context.Context, edit bool) error
}

const (
	anonymousHelp = "Available commands: register, login, sso, cart, exit"
	signedInHelp  = "Available commands: whoami, dashboard, courses, summary, wishlist, wish <course_id>, " +
		"cart, qa, ask, reply, docs, passwd, teacher-register, teacher-status, teacher-profile [edit], logout, exit"
)

// runREPL starts a simple read-eval-print loop for the CourseHub CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Commands that need a signed-in user are
// refused while anonymous. Errors returned by handlers are passed to
// a.report and never end the loop. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help              show available commands
//	  - register          create an account
//	  - login             authenticate with email and password
//	  - sso               authenticate through the identity provider
//	  - cart              show the cart
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - whoami            show the signed-in user
//	  - dashboard         summary, courses and wishlist at once
//	  - courses           enrolled courses
//	  - summary           dashboard counters
//	  - wishlist          wishlisted courses
//	  - wish <id>         add or remove a course from the wishlist
//	  - cart              show the cart
//	  - qa                list Q&A threads
//	  - ask               start a Q&A thread
//	  - reply             reply to a Q&A thread
//	  - docs              list documents
//	  - passwd            change password
//	  - teacher-register  become an instructor
//	  - teacher-status    instructor registration status
//	  - teacher-profile   show the instructor profile, "edit" to update it
//	  - logout            log out
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ch %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(signedInHelp)
			} else {
				printlnFn(anonymousHelp)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "sso":
			cmdErr = a.SSO(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "dashboard":
			cmdErr = a.Dashboard(ctx)
		case "courses":
			cmdErr = a.Courses(ctx)
		case "summary":
			cmdErr = a.Summary(ctx)
		case "wishlist":
			cmdErr = a.Wishlist(ctx)
		case "wish":
			if len(args) == 0 {
				printlnFn("Usage: wish <course_id>")
				continue
			}
			cmdErr = a.ToggleWishlist(ctx, args[0])
		case "cart":
			cmdErr = a.Cart(ctx)
		case "qa":
			cmdErr = a.Questions(ctx)
		case "ask":
			cmdErr = a.Ask(ctx)
		case "reply":
			cmdErr = a.Reply(ctx)
		case "docs":
			cmdErr = a.Documents(ctx)
		case "passwd":
			cmdErr = a.ChangePassword(ctx)

		case "teacher-register":
			cmdErr = a.TeacherRegister(ctx)
		case "teacher-status":
			cmdErr = a.TeacherStatus(ctx)
		case "teacher-profile":
			cmdErr = a.TeacherProfile(ctx, len(args) > 0 && args[0] == "edit")

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			a.report(cmdErr)
		}
	}
}

func needsLogin(cmd string) bool {
	switch cmd {
	case "logout", "whoami", "dashboard", "courses", "summary", "wishlist", "wish",
		"qa", "ask", "reply", "docs", "passwd",
		"teacher-register", "teacher-status", "teacher-profile":
		return true
	}
	return false
}
