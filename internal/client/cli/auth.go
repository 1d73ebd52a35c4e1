package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/client/services"
	"github.com/dmitrijs2005/coursehub/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret
var getMultiline = GetMultiline

// Register prompts for the sign-up form and creates the account. The
// service signs the new user in, so a success switches to the home view
// through the login event.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getSecret(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getSecret(a.out, "Repeat password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	u, err := a.auth.Register(ctx, services.RegisterInput{
		FullName:  fullName,
		Email:     email,
		Password:  string(password),
		Password2: string(confirm),
	})
	if err != nil {
		return err
	}

	a.notify(noticeSuccess, "Registration successful, welcome "+displayName(u))
	return nil
}

// Login prompts for email and password and authenticates.
//
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getSecret(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.notify(noticeSuccess, "Login successful, welcome "+displayName(u))
	return nil
}

// SSO signs in through the identity provider's hosted page.
func (a *App) SSO(ctx context.Context) error {
	printlnFn("Opening the sign-in page in your browser...")
	err := a.signIn.Run(ctx, func(ctx context.Context, providerToken string) error {
		_, err := a.auth.LoginWithProvider(ctx, providerToken)
		return err
	})
	if err != nil {
		return err
	}

	if u := a.auth.CurrentUser(); u != nil {
		a.notify(noticeSuccess, "Login successful, welcome "+displayName(u))
	}
	return nil
}

// Logout drops the stored credentials and returns to the login view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.notify(noticeInfo, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(title(displayName(u)))
	printlnFn(fmt.Sprintf("  id:       %d", u.UserID))
	printlnFn(fmt.Sprintf("  username: %s", u.Username))
	printlnFn(fmt.Sprintf("  email:    %s", u.Email))
	if u.IsTeacher() {
		printlnFn(fmt.Sprintf("  teacher:  %d", u.TeacherID))
	}
	if p := a.userData.Snapshot().Profile; p != nil && p.Country != "" {
		printlnFn(fmt.Sprintf("  country:  %s", p.Country))
	}
	return nil
}
