package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/client/api"
	"github.com/dmitrijs2005/coursehub/internal/client/models"
)

// TeacherRegister creates an instructor profile. The teacher_id claim is
// only issued with a new login, so the user is signed out afterwards and
// asked to log in again.
func (a *App) TeacherRegister(ctx context.Context) error {
	req, err := a.promptTeacher(false)
	if err != nil {
		return err
	}
	t, err := a.teacher.Register(ctx, req)
	if err != nil {
		return err
	}
	a.notify(noticeSuccess, "You are now registered as an instructor")
	printTeacher(t)
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.notify(noticeInfo, "Please log in again to use instructor features")
	return nil
}

func (a *App) TeacherStatus(ctx context.Context) error {
	st, err := a.teacher.Status(ctx)
	if err != nil {
		return err
	}
	if !st.IsTeacher {
		msg := st.Message
		if msg == "" {
			msg = "Not registered as an instructor"
		}
		a.notify(noticeInfo, msg)
		return nil
	}
	a.notify(noticeSuccess, "Registered as an instructor")
	if st.Teacher != nil {
		printTeacher(st.Teacher)
	}
	return nil
}

// TeacherProfile prints the instructor profile, or updates it when edit is
// set. Fields left blank are not changed.
func (a *App) TeacherProfile(ctx context.Context, edit bool) error {
	if !edit {
		t, err := a.teacher.Profile(ctx)
		if err != nil {
			return err
		}
		printTeacher(t)
		return nil
	}

	printlnFn(dimStyle.Render("Leave a field blank to keep it unchanged"))
	req, err := a.promptTeacher(true)
	if err != nil {
		return err
	}
	t, err := a.teacher.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	a.notify(noticeSuccess, "Profile updated")
	printTeacher(t)
	return nil
}

func (a *App) promptTeacher(withSocial bool) (api.TeacherRequest, error) {
	var req api.TeacherRequest
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Full name", &req.FullName},
		{"Bio", &req.Bio},
		{"Country", &req.Country},
	}
	if withSocial {
		fields = append(fields, []struct {
			prompt string
			dst    *string
		}{
			{"Facebook", &req.Facebook},
			{"Twitter", &req.Twitter},
			{"LinkedIn", &req.Linkedin},
		}...)
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return req, err
		}
		*f.dst = v
	}
	about, err := getMultiline(a.reader, "About", a.out)
	if err != nil {
		return req, err
	}
	req.About = about
	return req, nil
}

func printTeacher(t *models.Teacher) {
	printlnFn(title(t.FullName))
	if t.Bio != "" {
		printlnFn("  " + t.Bio)
	}
	if t.Country != "" {
		printlnFn(fmt.Sprintf("  country:  %s", t.Country))
	}
	if t.About != "" {
		printlnFn(dimStyle.Render("  " + t.About))
	}
	for _, l := range []struct{ name, v string }{
		{"facebook", t.Facebook}, {"twitter", t.Twitter}, {"linkedin", t.Linkedin},
	} {
		if l.v != "" {
			printlnFn(fmt.Sprintf("  %-9s %s", l.name+":", l.v))
		}
	}
}
