package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/common"
)

// Dashboard prints the summary counters, enrolled courses and wishlist.
func (a *App) Dashboard(ctx context.Context) error {
	if err := a.Summary(ctx); err != nil {
		return err
	}
	if err := a.Courses(ctx); err != nil {
		return err
	}
	return a.Wishlist(ctx)
}

func (a *App) Summary(ctx context.Context) error {
	s, err := a.student.Summary(ctx)
	if err != nil {
		return err
	}
	printlnFn(title("Summary"))
	printlnFn(fmt.Sprintf("  courses:      %d", s.TotalCourses))
	printlnFn(fmt.Sprintf("  lessons done: %d", s.CompletedLessons))
	printlnFn(fmt.Sprintf("  certificates: %d", s.AchievedCertificates))
	return nil
}

func (a *App) Courses(ctx context.Context) error {
	courses, err := a.student.Courses(ctx)
	if err != nil {
		return err
	}
	printlnFn(title("My courses"))
	if len(courses) == 0 {
		printlnFn(dimStyle.Render("  no courses yet"))
		return nil
	}
	for _, c := range courses {
		printlnFn(fmt.Sprintf("  [%d] %s (enrolled %s)", c.Course.ID, c.Course.Title, c.Date))
	}
	return nil
}

func (a *App) Wishlist(ctx context.Context) error {
	items, err := a.student.Wishlist(ctx)
	if err != nil {
		return err
	}
	printlnFn(title("Wishlist"))
	if len(items) == 0 {
		printlnFn(dimStyle.Render("  empty"))
		return nil
	}
	for _, it := range items {
		printlnFn(fmt.Sprintf("  [%d] %s  %s", it.Course.ID, it.Course.Title, it.Course.Price))
	}
	return nil
}

// ToggleWishlist adds the course to the wishlist or removes it when it is
// already there, then refreshes the cached user data.
func (a *App) ToggleWishlist(ctx context.Context, courseID string) error {
	id, err := parseID(courseID)
	if err != nil {
		return err
	}
	msg, err := a.student.ToggleWishlist(ctx, id)
	if err != nil {
		return err
	}
	a.notify(noticeSuccess, msg)
	a.reloadUserData(ctx, a.session.User())
	return nil
}

// Cart prints the cached cart. It works for anonymous users too.
// Cart lists the cart of the signed-in user. The cart listing endpoint
// requires a token, so anonymous users only get a notice.
func (a *App) Cart(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		a.notify(noticeInfo, "Log in to see your cart")
		return nil
	}
	a.reloadUserData(ctx, u)
	cart := a.userData.Snapshot().Cart
	printlnFn(title(fmt.Sprintf("Cart (%d)", len(cart))))
	for _, it := range cart {
		printlnFn(fmt.Sprintf("  [%d] %s  %s", it.Course.ID, it.Course.Title, it.Price))
	}
	return nil
}

func (a *App) Questions(ctx context.Context) error {
	qs, err := a.student.Questions(ctx)
	if err != nil {
		return err
	}
	printlnFn(title("Questions"))
	if len(qs) == 0 {
		printlnFn(dimStyle.Render("  no questions yet"))
		return nil
	}
	for _, q := range qs {
		printlnFn(fmt.Sprintf("  %s  course %d  %q (%d messages)", q.QAID, q.Course, q.Title, len(q.Messages)))
	}
	return nil
}

// Ask starts a Q&A thread on a course.
func (a *App) Ask(ctx context.Context) error {
	courseID, err := a.promptID("Enter course id")
	if err != nil {
		return err
	}
	qTitle, err := getSimpleText(a.reader, "Enter question title", a.out)
	if err != nil {
		return err
	}
	msg, err := getMultiline(a.reader, "Enter question", a.out)
	if err != nil {
		return err
	}

	res, err := a.student.Ask(ctx, courseID, qTitle, msg)
	if err != nil {
		return err
	}
	a.notify(noticeSuccess, res)
	return nil
}

// Reply posts a message to an existing thread and prints the thread.
func (a *App) Reply(ctx context.Context) error {
	courseID, err := a.promptID("Enter course id")
	if err != nil {
		return err
	}
	qaID, err := getSimpleText(a.reader, "Enter question id", a.out)
	if err != nil {
		return err
	}
	msg, err := getMultiline(a.reader, "Enter reply", a.out)
	if err != nil {
		return err
	}

	q, err := a.student.Reply(ctx, courseID, qaID, msg)
	if err != nil {
		return err
	}
	printlnFn(title(q.Title))
	for _, m := range q.Messages {
		printlnFn(fmt.Sprintf("  %s  %s", dimStyle.Render(m.Date), m.Message))
	}
	return nil
}

func (a *App) Documents(ctx context.Context) error {
	docs, err := a.student.Documents(ctx)
	if err != nil {
		return err
	}
	printlnFn(title("Documents"))
	if len(docs) == 0 {
		printlnFn(dimStyle.Render("  no documents"))
		return nil
	}
	for _, d := range docs {
		printlnFn(fmt.Sprintf("  [%d] %s  %s", d.ID, d.Title, d.File))
	}
	return nil
}

// ChangePassword prompts for the old and new passwords. A successful
// change signs the user out so the new password is used from then on.
func (a *App) ChangePassword(ctx context.Context) error {
	oldPassword, err := getSecret(a.out, "Enter current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)
	newPassword, err := getSecret(a.out, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)
	confirm, err := getSecret(a.out, "Repeat new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	msg, err := a.student.ChangePassword(ctx, string(oldPassword), string(newPassword), string(confirm))
	if err != nil {
		return err
	}
	a.notify(noticeSuccess, msg)
	return a.auth.Logout(ctx)
}

func (a *App) promptID(prompt string) (int64, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, err
	}
	return parseID(s)
}
