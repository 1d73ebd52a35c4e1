package models

// Identity is the signed-in user as described by the access token claims.
// It is derived on every login, refresh and restore and never persisted.
type Identity struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	TeacherID int64  `json:"teacher_id"`
}

// IsTeacher reports whether the user has an instructor profile.
func (i *Identity) IsTeacher() bool {
	return i != nil && i.TeacherID > 0
}
