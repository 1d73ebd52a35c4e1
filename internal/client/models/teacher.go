package models

// Teacher is the instructor profile of a user.
type Teacher struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Bio      string `json:"bio"`
	About    string `json:"about"`
	Country  string `json:"country"`
	Facebook string `json:"facebook"`
	Twitter  string `json:"twitter"`
	Linkedin string `json:"linkedin"`
}

// TeacherStatus reports whether the current user is registered as a teacher.
type TeacherStatus struct {
	IsTeacher bool     `json:"is_teacher"`
	Teacher   *Teacher `json:"teacher,omitempty"`
	Message   string   `json:"message,omitempty"`
}
