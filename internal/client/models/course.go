package models

// Course is the subset of course fields the client shows.
type Course struct {
	ID       int64  `json:"id"`
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Price    string `json:"price"`
	Level    string `json:"level"`
	Language string `json:"language"`
}

// CartItem is one line of a cart.
type CartItem struct {
	ID     int64  `json:"id"`
	CartID string `json:"cart_id"`
	Course Course `json:"course"`
	Price  string `json:"price"`
	Total  string `json:"total"`
}

// WishlistItem is one wishlisted course.
type WishlistItem struct {
	ID     int64  `json:"id"`
	Course Course `json:"course"`
}

// EnrolledCourse is a course the student is enrolled in.
type EnrolledCourse struct {
	EnrollmentID string `json:"enrollment_id"`
	Course       Course `json:"course"`
	Date         string `json:"date"`
}

// StudentSummary holds the dashboard counters.
type StudentSummary struct {
	TotalCourses         int `json:"total_courses"`
	CompletedLessons     int `json:"completed_lessons"`
	AchievedCertificates int `json:"achieved_certificates"`
}

// Profile is the user profile.
type Profile struct {
	ID       int64  `json:"id"`
	User     int64  `json:"user"`
	FullName string `json:"full_name"`
	Image    string `json:"image"`
	Country  string `json:"country"`
	About    string `json:"about"`
}

// Document is a user document known to the AI teaching team.
type Document struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	File      string `json:"file"`
	CreatedAt string `json:"created_at"`
}
