package models

// Question is a Q&A thread started by a student on a course.
type Question struct {
	QAID     string          `json:"qa_id"`
	Title    string          `json:"title"`
	Course   int64           `json:"course"`
	User     int64           `json:"user"`
	Date     string          `json:"date"`
	Messages []QAMessage     `json:"messages"`
	Profile  *QuestionAuthor `json:"profile,omitempty"`
}

// QAMessage is one message in a Q&A thread.
type QAMessage struct {
	QAID    string `json:"qa_id"`
	Message string `json:"message"`
	Date    string `json:"date"`
	User    int64  `json:"user"`
}

// QuestionAuthor is the profile snippet attached to a question.
type QuestionAuthor struct {
	FullName string `json:"full_name"`
	Image    string `json:"image"`
}
