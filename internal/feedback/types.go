package feedback

import "time"

// Feedback is a customer rating with an optional comment.
type Feedback struct {
	FeedbackID string    `dynamodbav:"feedback_id" json:"feedback_id"` // PK
	UserID     string    `dynamodbav:"user_id" json:"user_id"`
	Name       string    `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Email      string    `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Rating     int       `dynamodbav:"rating" json:"rating"` // 1..5
	Comment    string    `dynamodbav:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `dynamodbav:"created_at" json:"created_at"`
}
