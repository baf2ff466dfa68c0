package models

import "time"

// ContactMessage is a submission from the public contact form, plus the
// admin-side read/reply state.
type ContactMessage struct {
	ID           string     `json:"id" firestore:"-"`
	Name         string     `json:"name" firestore:"name"`
	Email        string     `json:"email" firestore:"email"`
	Phone        string     `json:"phone,omitempty" firestore:"phone,omitempty"`
	Message      string     `json:"message" firestore:"message"`
	IsRead       bool       `json:"isRead" firestore:"isRead"`
	IsReplied    bool       `json:"isReplied" firestore:"isReplied"`
	ReplyMessage string     `json:"replyMessage,omitempty" firestore:"replyMessage,omitempty"`
	RepliedAt    *time.Time `json:"repliedAt,omitempty" firestore:"repliedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" firestore:"createdAt"`
}
