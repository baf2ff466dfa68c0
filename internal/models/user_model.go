package models

import "time"

// User is the backend profile for a Firebase Auth account. The Firebase UID
// is the Firestore document ID. History records reference users by this ID;
// the reference is weak, so deleting a user leaves its records intact.
type User struct {
	ID          string    `json:"id" firestore:"-"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	Role        string    `json:"role" firestore:"role"` // "admin" or "user"
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
