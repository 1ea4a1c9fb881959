package domain

import "time"

type SenderRole string

const (
	RolePreparer SenderRole = "preparer"
	RoleClient   SenderRole = "client"
)

// Message is one entry in the thread between a client and their preparer.
type Message struct {
	ID         string     `json:"id"`
	ClientID   string     `json:"client_id"`
	SenderID   string     `json:"sender_id"`
	SenderRole SenderRole `json:"sender_role"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"created_at"`
}
