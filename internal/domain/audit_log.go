package domain

import "time"

// AuditLog records who did what after a successful operation. Written
// fire-and-forget by the HTTP layer; the engines never depend on it.
type AuditLog struct {
	ID           string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   *string
	Details      *string
	IPAddress    *string
	CreatedAt    time.Time
}
