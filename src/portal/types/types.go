package types

import "time"

// Application status lifecycle.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Applications
type Application struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// DiscordID is the applicant's numeric Discord user id. Legacy imports may
	// hold a username here, which degrades mention formatting downstream.
	DiscordID string `gorm:"size:64;not null;index" json:"discordId"`
	// DedupeKey enforces one application per Discord id at the database level.
	// Admin-created records get a synthetic key so the constraint never fires.
	DedupeKey     string            `gorm:"size:128;not null;uniqueIndex" json:"-"`
	DisplayName   string            `gorm:"size:128;not null" json:"displayName"`
	Email         string            `gorm:"size:256;not null" json:"email"`
	ContactHandle string            `gorm:"size:128;not null" json:"contactHandle"`
	Phone         string            `gorm:"size:32" json:"phone,omitempty"`
	Department    string            `gorm:"size:16;not null;index" json:"department"`
	Motivation    string            `gorm:"type:text;not null" json:"motivation"`
	Supplemental  map[string]string `gorm:"serializer:json" json:"supplemental,omitempty"`
	Status        string            `gorm:"size:16;not null;default:pending;index" json:"status"`
	SubmittedAt   time.Time         `gorm:"index" json:"submittedAt"`
	ReviewedAt    *time.Time        `json:"reviewedAt,omitempty"`
	ReviewedBy    string            `gorm:"size:64" json:"reviewedBy,omitempty"`
	ReviewNotes   string            `gorm:"size:1024" json:"reviewNotes,omitempty"`
}

// Staff roster; admins can list, review and reset applications.
type StaffMember struct {
	DiscordID string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:128"`
	IsAdmin   bool   `gorm:"default:false"`
}

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	DiscordID string
	Name      string
	Admin     bool
}
