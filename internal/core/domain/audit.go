package domain

import "time"

const (
	EventVisit          = "visit"
	EventLogin          = "login"
	EventLoginFailed    = "login_failed"
	EventLogout         = "logout"
	EventCodeValidation = "code_validation"
)

// AuditEntry is an append-only record of a user or visitor action.
type AuditEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventType string    `json:"event_type" gorm:"size:40;not null;index"`
	Actor     string    `json:"actor,omitempty" gorm:"size:100"`
	Path      string    `json:"path,omitempty" gorm:"size:500"`
	Outcome   string    `json:"outcome,omitempty" gorm:"size:40"`
	IPAddress string    `json:"ip_address,omitempty" gorm:"size:64"`
	UserAgent string    `json:"user_agent,omitempty" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName keeps the table name stable across drivers.
func (AuditEntry) TableName() string { return "audit_logs" }

// Count is a labelled counter row used by analytics.
type Count struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}
