package domain

import (
	"strings"
	"time"
)

// AssessmentCode grants an organization access to an assessment.
type AssessmentCode struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Code         string     `json:"code" gorm:"uniqueIndex;size:32;not null"`
	Organization string     `json:"organization" gorm:"size:255;not null"`
	Questions    []string   `json:"questions" gorm:"serializer:json;type:text"`
	MaxUses      int        `json:"max_uses" gorm:"not null;default:0"`
	UseCount     int        `json:"use_count" gorm:"not null;default:0"`
	Active       bool       `json:"active" gorm:"not null;default:true"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedBy    string     `json:"created_by,omitempty" gorm:"size:100"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NormalizeCode upper-cases and trims a user supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Usable returns nil when the code can start a new assessment at time now.
func (c *AssessmentCode) Usable(now time.Time) error {
	if !c.Active {
		return ErrCodeInactive
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return ErrCodeExpired
	}
	if c.MaxUses > 0 && c.UseCount >= c.MaxUses {
		return ErrCodeExhausted
	}
	return nil
}

const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
)

// AssessmentSession is one respondent's pass through an assessment.
type AssessmentSession struct {
	ID              string     `json:"id" gorm:"primaryKey;size:36"`
	Code            string     `json:"code" gorm:"size:32;not null;index"`
	Organization    string     `json:"organization" gorm:"size:255"`
	RespondentName  string     `json:"respondent_name,omitempty" gorm:"size:255"`
	RespondentEmail string     `json:"respondent_email,omitempty" gorm:"size:255"`
	Status          string     `json:"status" gorm:"size:20;not null"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	ResponseCount   int64      `json:"response_count" gorm:"-"`
}

// AssessmentResponse is a single scored answer. Resubmitting a question adds a row.
type AssessmentResponse struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SessionID   string    `json:"session_id" gorm:"size:36;not null;index"`
	QuestionID  string    `json:"question_id" gorm:"size:100;not null"`
	SubdomainID uint      `json:"subdomain_id" gorm:"not null"`
	Score       int       `json:"score" gorm:"not null"`
	Comment     string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubdomainScore is the average score of a subdomain within a session.
type SubdomainScore struct {
	SubdomainID uint    `json:"subdomain_id"`
	Average     float64 `json:"average"`
	Answered    int     `json:"answered"`
}

// MaturityResult summarises a completed session.
type MaturityResult struct {
	SessionID  string           `json:"session_id"`
	Overall    float64          `json:"overall"`
	Subdomains []SubdomainScore `json:"subdomains"`
}
