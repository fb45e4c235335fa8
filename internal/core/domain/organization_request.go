package domain

import "time"

const (
	RequestStatusNew       = "new"
	RequestStatusContacted = "contacted"
	RequestStatusClosed    = "closed"
)

// OrganizationRequest is a lead captured from a prospective customer.
type OrganizationRequest struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	OrganizationName string    `json:"organization_name" gorm:"size:255;not null"`
	ContactName      string    `json:"contact_name" gorm:"size:255;not null"`
	Email            string    `json:"email" gorm:"size:255;not null"`
	Phone            string    `json:"phone,omitempty" gorm:"size:50"`
	RequestType      string    `json:"request_type" gorm:"size:30;not null"`
	Message          string    `json:"message,omitempty" gorm:"type:text"`
	Status           string    `json:"status" gorm:"size:20;not null;index"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
