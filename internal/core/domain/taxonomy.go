package domain

import "time"

// Domain is a top-level maturity classification.
type Domain struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	NameEn       string      `json:"name_en" gorm:"size:255;not null"`
	NameFr       string      `json:"name_fr" gorm:"size:255"`
	DisplayOrder int         `json:"display_order" gorm:"not null;default:0"`
	Subdomains   []Subdomain `json:"subdomains,omitempty" gorm:"foreignKey:DomainID"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Subdomain belongs to a Domain. LeadConsultant is a bare username and is
// not checked against the users table.
type Subdomain struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	DomainID       uint      `json:"domain_id" gorm:"not null;index"`
	NameEn         string    `json:"name_en" gorm:"size:255;not null"`
	NameFr         string    `json:"name_fr" gorm:"size:255"`
	DisplayOrder   int       `json:"display_order" gorm:"not null;default:0"`
	LeadConsultant string    `json:"lead_consultant" gorm:"size:100;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ConsultantWorkload is a lead consultant together with the subdomains they lead.
type ConsultantWorkload struct {
	User       User
	Subdomains []Subdomain
}
