package domain

import "time"

// HistEntry is a consultant's time-tracking record for one day.
type HistEntry struct {
	ID         int64     `json:"id"`
	Consultant string    `json:"consultant"`
	Client     string    `json:"client"`
	Domain     string    `json:"domain,omitempty"`
	Subdomain  string    `json:"subdomain,omitempty"`
	Hours      float64   `json:"hours"`
	Notes      string    `json:"notes,omitempty"`
	Day        int       `json:"day"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	CreatedAt  time.Time `json:"created_at"`
}

// ClientHours is the total logged against one client.
type ClientHours struct {
	Client  string  `json:"client"`
	Hours   float64 `json:"hours"`
	Entries int64   `json:"entries"`
}
