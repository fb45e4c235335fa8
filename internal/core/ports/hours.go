package ports

import (
	"context"
	"io"
	"time"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

// HoursRepository persists Hist Data entries.
type HoursRepository interface {
	Insert(ctx context.Context, e *domain.HistEntry) error
	// ForDay returns the consultant's entries whose date parts equal day/month/year.
	ForDay(ctx context.Context, consultant string, day, month, year int) ([]domain.HistEntry, error)
	Recent(ctx context.Context, consultant string, limit int) ([]domain.HistEntry, error)
	ForMonth(ctx context.Context, consultant string, month, year int) ([]domain.HistEntry, error)
	Find(ctx context.Context, id int64) (*domain.HistEntry, error)
	Delete(ctx context.Context, id int64) error
	TotalsByClient(ctx context.Context, consultant string, since time.Time) ([]domain.ClientHours, error)
}

// HoursEntryInput is a new time-tracking entry. Zero date parts default to today.
type HoursEntryInput struct {
	Client    string
	Domain    string
	Subdomain string
	Hours     float64
	Notes     string
	Day       int
	Month     int
	Year      int
}

// DaySheet is the caller's entries for one date.
type DaySheet struct {
	Date    time.Time
	Entries []domain.HistEntry
	Total   float64
}

// HoursSummary is the caller's per-client totals since a local date.
type HoursSummary struct {
	Days    int
	Since   time.Time
	Clients []domain.ClientHours
}

type HoursService interface {
	Log(ctx context.Context, session domain.Session, in HoursEntryInput) (*domain.HistEntry, error)
	Today(ctx context.Context, session domain.Session) (*DaySheet, error)
	Recent(ctx context.Context, session domain.Session, limit int) ([]domain.HistEntry, error)
	Delete(ctx context.Context, session domain.Session, id int64) error
	// Summary applies the default window when days is zero or negative.
	Summary(ctx context.Context, session domain.Session, days int) (*HoursSummary, error)
	// Export writes an XLSX workbook of a consultant's month to w.
	Export(ctx context.Context, session domain.Session, consultant string, month, year int, w io.Writer) error
}
