package sqldb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

// histRow is the hist_data table. Queries against it are plain SQL; the
// model only exists so AutoMigrate can create the table.
type histRow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Consultant string    `gorm:"size:100;not null;index:idx_hist_consultant_date,priority:1"`
	Client     string    `gorm:"size:255;not null"`
	Domain     string    `gorm:"size:255"`
	Subdomain  string    `gorm:"size:255"`
	Hours      float64   `gorm:"not null"`
	Notes      string    `gorm:"type:text"`
	Day        int       `gorm:"not null;index:idx_hist_consultant_date,priority:4"`
	Month      int       `gorm:"not null;index:idx_hist_consultant_date,priority:3"`
	Year       int       `gorm:"not null;index:idx_hist_consultant_date,priority:2"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (histRow) TableName() string { return "hist_data" }

func (h histRow) entry() domain.HistEntry {
	return domain.HistEntry{
		ID:         h.ID,
		Consultant: h.Consultant,
		Client:     h.Client,
		Domain:     h.Domain,
		Subdomain:  h.Subdomain,
		Hours:      h.Hours,
		Notes:      h.Notes,
		Day:        h.Day,
		Month:      h.Month,
		Year:       h.Year,
		CreatedAt:  h.CreatedAt,
	}
}

const histColumns = "id, consultant, client, domain, subdomain, hours, notes, day, month, year, created_at"

// HoursRepository stores Hist Data entries with hand written SQL.
type HoursRepository struct {
	db *gorm.DB
}

func NewHoursRepository(db *gorm.DB) *HoursRepository {
	return &HoursRepository{db: db}
}

func (r *HoursRepository) Insert(ctx context.Context, e *domain.HistEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	var id int64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO hist_data (consultant, client, domain, subdomain, hours, notes, day, month, year, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		e.Consultant, e.Client, e.Domain, e.Subdomain, e.Hours, e.Notes, e.Day, e.Month, e.Year, e.CreatedAt,
	).Scan(&id).Error
	if err != nil {
		return fmt.Errorf("insert hist entry: %w", err)
	}
	e.ID = id
	return nil
}

func (r *HoursRepository) ForDay(ctx context.Context, consultant string, day, month, year int) ([]domain.HistEntry, error) {
	return r.query(ctx,
		`SELECT `+histColumns+` FROM hist_data
		 WHERE consultant = ? AND day = ? AND month = ? AND year = ?
		 ORDER BY created_at, id`,
		consultant, day, month, year)
}

func (r *HoursRepository) Recent(ctx context.Context, consultant string, limit int) ([]domain.HistEntry, error) {
	return r.query(ctx,
		`SELECT `+histColumns+` FROM hist_data
		 WHERE consultant = ?
		 ORDER BY year DESC, month DESC, day DESC, id DESC
		 LIMIT ?`,
		consultant, limit)
}

func (r *HoursRepository) ForMonth(ctx context.Context, consultant string, month, year int) ([]domain.HistEntry, error) {
	return r.query(ctx,
		`SELECT `+histColumns+` FROM hist_data
		 WHERE consultant = ? AND month = ? AND year = ?
		 ORDER BY day, id`,
		consultant, month, year)
}

func (r *HoursRepository) Find(ctx context.Context, id int64) (*domain.HistEntry, error) {
	entries, err := r.query(ctx, `SELECT `+histColumns+` FROM hist_data WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrEntryNotFound
	}
	return &entries[0], nil
}

func (r *HoursRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM hist_data WHERE id = ?`, id)
	if res.Error != nil {
		return fmt.Errorf("delete hist entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// TotalsByClient sums hours per client for entries dated on or after since.
func (r *HoursRepository) TotalsByClient(ctx context.Context, consultant string, since time.Time) ([]domain.ClientHours, error) {
	cutoff := since.Year()*10000 + int(since.Month())*100 + since.Day()

	var out []domain.ClientHours
	err := r.db.WithContext(ctx).Raw(
		`SELECT client, SUM(hours) AS hours, COUNT(*) AS entries FROM hist_data
		 WHERE consultant = ? AND (year * 10000 + month * 100 + day) >= ?
		 GROUP BY client
		 ORDER BY hours DESC, client`,
		consultant, cutoff,
	).Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("hours by client: %w", err)
	}
	return out, nil
}

func (r *HoursRepository) query(ctx context.Context, sql string, args ...any) ([]domain.HistEntry, error) {
	var rows []histRow
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query hist data: %w", err)
	}

	out := make([]domain.HistEntry, len(rows))
	for i, row := range rows {
		out[i] = row.entry()
	}
	return out, nil
}
