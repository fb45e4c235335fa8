package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/orgmaturity/assessment-api/internal/api/metrics"
	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
	defaultSummaryDays = 30
	maxHoursPerEntry   = 24
	exportSheet        = "Hours"
)

// HoursService implements the client hours module. Dates are evaluated in
// the server's configured location.
type HoursService struct {
	repo ports.HoursRepository
	loc  *time.Location
	log  zerolog.Logger
	now  func() time.Time
}

func NewHoursService(repo ports.HoursRepository, loc *time.Location, log zerolog.Logger) *HoursService {
	if loc == nil {
		loc = time.Local
	}
	return &HoursService{repo: repo, loc: loc, log: log, now: time.Now}
}

func (s *HoursService) Log(ctx context.Context, session domain.Session, in ports.HoursEntryInput) (*domain.HistEntry, error) {
	if strings.TrimSpace(in.Client) == "" {
		return nil, fmt.Errorf("%w: client is required", domain.ErrInvalidInput)
	}
	if in.Hours <= 0 || in.Hours > maxHoursPerEntry {
		return nil, fmt.Errorf("%w: hours must be greater than 0 and at most %d", domain.ErrInvalidInput, maxHoursPerEntry)
	}

	today := s.now().In(s.loc)
	day, month, year := in.Day, in.Month, in.Year
	if day == 0 && month == 0 && year == 0 {
		day, month, year = today.Day(), int(today.Month()), today.Year()
	}
	if !validDate(day, month, year) {
		return nil, fmt.Errorf("%w: day, month and year must form a valid date", domain.ErrInvalidInput)
	}

	e := &domain.HistEntry{
		Consultant: session.Username,
		Client:     strings.TrimSpace(in.Client),
		Domain:     in.Domain,
		Subdomain:  in.Subdomain,
		Hours:      in.Hours,
		Notes:      in.Notes,
		Day:        day,
		Month:      month,
		Year:       year,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, err
	}

	metrics.HoursLoggedTotal.Add(e.Hours)
	s.log.Info().Str("consultant", e.Consultant).Str("client", e.Client).Float64("hours", e.Hours).Msg("hours logged")
	return e, nil
}

// Today returns the caller's entries dated on the current server date.
func (s *HoursService) Today(ctx context.Context, session domain.Session) (*ports.DaySheet, error) {
	today := s.now().In(s.loc)
	entries, err := s.repo.ForDay(ctx, session.Username, today.Day(), int(today.Month()), today.Year())
	if err != nil {
		return nil, err
	}
	sheet := &ports.DaySheet{
		Date:    time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc),
		Entries: entries,
	}
	for _, e := range entries {
		sheet.Total += e.Hours
	}
	return sheet, nil
}

func (s *HoursService) Recent(ctx context.Context, session domain.Session, limit int) ([]domain.HistEntry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.repo.Recent(ctx, session.Username, limit)
}

// Delete removes an entry owned by the caller. Admins may delete any entry;
// everyone else gets not found for entries they do not own.
func (s *HoursService) Delete(ctx context.Context, session domain.Session, id int64) error {
	e, err := s.repo.Find(ctx, id)
	if err != nil {
		return err
	}
	if e.Consultant != session.Username && !domain.IsAdmin(session.Role) {
		return domain.ErrEntryNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("entry_id", id).Str("deleted_by", session.Username).Msg("hours entry deleted")
	return nil
}

func (s *HoursService) Summary(ctx context.Context, session domain.Session, days int) (*ports.HoursSummary, error) {
	if days <= 0 {
		days = defaultSummaryDays
	}
	if days > maxAnalyticsDays {
		return nil, fmt.Errorf("%w: days must be at most %d", domain.ErrInvalidInput, maxAnalyticsDays)
	}
	today := s.now().In(s.loc)
	since := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -days)
	clients, err := s.repo.TotalsByClient(ctx, session.Username, since)
	if err != nil {
		return nil, err
	}
	return &ports.HoursSummary{Days: days, Since: since, Clients: clients}, nil
}

// Export writes the month's entries as an XLSX workbook. Only admins may
// export another consultant's hours. A zero month and year select the
// current month.
func (s *HoursService) Export(ctx context.Context, session domain.Session, consultant string, month, year int, w io.Writer) error {
	if consultant == "" {
		consultant = session.Username
	}
	if month == 0 && year == 0 {
		today := s.now().In(s.loc)
		month, year = int(today.Month()), today.Year()
	}
	if consultant != session.Username && !domain.IsAdmin(session.Role) {
		return domain.ErrUnauthorized
	}
	if !validDate(1, month, year) {
		return fmt.Errorf("%w: month and year must form a valid date", domain.ErrInvalidInput)
	}

	entries, err := s.repo.ForMonth(ctx, consultant, month, year)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn().Err(err).Msg("close workbook")
		}
	}()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	header := []any{"Date", "Client", "Domain", "Subdomain", "Hours", "Notes"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	var total float64
	for i, e := range entries {
		row := []any{
			fmt.Sprintf("%04d-%02d-%02d", e.Year, e.Month, e.Day),
			e.Client, e.Domain, e.Subdomain, e.Hours, e.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		total += e.Hours
	}

	totalCell, err := excelize.CoordinatesToCellName(4, len(entries)+2)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	totalRow := []any{"Total", total}
	if err := f.SetSheetRow(exportSheet, totalCell, &totalRow); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func validDate(day, month, year int) bool {
	if year < 2000 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month
}
