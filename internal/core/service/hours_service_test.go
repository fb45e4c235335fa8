package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

// 23:30 UTC on the 15th is already the 16th two hours east.
var (
	hoursNow = time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)
	hoursLoc = time.FixedZone("UTC+2", 2*3600)

	aliceSession = domain.Session{UserID: 1, Username: "alice", Role: domain.RoleLeadConsultant}
	bobSession   = domain.Session{UserID: 2, Username: "bob", Role: domain.RoleUser}
	adminSession = domain.Session{UserID: 3, Username: "root", Role: domain.RoleAdmin}
)

func newHoursFixture() (*HoursService, *stubHoursRepo) {
	repo := newStubHoursRepo()
	svc := NewHoursService(repo, hoursLoc, nopLog)
	svc.now = fixedClock(hoursNow)
	return svc, repo
}

func TestHoursService_Log_DefaultsToToday(t *testing.T) {
	svc, _ := newHoursFixture()

	e, err := svc.Log(context.Background(), aliceSession, ports.HoursEntryInput{Client: " Acme ", Hours: 2.5})
	if err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	if e.Consultant != "alice" || e.Client != "Acme" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.Day != 16 || e.Month != 3 || e.Year != 2026 {
		t.Fatalf("expected server-local date 2026-03-16, got %04d-%02d-%02d", e.Year, e.Month, e.Day)
	}
	if e.ID == 0 {
		t.Fatal("expected id to be assigned")
	}
}

func TestHoursService_Log_Validation(t *testing.T) {
	svc, repo := newHoursFixture()

	tests := []struct {
		name string
		in   ports.HoursEntryInput
	}{
		{name: "missing client", in: ports.HoursEntryInput{Hours: 1}},
		{name: "zero hours", in: ports.HoursEntryInput{Client: "Acme"}},
		{name: "too many hours", in: ports.HoursEntryInput{Client: "Acme", Hours: 25}},
		{name: "impossible date", in: ports.HoursEntryInput{Client: "Acme", Hours: 1, Day: 31, Month: 2, Year: 2026}},
		{name: "partial date", in: ports.HoursEntryInput{Client: "Acme", Hours: 1, Day: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Log(context.Background(), aliceSession, tt.in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
	if len(repo.entries) != 0 {
		t.Fatalf("expected nothing stored, got %d entries", len(repo.entries))
	}
}

func TestHoursService_Today_OnlyCallersEntriesForToday(t *testing.T) {
	svc, _ := newHoursFixture()
	ctx := context.Background()

	mustLog := func(s domain.Session, in ports.HoursEntryInput) {
		t.Helper()
		if _, err := svc.Log(ctx, s, in); err != nil {
			t.Fatalf("Log returned error: %v", err)
		}
	}
	mustLog(aliceSession, ports.HoursEntryInput{Client: "Acme", Hours: 2})
	mustLog(aliceSession, ports.HoursEntryInput{Client: "Globex", Hours: 1.5})
	mustLog(aliceSession, ports.HoursEntryInput{Client: "Acme", Hours: 8, Day: 15, Month: 3, Year: 2026})
	mustLog(bobSession, ports.HoursEntryInput{Client: "Acme", Hours: 4})

	sheet, err := svc.Today(ctx, aliceSession)
	if err != nil {
		t.Fatalf("Today returned error: %v", err)
	}
	if len(sheet.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(sheet.Entries))
	}
	for _, e := range sheet.Entries {
		if e.Consultant != "alice" || e.Day != 16 {
			t.Fatalf("unexpected entry in today's sheet: %+v", e)
		}
	}
	if sheet.Total != 3.5 {
		t.Fatalf("expected total 3.5, got %v", sheet.Total)
	}
	if got := sheet.Date.Format(time.DateOnly); got != "2026-03-16" {
		t.Fatalf("expected date 2026-03-16, got %s", got)
	}
}

func TestHoursService_Delete_Ownership(t *testing.T) {
	svc, repo := newHoursFixture()
	ctx := context.Background()

	e, err := svc.Log(ctx, aliceSession, ports.HoursEntryInput{Client: "Acme", Hours: 1})
	if err != nil {
		t.Fatalf("Log returned error: %v", err)
	}

	if err := svc.Delete(ctx, bobSession, e.ID); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound for another user's entry, got %v", err)
	}
	if _, ok := repo.entries[e.ID]; !ok {
		t.Fatal("entry must survive a foreign delete attempt")
	}

	if err := svc.Delete(ctx, adminSession, e.ID); err != nil {
		t.Fatalf("admin Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, aliceSession, e.ID); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound after delete, got %v", err)
	}
}

func TestHoursService_Recent_ClampsLimit(t *testing.T) {
	svc, repo := newHoursFixture()
	for i := 0; i < maxRecentLimit+5; i++ {
		_ = repo.Insert(context.Background(), &domain.HistEntry{Consultant: "alice", Client: "Acme", Hours: 1})
	}

	got, err := svc.Recent(context.Background(), aliceSession, 1000)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != maxRecentLimit {
		t.Fatalf("expected %d entries, got %d", maxRecentLimit, len(got))
	}

	got, _ = svc.Recent(context.Background(), aliceSession, 0)
	if len(got) != defaultRecentLimit {
		t.Fatalf("expected default %d entries, got %d", defaultRecentLimit, len(got))
	}
}

func TestHoursService_Summary(t *testing.T) {
	svc, repo := newHoursFixture()

	summary, err := svc.Summary(context.Background(), aliceSession, 0)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.Days != defaultSummaryDays {
		t.Fatalf("expected default window %d, got %d", defaultSummaryDays, summary.Days)
	}
	// hoursNow is 23:30 UTC on the 15th, already the 16th in hoursLoc.
	want := time.Date(2026, 2, 14, 0, 0, 0, 0, hoursLoc)
	if !repo.since.Equal(want) || !summary.Since.Equal(want) {
		t.Fatalf("expected since %s, got repo %s and summary %s", want, repo.since, summary.Since)
	}
	if y, m, d := repo.since.Date(); y != 2026 || m != time.February || d != 14 {
		t.Fatalf("expected local cutoff date 2026-02-14, got %d-%02d-%02d", y, m, d)
	}
	if _, err := svc.Summary(context.Background(), aliceSession, maxAnalyticsDays+1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHoursService_Export(t *testing.T) {
	svc, _ := newHoursFixture()
	ctx := context.Background()

	for _, in := range []ports.HoursEntryInput{
		{Client: "Acme", Hours: 2, Notes: "kickoff"},
		{Client: "Globex", Hours: 3, Day: 2, Month: 3, Year: 2026},
		{Client: "Initech", Hours: 5, Day: 28, Month: 2, Year: 2026},
	} {
		if _, err := svc.Log(ctx, aliceSession, in); err != nil {
			t.Fatalf("Log returned error: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := svc.Export(ctx, aliceSession, "", 0, 0, &buf); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	// header, two March entries, total
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d: %v", len(rows), rows)
	}
	if rows[0][0] != "Date" || rows[0][4] != "Hours" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[3][3] != "Total" || rows[3][4] != "5" {
		t.Fatalf("unexpected total row: %v", rows[3])
	}
}

func TestHoursService_Export_Permissions(t *testing.T) {
	svc, _ := newHoursFixture()
	ctx := context.Background()

	if err := svc.Export(ctx, bobSession, "alice", 3, 2026, &bytes.Buffer{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.Export(ctx, adminSession, "alice", 3, 2026, &bytes.Buffer{}); err != nil {
		t.Fatalf("admin export returned error: %v", err)
	}
	if err := svc.Export(ctx, aliceSession, "", 13, 2026, &bytes.Buffer{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for month 13, got %v", err)
	}
}
