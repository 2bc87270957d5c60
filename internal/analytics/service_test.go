package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
)

type stubAnalyticsRepo struct {
	counts *Counts
	since  time.Time
	err    error
}

func (s *stubAnalyticsRepo) Collect(_ context.Context, since time.Time) (*Counts, error) {
	s.since = since
	if s.err != nil {
		return nil, s.err
	}
	return s.counts, nil
}

func TestDashboardMapsCounts(t *testing.T) {
	repo := &stubAnalyticsRepo{counts: &Counts{
		TotalUsers:       10,
		ActiveUsers:      8,
		TotalResumes:     25,
		PublishedResumes: 4,
		ActiveTemplates:  6,
		ContactMessages:  3,
		NewContactInbox:  2,
		ResumesLast7Days: 5,
	}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dto.TotalUsers != 10 || dto.ActiveUsers != 8 || dto.ResumesLast7Days != 5 {
		t.Fatalf("unexpected dashboard %+v", dto)
	}

	window := time.Since(repo.since)
	if window < 7*24*time.Hour-time.Minute || window > 7*24*time.Hour+time.Minute {
		t.Fatalf("expected a trailing 7 day window, got %s", window)
	}
}

func TestDashboardWrapsRepoError(t *testing.T) {
	repo := &stubAnalyticsRepo{err: errors.New("db down")}
	svc, _ := NewService(repo)

	_, err := svc.Dashboard(context.Background())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
