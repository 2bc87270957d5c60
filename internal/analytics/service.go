package analytics

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
)

type analyticsRepository interface {
	Collect(ctx context.Context, since time.Time) (*Counts, error)
}

// DashboardDTO is the admin dashboard payload.
type DashboardDTO struct {
	TotalUsers       int64 `json:"totalUsers"`
	ActiveUsers      int64 `json:"activeUsers"`
	TotalResumes     int64 `json:"totalResumes"`
	PublishedResumes int64 `json:"publishedResumes"`
	ActiveTemplates  int64 `json:"activeTemplates"`
	ContactMessages  int64 `json:"contactMessages"`
	NewContactInbox  int64 `json:"newContactInbox"`
	ResumesLast7Days int64 `json:"resumesLast7Days"`
}

// Service exposes the dashboard aggregation.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardDTO, error)
}

type service struct {
	repo analyticsRepository
	now  func() time.Time
}

// NewService builds an analytics service.
func NewService(repo analyticsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	since := s.now().UTC().AddDate(0, 0, -7)
	counts, err := s.repo.Collect(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "collect dashboard counts")
	}
	return &DashboardDTO{
		TotalUsers:       counts.TotalUsers,
		ActiveUsers:      counts.ActiveUsers,
		TotalResumes:     counts.TotalResumes,
		PublishedResumes: counts.PublishedResumes,
		ActiveTemplates:  counts.ActiveTemplates,
		ContactMessages:  counts.ContactMessages,
		NewContactInbox:  counts.NewContactInbox,
		ResumesLast7Days: counts.ResumesLast7Days,
	}, nil
}
