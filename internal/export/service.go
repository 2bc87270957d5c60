package export

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carlosmendieta/resumeforge-backend/internal/features"
	"github.com/carlosmendieta/resumeforge-backend/internal/resumes"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
)

type resumeStore interface {
	GetByID(ctx context.Context, userID, id uuid.UUID) (*resumes.ResumeDTO, error)
}

type featureGate interface {
	Check(ctx context.Context, actor features.Actor, name string) features.Status
	Consume(ctx context.Context, actor features.Actor, name string) error
}

type pdfRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

type exportMetrics interface {
	IncExport(format, outcome string)
}

// Artifact is one rendered download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service renders persisted resumes into downloadable artifacts.
type Service interface {
	Export(ctx context.Context, actor features.Actor, resumeID uuid.UUID, format enums.ExportFormat) (*Artifact, error)
}

type service struct {
	resumes resumeStore
	gate    featureGate
	pdf     pdfRenderer
	metrics exportMetrics
}

// NewService builds the export service. Metrics are optional.
func NewService(resumes resumeStore, gate featureGate, pdf pdfRenderer, metrics exportMetrics) (Service, error) {
	if resumes == nil {
		return nil, fmt.Errorf("resume store required")
	}
	if gate == nil {
		return nil, fmt.Errorf("feature gate required")
	}
	if pdf == nil {
		return nil, fmt.Errorf("pdf renderer required")
	}
	return &service{resumes: resumes, gate: gate, pdf: pdf, metrics: metrics}, nil
}

// Export gates on the format's feature flag and renders the owner's
// persisted document. One unit of the format's daily limit is spent per
// successful render; a missing resume, a closed gate, or a crashed renderer
// costs the actor nothing.
func (s *service) Export(ctx context.Context, actor features.Actor, resumeID uuid.UUID, format enums.ExportFormat) (*Artifact, error) {
	if !format.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	resume, err := s.resumes.GetByID(ctx, actor.UserID, resumeID)
	if err != nil {
		return nil, err
	}

	feature := format.FeatureName()
	if err := s.gate.Check(ctx, actor, feature).Refusal(); err != nil {
		return nil, err
	}

	data, err := s.render(ctx, format, resume)
	if err != nil {
		s.incExport(format, "error")
		return nil, err
	}

	if err := s.gate.Consume(ctx, actor, feature); err != nil {
		return nil, err
	}
	s.incExport(format, "ok")

	return &Artifact{
		Filename:    fmt.Sprintf("resume-%s.%s", resume.ID, format.Extension()),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

func (s *service) render(ctx context.Context, format enums.ExportFormat, resume *resumes.ResumeDTO) ([]byte, error) {
	switch format {
	case enums.ExportFormatPDF:
		html, err := RenderHTML(resume.Document, resume.Title)
		if err != nil {
			return nil, err
		}
		return s.pdf.RenderPDF(ctx, html)
	case enums.ExportFormatDOCX:
		return RenderDOCX(resume.Document, resume.Title)
	case enums.ExportFormatODF:
		return RenderODT(resume.Document, resume.Title)
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported export format %q", format))
}

func (s *service) incExport(format enums.ExportFormat, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncExport(string(format), outcome)
}
