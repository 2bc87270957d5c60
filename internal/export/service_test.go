package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/carlosmendieta/resumeforge-backend/internal/features"
	"github.com/carlosmendieta/resumeforge-backend/internal/resumes"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
)

type stubResumeStore struct {
	resume *resumes.ResumeDTO
}

func (s *stubResumeStore) GetByID(_ context.Context, userID, id uuid.UUID) (*resumes.ResumeDTO, error) {
	if s.resume == nil || s.resume.ID != id || s.resume.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "resume not found")
	}
	return s.resume, nil
}

type stubGate struct {
	closed   bool
	checked  []string
	consumed []string
}

func (s *stubGate) Check(_ context.Context, _ features.Actor, name string) features.Status {
	s.checked = append(s.checked, name)
	return features.Status{FeatureName: name, IsEnabled: !s.closed}
}

func (s *stubGate) Consume(_ context.Context, _ features.Actor, name string) error {
	if s.closed {
		return features.Status{FeatureName: name}.Refusal()
	}
	s.consumed = append(s.consumed, name)
	return nil
}

type stubPDFRenderer struct {
	calls int
	err   error
}

func (s *stubPDFRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if !strings.Contains(html, "<h1>") {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "renderer given incomplete page")
	}
	return []byte("%PDF-1.7 stub"), nil
}

type stubMetrics struct {
	outcomes map[string]string
}

func (s *stubMetrics) IncExport(format, outcome string) {
	if s.outcomes == nil {
		s.outcomes = map[string]string{}
	}
	s.outcomes[format] = outcome
}

func newExportFixture(t *testing.T) (Service, *resumes.ResumeDTO, *stubGate, *stubPDFRenderer, *stubMetrics) {
	t.Helper()
	resume := &resumes.ResumeDTO{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    "Ada Lovelace",
		Document: sampleDocument(),
	}
	gate := &stubGate{}
	renderer := &stubPDFRenderer{}
	recorder := &stubMetrics{}

	svc, err := NewService(&stubResumeStore{resume: resume}, gate, renderer, recorder)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, resume, gate, renderer, recorder
}

func ownerOf(resume *resumes.ResumeDTO) features.Actor {
	return features.Actor{UserID: resume.UserID, Role: enums.UserRoleUser}
}

func TestExportPDFConsumesFeatureAndRenders(t *testing.T) {
	svc, resume, gate, renderer, recorder := newExportFixture(t)

	artifact, err := svc.Export(context.Background(), ownerOf(resume), resume.ID, enums.ExportFormatPDF)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if artifact.Filename != "resume-"+resume.ID.String()+".pdf" {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}
	if artifact.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", artifact.ContentType)
	}
	if !bytes.HasPrefix(artifact.Data, []byte("%PDF")) {
		t.Fatal("expected pdf bytes")
	}
	if renderer.calls != 1 {
		t.Fatalf("expected one render call, got %d", renderer.calls)
	}
	if len(gate.consumed) != 1 || gate.consumed[0] != "pdfDownload" {
		t.Fatalf("unexpected gate consumption %v", gate.consumed)
	}
	if recorder.outcomes["pdf"] != "ok" {
		t.Fatalf("metrics not recorded: %v", recorder.outcomes)
	}
}

func TestExportDOCXWithoutBrowser(t *testing.T) {
	svc, resume, _, renderer, _ := newExportFixture(t)

	artifact, err := svc.Export(context.Background(), ownerOf(resume), resume.ID, enums.ExportFormatDOCX)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(artifact.Filename, ".docx") {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}
	if !bytes.HasPrefix(artifact.Data, []byte("PK")) {
		t.Fatal("expected zip bytes")
	}
	if renderer.calls != 0 {
		t.Fatal("browser should not run for docx")
	}
}

func TestExportODFUsesOdtExtension(t *testing.T) {
	svc, resume, gate, _, _ := newExportFixture(t)

	artifact, err := svc.Export(context.Background(), ownerOf(resume), resume.ID, enums.ExportFormatODF)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(artifact.Filename, ".odt") {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}
	if len(gate.consumed) != 1 || gate.consumed[0] != "odfDownload" {
		t.Fatalf("unexpected gate consumption %v", gate.consumed)
	}
}

func TestExportRefusedWhenGateCloses(t *testing.T) {
	svc, resume, gate, renderer, _ := newExportFixture(t)
	gate.closed = true

	_, err := svc.Export(context.Background(), ownerOf(resume), resume.ID, enums.ExportFormatPDF)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeFeatureDisabled {
		t.Fatalf("expected feature disabled, got %v", err)
	}
	if renderer.calls != 0 {
		t.Fatal("renderer called despite closed gate")
	}
	if len(gate.consumed) != 0 {
		t.Fatal("closed gate must not spend the allowance")
	}
}

func TestExportForeignResumeNotFound(t *testing.T) {
	svc, resume, gate, _, _ := newExportFixture(t)
	stranger := features.Actor{UserID: uuid.New(), Role: enums.UserRoleUser}

	_, err := svc.Export(context.Background(), stranger, resume.ID, enums.ExportFormatDOCX)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(gate.checked) != 0 || len(gate.consumed) != 0 {
		t.Fatal("missing resume must not touch the gate")
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc, resume, gate, _, _ := newExportFixture(t)

	_, err := svc.Export(context.Background(), ownerOf(resume), resume.ID, enums.ExportFormat("txt"))
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(gate.consumed) != 0 {
		t.Fatal("gate consulted for unknown format")
	}
}

func TestExportRenderFailureRecorded(t *testing.T) {
	svc, resume, gate, renderer, recorder := newExportFixture(t)
	renderer.err = pkgerrors.New(pkgerrors.CodeDependency, "browser crashed")

	_, err := svc.Export(context.Background(), ownerOf(resume), resume.ID, enums.ExportFormatPDF)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if recorder.outcomes["pdf"] != "error" {
		t.Fatalf("error outcome not recorded: %v", recorder.outcomes)
	}
	if len(gate.consumed) != 0 {
		t.Fatal("failed render must not spend the allowance")
	}
}
