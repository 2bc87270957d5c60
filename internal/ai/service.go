package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/carlosmendieta/resumeforge-backend/internal/features"
	"github.com/carlosmendieta/resumeforge-backend/internal/resumes"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
	"github.com/google/uuid"
)

// Feature names consumed by the proxy endpoints.
const (
	FeatureGenerator  = "aiGenerator"
	FeatureATSChecker = "atsChecker"
)

// Generation kinds understood by the AI service.
const (
	kindSummary               = "summary"
	kindExperienceDescription = "experienceDescription"
	kindProjectDescription    = "projectDescription"
)

type textGenerator interface {
	Generate(ctx context.Context, kind string, promptContext map[string]any) (string, error)
	Score(ctx context.Context, document types.ResumeDocument) (int, error)
}

type featureGate interface {
	Check(ctx context.Context, actor features.Actor, name string) features.Status
	Consume(ctx context.Context, actor features.Actor, name string) error
}

type scoreStore interface {
	GetByID(ctx context.Context, userID, id uuid.UUID) (*resumes.ResumeDTO, error)
	SetATSScore(ctx context.Context, userID, id uuid.UUID, score int) error
}

// GenerateSummaryInput seeds the profile summary prompt.
type GenerateSummaryInput struct {
	JobTitle string   `json:"jobTitle" validate:"required"`
	Years    int      `json:"years" validate:"gte=0"`
	Skills   []string `json:"skills"`
}

// GenerateExperienceInput seeds the work experience prompt.
type GenerateExperienceInput struct {
	Company  string `json:"company" validate:"required"`
	Position string `json:"position" validate:"required"`
	Summary  string `json:"summary"`
}

// GenerateProjectInput seeds the project description prompt.
type GenerateProjectInput struct {
	Name         string   `json:"name" validate:"required"`
	Technologies []string `json:"technologies"`
	Summary      string   `json:"summary"`
}

// GeneratedText is the proxy answer: the external service's output verbatim.
type GeneratedText struct {
	Text string `json:"text"`
}

// ATSResult carries the stored score back to the caller.
type ATSResult struct {
	ResumeID uuid.UUID `json:"resumeId"`
	Score    int       `json:"score"`
}

// Service is the feature-gated proxy in front of the AI text endpoints.
type Service interface {
	GenerateSummary(ctx context.Context, actor features.Actor, input GenerateSummaryInput) (*GeneratedText, error)
	GenerateExperienceDescription(ctx context.Context, actor features.Actor, input GenerateExperienceInput) (*GeneratedText, error)
	GenerateProjectDescription(ctx context.Context, actor features.Actor, input GenerateProjectInput) (*GeneratedText, error)
	ScoreResume(ctx context.Context, actor features.Actor, resumeID uuid.UUID) (*ATSResult, error)
}

type service struct {
	ai      textGenerator
	gate    featureGate
	resumes scoreStore
}

// NewService builds the AI proxy service.
func NewService(ai textGenerator, gate featureGate, resumes scoreStore) (Service, error) {
	if ai == nil {
		return nil, fmt.Errorf("ai client required")
	}
	if gate == nil {
		return nil, fmt.Errorf("feature gate required")
	}
	if resumes == nil {
		return nil, fmt.Errorf("resume store required")
	}
	return &service{ai: ai, gate: gate, resumes: resumes}, nil
}

func (s *service) GenerateSummary(ctx context.Context, actor features.Actor, input GenerateSummaryInput) (*GeneratedText, error) {
	return s.generate(ctx, actor, kindSummary, map[string]any{
		"jobTitle": input.JobTitle,
		"years":    input.Years,
		"skills":   strings.Join(input.Skills, ", "),
	})
}

func (s *service) GenerateExperienceDescription(ctx context.Context, actor features.Actor, input GenerateExperienceInput) (*GeneratedText, error) {
	return s.generate(ctx, actor, kindExperienceDescription, map[string]any{
		"company":  input.Company,
		"position": input.Position,
		"summary":  input.Summary,
	})
}

func (s *service) GenerateProjectDescription(ctx context.Context, actor features.Actor, input GenerateProjectInput) (*GeneratedText, error) {
	return s.generate(ctx, actor, kindProjectDescription, map[string]any{
		"name":         input.Name,
		"technologies": strings.Join(input.Technologies, ", "),
		"summary":      input.Summary,
	})
}

// ScoreResume forwards an owned, persisted document to the external scorer
// and stores the result on the resume. The actor's daily allowance is spent
// only once the scorer has answered; an unknown resume or a failed provider
// call costs nothing.
func (s *service) ScoreResume(ctx context.Context, actor features.Actor, resumeID uuid.UUID) (*ATSResult, error) {
	resume, err := s.resumes.GetByID(ctx, actor.UserID, resumeID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Check(ctx, actor, FeatureATSChecker).Refusal(); err != nil {
		return nil, err
	}

	score, err := s.ai.Score(ctx, resume.Document)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Consume(ctx, actor, FeatureATSChecker); err != nil {
		return nil, err
	}
	if err := s.resumes.SetATSScore(ctx, actor.UserID, resumeID, score); err != nil {
		return nil, err
	}
	return &ATSResult{ResumeID: resumeID, Score: score}, nil
}

func (s *service) generate(ctx context.Context, actor features.Actor, kind string, promptContext map[string]any) (*GeneratedText, error) {
	if err := s.gate.Check(ctx, actor, FeatureGenerator).Refusal(); err != nil {
		return nil, err
	}

	text, err := s.ai.Generate(ctx, kind, promptContext)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ai service returned empty text")
	}
	if err := s.gate.Consume(ctx, actor, FeatureGenerator); err != nil {
		return nil, err
	}
	return &GeneratedText{Text: text}, nil
}
