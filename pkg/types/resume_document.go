package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	"github.com/google/uuid"
)

// UntitledResume is the title fallback when neither a title nor a name is set.
const UntitledResume = "Untitled Resume"

// PersonalInfo is the contact block of a resume document.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Website   string `json:"website,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// Experience is one employment entry with an ordered achievements list.
type Experience struct {
	ID           uuid.UUID `json:"id"`
	Company      string    `json:"company"`
	Position     string    `json:"position"`
	StartDate    string    `json:"startDate,omitempty"`
	EndDate      string    `json:"endDate,omitempty"`
	IsCurrent    bool      `json:"isCurrent"`
	Description  string    `json:"description,omitempty"`
	Achievements []string  `json:"achievements"`
}

// Education is one education entry.
type Education struct {
	ID           uuid.UUID `json:"id"`
	Institution  string    `json:"institution"`
	Degree       string    `json:"degree"`
	FieldOfStudy string    `json:"fieldOfStudy,omitempty"`
	StartDate    string    `json:"startDate,omitempty"`
	EndDate      string    `json:"endDate,omitempty"`
	Description  string    `json:"description,omitempty"`
}

// Skill is one graded skill entry.
type Skill struct {
	ID    uuid.UUID        `json:"id"`
	Name  string           `json:"name"`
	Level enums.SkillLevel `json:"level,omitempty"`
}

// Certification is one credential entry.
type Certification struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Issuer         string    `json:"issuer,omitempty"`
	Date           string    `json:"date,omitempty"`
	ExpirationDate string    `json:"expirationDate,omitempty"`
	CredentialID   string    `json:"credentialId,omitempty"`
	URL            string    `json:"url,omitempty"`
}

// Project is one project entry with an ordered technologies list.
type Project struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Technologies []string  `json:"technologies"`
	URL          string    `json:"url,omitempty"`
	StartDate    string    `json:"startDate,omitempty"`
	EndDate      string    `json:"endDate,omitempty"`
}

// Language is one spoken-language entry.
type Language struct {
	ID          uuid.UUID                 `json:"id"`
	Name        string                    `json:"name"`
	Proficiency enums.LanguageProficiency `json:"proficiency,omitempty"`
}

// CustomSection is a user-defined free-text block.
type CustomSection struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content,omitempty"`
}

// DesignSettings holds the visual configuration applied at render time.
type DesignSettings struct {
	TemplateTag string `json:"templateTag,omitempty"`
	FontFamily  string `json:"fontFamily,omitempty"`
	FontSize    int    `json:"fontSize,omitempty"`
	ColorTheme  string `json:"colorTheme,omitempty"`
	Layout      string `json:"layout,omitempty"`
}

// ResumeDocument is the full client-owned document stored as one JSONB value.
// The document is replaced wholesale on every update; the server never
// patches individual sections.
type ResumeDocument struct {
	PersonalInfo      PersonalInfo        `json:"personalInfo"`
	SectionOrder      []enums.SectionName `json:"sectionOrder"`
	Experience        []Experience        `json:"experience"`
	Education         []Education         `json:"education"`
	Skills            []Skill             `json:"skills"`
	Projects          []Project           `json:"projects"`
	Certifications    []Certification     `json:"certifications"`
	Languages         []Language          `json:"languages"`
	CustomSections    []CustomSection     `json:"customSections"`
	DesignSettings    DesignSettings      `json:"designSettings"`
	SectionsCompleted map[string]bool     `json:"sectionsCompleted,omitempty"`
}

// NewResumeDocument returns an empty document with the default section order.
func NewResumeDocument() ResumeDocument {
	return ResumeDocument{
		SectionOrder:   enums.DefaultSectionOrder(),
		Experience:     []Experience{},
		Education:      []Education{},
		Skills:         []Skill{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Languages:      []Language{},
		CustomSections: []CustomSection{},
	}
}

// DisplayTitle resolves the never-empty title invariant: an explicit title
// wins, then the trimmed name concatenation, then the literal placeholder.
func (d ResumeDocument) DisplayTitle(explicit string) string {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return trimmed
	}
	name := strings.TrimSpace(d.PersonalInfo.FirstName + " " + d.PersonalInfo.LastName)
	if name != "" {
		return name
	}
	return UntitledResume
}

func (d ResumeDocument) Value() (driver.Value, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("resume document: marshal: %w", err)
	}
	return string(raw), nil
}

func (d *ResumeDocument) Scan(value any) error {
	if value == nil {
		*d = NewResumeDocument()
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("resume document: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*d = NewResumeDocument()
		return nil
	}
	return json.Unmarshal(raw, d)
}
