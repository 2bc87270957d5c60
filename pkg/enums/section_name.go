package enums

import "fmt"

// SectionName identifies one named block of a resume document.
type SectionName string

const (
	SectionExperience     SectionName = "experience"
	SectionEducation      SectionName = "education"
	SectionSkills         SectionName = "skills"
	SectionProjects       SectionName = "projects"
	SectionCertifications SectionName = "certifications"
	SectionLanguages      SectionName = "languages"
	SectionCustom         SectionName = "custom"
)

var validSectionNames = []SectionName{
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
	SectionCustom,
}

// String implements fmt.Stringer.
func (s SectionName) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SectionName.
func (s SectionName) IsValid() bool {
	for _, candidate := range validSectionNames {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSectionName converts raw input into a SectionName.
func ParseSectionName(value string) (SectionName, error) {
	for _, candidate := range validSectionNames {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid section name %q", value)
}

// DefaultSectionOrder is the display order assigned to new resumes.
func DefaultSectionOrder() []SectionName {
	return append([]SectionName(nil), validSectionNames...)
}
