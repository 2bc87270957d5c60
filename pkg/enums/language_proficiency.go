package enums

import "fmt"

// LanguageProficiency grades a resume language entry.
type LanguageProficiency string

const (
	LanguageProficiencyBasic          LanguageProficiency = "Basic"
	LanguageProficiencyConversational LanguageProficiency = "Conversational"
	LanguageProficiencyFluent         LanguageProficiency = "Fluent"
	LanguageProficiencyNative         LanguageProficiency = "Native"
)

var validLanguageProficiencies = []LanguageProficiency{
	LanguageProficiencyBasic,
	LanguageProficiencyConversational,
	LanguageProficiencyFluent,
	LanguageProficiencyNative,
}

// String implements fmt.Stringer.
func (p LanguageProficiency) String() string {
	return string(p)
}

// IsValid reports whether the value is a known LanguageProficiency.
func (p LanguageProficiency) IsValid() bool {
	for _, candidate := range validLanguageProficiencies {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseLanguageProficiency converts raw input into a LanguageProficiency.
func ParseLanguageProficiency(value string) (LanguageProficiency, error) {
	for _, candidate := range validLanguageProficiencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid language proficiency %q", value)
}
