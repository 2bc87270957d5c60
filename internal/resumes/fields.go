package resumes

import (
	"fmt"

	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
)

// Field setters for UpdateItem. Field names are the document's JSON keys so
// the same vocabulary works on the wire and in the editor.

func setExperienceField(item *types.Experience, field string, value any) error {
	switch field {
	case "company":
		return assignString(&item.Company, field, value)
	case "position":
		return assignString(&item.Position, field, value)
	case "startDate":
		return assignString(&item.StartDate, field, value)
	case "endDate":
		return assignString(&item.EndDate, field, value)
	case "isCurrent":
		return assignBool(&item.IsCurrent, field, value)
	case "description":
		return assignString(&item.Description, field, value)
	case "achievements":
		return assignStringSlice(&item.Achievements, field, value)
	default:
		return unknownField(enums.SectionExperience, field)
	}
}

func setEducationField(item *types.Education, field string, value any) error {
	switch field {
	case "institution":
		return assignString(&item.Institution, field, value)
	case "degree":
		return assignString(&item.Degree, field, value)
	case "fieldOfStudy":
		return assignString(&item.FieldOfStudy, field, value)
	case "startDate":
		return assignString(&item.StartDate, field, value)
	case "endDate":
		return assignString(&item.EndDate, field, value)
	case "description":
		return assignString(&item.Description, field, value)
	default:
		return unknownField(enums.SectionEducation, field)
	}
}

func setSkillField(item *types.Skill, field string, value any) error {
	switch field {
	case "name":
		return assignString(&item.Name, field, value)
	case "level":
		raw, err := toString(field, value)
		if err != nil {
			return err
		}
		level, err := enums.ParseSkillLevel(raw)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		item.Level = level
		return nil
	default:
		return unknownField(enums.SectionSkills, field)
	}
}

func setProjectField(item *types.Project, field string, value any) error {
	switch field {
	case "name":
		return assignString(&item.Name, field, value)
	case "description":
		return assignString(&item.Description, field, value)
	case "technologies":
		return assignStringSlice(&item.Technologies, field, value)
	case "url":
		return assignString(&item.URL, field, value)
	case "startDate":
		return assignString(&item.StartDate, field, value)
	case "endDate":
		return assignString(&item.EndDate, field, value)
	default:
		return unknownField(enums.SectionProjects, field)
	}
}

func setCertificationField(item *types.Certification, field string, value any) error {
	switch field {
	case "name":
		return assignString(&item.Name, field, value)
	case "issuer":
		return assignString(&item.Issuer, field, value)
	case "date":
		return assignString(&item.Date, field, value)
	case "expirationDate":
		return assignString(&item.ExpirationDate, field, value)
	case "credentialId":
		return assignString(&item.CredentialID, field, value)
	case "url":
		return assignString(&item.URL, field, value)
	default:
		return unknownField(enums.SectionCertifications, field)
	}
}

func setLanguageField(item *types.Language, field string, value any) error {
	switch field {
	case "name":
		return assignString(&item.Name, field, value)
	case "proficiency":
		raw, err := toString(field, value)
		if err != nil {
			return err
		}
		prof, err := enums.ParseLanguageProficiency(raw)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		item.Proficiency = prof
		return nil
	default:
		return unknownField(enums.SectionLanguages, field)
	}
}

func setCustomSectionField(item *types.CustomSection, field string, value any) error {
	switch field {
	case "title":
		return assignString(&item.Title, field, value)
	case "content":
		return assignString(&item.Content, field, value)
	default:
		return unknownField(enums.SectionCustom, field)
	}
}

func assignString(dst *string, field string, value any) error {
	s, err := toString(field, value)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

func assignBool(dst *bool, field string, value any) error {
	b, ok := value.(bool)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q expects a boolean", field))
	}
	*dst = b
	return nil
}

func assignStringSlice(dst *[]string, field string, value any) error {
	switch v := value.(type) {
	case []string:
		*dst = cloneSlice(v)
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q expects a list of strings", field))
			}
			out = append(out, s)
		}
		*dst = out
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q expects a list of strings", field))
	}
}

func toString(field string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q expects a string", field))
	}
	return s, nil
}

func unknownField(section enums.SectionName, field string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("section %s has no field %q", section, field))
}
