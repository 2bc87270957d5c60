package resumes

import (
	"fmt"

	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
	"github.com/google/uuid"
)

// Section editor operations. Every operation is copy-on-write: the input
// document is never mutated and each container on the touched path is a fresh
// allocation, so callers holding the old value keep a consistent snapshot.
// Items are addressed by the UUID assigned at creation, never by position.

// AddItem appends a default-initialized record to the named section and
// returns the new document along with the generated item ID.
func AddItem(doc types.ResumeDocument, section enums.SectionName) (types.ResumeDocument, uuid.UUID, error) {
	id := uuid.New()
	switch section {
	case enums.SectionExperience:
		doc.Experience = append(cloneSlice(doc.Experience), types.Experience{ID: id, Achievements: []string{}})
	case enums.SectionEducation:
		doc.Education = append(cloneSlice(doc.Education), types.Education{ID: id})
	case enums.SectionSkills:
		doc.Skills = append(cloneSlice(doc.Skills), types.Skill{ID: id})
	case enums.SectionProjects:
		doc.Projects = append(cloneSlice(doc.Projects), types.Project{ID: id, Technologies: []string{}})
	case enums.SectionCertifications:
		doc.Certifications = append(cloneSlice(doc.Certifications), types.Certification{ID: id})
	case enums.SectionLanguages:
		doc.Languages = append(cloneSlice(doc.Languages), types.Language{ID: id})
	case enums.SectionCustom:
		doc.CustomSections = append(cloneSlice(doc.CustomSections), types.CustomSection{ID: id})
	default:
		return doc, uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown section %q", section))
	}
	return doc, id, nil
}

// RemoveItem deletes the record with the given ID from the named section,
// shifting subsequent records down.
func RemoveItem(doc types.ResumeDocument, section enums.SectionName, itemID uuid.UUID) (types.ResumeDocument, error) {
	removed := false
	switch section {
	case enums.SectionExperience:
		doc.Experience, removed = removeByID(doc.Experience, itemID, func(e types.Experience) uuid.UUID { return e.ID })
	case enums.SectionEducation:
		doc.Education, removed = removeByID(doc.Education, itemID, func(e types.Education) uuid.UUID { return e.ID })
	case enums.SectionSkills:
		doc.Skills, removed = removeByID(doc.Skills, itemID, func(s types.Skill) uuid.UUID { return s.ID })
	case enums.SectionProjects:
		doc.Projects, removed = removeByID(doc.Projects, itemID, func(p types.Project) uuid.UUID { return p.ID })
	case enums.SectionCertifications:
		doc.Certifications, removed = removeByID(doc.Certifications, itemID, func(c types.Certification) uuid.UUID { return c.ID })
	case enums.SectionLanguages:
		doc.Languages, removed = removeByID(doc.Languages, itemID, func(l types.Language) uuid.UUID { return l.ID })
	case enums.SectionCustom:
		doc.CustomSections, removed = removeByID(doc.CustomSections, itemID, func(c types.CustomSection) uuid.UUID { return c.ID })
	default:
		return doc, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown section %q", section))
	}
	if !removed {
		return doc, itemNotFound(section, itemID)
	}
	return doc, nil
}

// UpdateItem replaces one field of the record with the given ID. Field names
// match the document's JSON keys.
func UpdateItem(doc types.ResumeDocument, section enums.SectionName, itemID uuid.UUID, field string, value any) (types.ResumeDocument, error) {
	switch section {
	case enums.SectionExperience:
		items := cloneSlice(doc.Experience)
		idx := indexByID(items, itemID, func(e types.Experience) uuid.UUID { return e.ID })
		if idx < 0 {
			return doc, itemNotFound(section, itemID)
		}
		if err := setExperienceField(&items[idx], field, value); err != nil {
			return doc, err
		}
		doc.Experience = items
	case enums.SectionEducation:
		items := cloneSlice(doc.Education)
		idx := indexByID(items, itemID, func(e types.Education) uuid.UUID { return e.ID })
		if idx < 0 {
			return doc, itemNotFound(section, itemID)
		}
		if err := setEducationField(&items[idx], field, value); err != nil {
			return doc, err
		}
		doc.Education = items
	case enums.SectionSkills:
		items := cloneSlice(doc.Skills)
		idx := indexByID(items, itemID, func(s types.Skill) uuid.UUID { return s.ID })
		if idx < 0 {
			return doc, itemNotFound(section, itemID)
		}
		if err := setSkillField(&items[idx], field, value); err != nil {
			return doc, err
		}
		doc.Skills = items
	case enums.SectionProjects:
		items := cloneSlice(doc.Projects)
		idx := indexByID(items, itemID, func(p types.Project) uuid.UUID { return p.ID })
		if idx < 0 {
			return doc, itemNotFound(section, itemID)
		}
		if err := setProjectField(&items[idx], field, value); err != nil {
			return doc, err
		}
		doc.Projects = items
	case enums.SectionCertifications:
		items := cloneSlice(doc.Certifications)
		idx := indexByID(items, itemID, func(c types.Certification) uuid.UUID { return c.ID })
		if idx < 0 {
			return doc, itemNotFound(section, itemID)
		}
		if err := setCertificationField(&items[idx], field, value); err != nil {
			return doc, err
		}
		doc.Certifications = items
	case enums.SectionLanguages:
		items := cloneSlice(doc.Languages)
		idx := indexByID(items, itemID, func(l types.Language) uuid.UUID { return l.ID })
		if idx < 0 {
			return doc, itemNotFound(section, itemID)
		}
		if err := setLanguageField(&items[idx], field, value); err != nil {
			return doc, err
		}
		doc.Languages = items
	case enums.SectionCustom:
		items := cloneSlice(doc.CustomSections)
		idx := indexByID(items, itemID, func(c types.CustomSection) uuid.UUID { return c.ID })
		if idx < 0 {
			return doc, itemNotFound(section, itemID)
		}
		if err := setCustomSectionField(&items[idx], field, value); err != nil {
			return doc, err
		}
		doc.CustomSections = items
	default:
		return doc, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown section %q", section))
	}
	return doc, nil
}

// MoveSection splices the section-order entry at fromIndex out and reinserts
// it at toIndex. Display order only; section contents are untouched.
func MoveSection(doc types.ResumeDocument, fromIndex, toIndex int) (types.ResumeDocument, error) {
	order := doc.SectionOrder
	if fromIndex < 0 || fromIndex >= len(order) || toIndex < 0 || toIndex >= len(order) {
		return doc, pkgerrors.New(pkgerrors.CodeValidation, "section index out of range")
	}
	if fromIndex == toIndex {
		return doc, nil
	}

	next := make([]enums.SectionName, 0, len(order))
	next = append(next, order[:fromIndex]...)
	next = append(next, order[fromIndex+1:]...)

	moved := order[fromIndex]
	next = append(next[:toIndex], append([]enums.SectionName{moved}, next[toIndex:]...)...)
	doc.SectionOrder = next
	return doc, nil
}

// AddAchievement appends a free-text achievement to the given experience.
func AddAchievement(doc types.ResumeDocument, experienceID uuid.UUID, text string) (types.ResumeDocument, error) {
	return mutateAchievements(doc, experienceID, func(list []string) ([]string, error) {
		return append(list, text), nil
	})
}

// UpdateAchievement replaces the achievement at childIndex.
func UpdateAchievement(doc types.ResumeDocument, experienceID uuid.UUID, childIndex int, text string) (types.ResumeDocument, error) {
	return mutateAchievements(doc, experienceID, func(list []string) ([]string, error) {
		if childIndex < 0 || childIndex >= len(list) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "achievement index out of range")
		}
		list[childIndex] = text
		return list, nil
	})
}

// RemoveAchievement deletes the achievement at childIndex.
func RemoveAchievement(doc types.ResumeDocument, experienceID uuid.UUID, childIndex int) (types.ResumeDocument, error) {
	return mutateAchievements(doc, experienceID, func(list []string) ([]string, error) {
		if childIndex < 0 || childIndex >= len(list) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "achievement index out of range")
		}
		return append(list[:childIndex], list[childIndex+1:]...), nil
	})
}

// AddTechnology appends a technology entry to the given project.
func AddTechnology(doc types.ResumeDocument, projectID uuid.UUID, text string) (types.ResumeDocument, error) {
	return mutateTechnologies(doc, projectID, func(list []string) ([]string, error) {
		return append(list, text), nil
	})
}

// UpdateTechnology replaces the technology at childIndex.
func UpdateTechnology(doc types.ResumeDocument, projectID uuid.UUID, childIndex int, text string) (types.ResumeDocument, error) {
	return mutateTechnologies(doc, projectID, func(list []string) ([]string, error) {
		if childIndex < 0 || childIndex >= len(list) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "technology index out of range")
		}
		list[childIndex] = text
		return list, nil
	})
}

// RemoveTechnology deletes the technology at childIndex.
func RemoveTechnology(doc types.ResumeDocument, projectID uuid.UUID, childIndex int) (types.ResumeDocument, error) {
	return mutateTechnologies(doc, projectID, func(list []string) ([]string, error) {
		if childIndex < 0 || childIndex >= len(list) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "technology index out of range")
		}
		return append(list[:childIndex], list[childIndex+1:]...), nil
	})
}

func mutateAchievements(doc types.ResumeDocument, experienceID uuid.UUID, fn func([]string) ([]string, error)) (types.ResumeDocument, error) {
	items := cloneSlice(doc.Experience)
	idx := indexByID(items, experienceID, func(e types.Experience) uuid.UUID { return e.ID })
	if idx < 0 {
		return doc, itemNotFound(enums.SectionExperience, experienceID)
	}
	next, err := fn(cloneSlice(items[idx].Achievements))
	if err != nil {
		return doc, err
	}
	items[idx].Achievements = next
	doc.Experience = items
	return doc, nil
}

func mutateTechnologies(doc types.ResumeDocument, projectID uuid.UUID, fn func([]string) ([]string, error)) (types.ResumeDocument, error) {
	items := cloneSlice(doc.Projects)
	idx := indexByID(items, projectID, func(p types.Project) uuid.UUID { return p.ID })
	if idx < 0 {
		return doc, itemNotFound(enums.SectionProjects, projectID)
	}
	next, err := fn(cloneSlice(items[idx].Technologies))
	if err != nil {
		return doc, err
	}
	items[idx].Technologies = next
	doc.Projects = items
	return doc, nil
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func indexByID[T any](items []T, id uuid.UUID, idOf func(T) uuid.UUID) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func removeByID[T any](items []T, id uuid.UUID, idOf func(T) uuid.UUID) ([]T, bool) {
	idx := indexByID(items, id, idOf)
	if idx < 0 {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	return out, true
}

func itemNotFound(section enums.SectionName, id uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no %s item with id %s", section, id))
}
