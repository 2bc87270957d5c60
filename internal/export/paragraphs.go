package export

import (
	"strings"

	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
)

// Paragraph styles understood by the word-processor serializers.
const (
	styleTitle   = "title"
	styleHeading = "heading"
	styleSubhead = "subhead"
	styleBody    = "body"
	styleBullet  = "bullet"
)

type paragraph struct {
	Style string
	Text  string
}

// buildParagraphs flattens a document into an ordered paragraph list. The
// same list feeds both the DOCX and the ODT serializer so the two artifacts
// always agree on content and order.
func buildParagraphs(doc types.ResumeDocument, title string) []paragraph {
	out := []paragraph{{Style: styleTitle, Text: title}}

	if line := contactLine(doc.PersonalInfo); line != "" {
		out = append(out, paragraph{Style: styleBody, Text: line})
	}
	if doc.PersonalInfo.Summary != "" {
		out = append(out, paragraph{Style: styleBody, Text: doc.PersonalInfo.Summary})
	}

	for _, section := range doc.SectionOrder {
		out = append(out, sectionParagraphs(doc, section)...)
	}
	return out
}

func contactLine(info types.PersonalInfo) string {
	parts := make([]string, 0, 5)
	for _, v := range []string{info.Email, info.Phone, info.Address, info.LinkedIn, info.Website} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}

func sectionParagraphs(doc types.ResumeDocument, section enums.SectionName) []paragraph {
	switch section {
	case enums.SectionExperience:
		return experienceParagraphs(doc.Experience)
	case enums.SectionEducation:
		return educationParagraphs(doc.Education)
	case enums.SectionSkills:
		return skillParagraphs(doc.Skills)
	case enums.SectionProjects:
		return projectParagraphs(doc.Projects)
	case enums.SectionCertifications:
		return certificationParagraphs(doc.Certifications)
	case enums.SectionLanguages:
		return languageParagraphs(doc.Languages)
	case enums.SectionCustom:
		return customParagraphs(doc.CustomSections)
	}
	return nil
}

func experienceParagraphs(entries []types.Experience) []paragraph {
	if len(entries) == 0 {
		return nil
	}
	out := []paragraph{{Style: styleHeading, Text: "Experience"}}
	for _, e := range entries {
		out = append(out, paragraph{Style: styleSubhead, Text: joinNonEmpty(" — ", e.Position, e.Company)})
		if span := dateSpan(e.StartDate, e.EndDate, e.IsCurrent); span != "" {
			out = append(out, paragraph{Style: styleBody, Text: span})
		}
		if e.Description != "" {
			out = append(out, paragraph{Style: styleBody, Text: e.Description})
		}
		for _, a := range e.Achievements {
			out = append(out, paragraph{Style: styleBullet, Text: a})
		}
	}
	return out
}

func educationParagraphs(entries []types.Education) []paragraph {
	if len(entries) == 0 {
		return nil
	}
	out := []paragraph{{Style: styleHeading, Text: "Education"}}
	for _, e := range entries {
		out = append(out, paragraph{Style: styleSubhead, Text: joinNonEmpty(" — ", joinNonEmpty(", ", e.Degree, e.FieldOfStudy), e.Institution)})
		if span := dateSpan(e.StartDate, e.EndDate, false); span != "" {
			out = append(out, paragraph{Style: styleBody, Text: span})
		}
		if e.Description != "" {
			out = append(out, paragraph{Style: styleBody, Text: e.Description})
		}
	}
	return out
}

func skillParagraphs(entries []types.Skill) []paragraph {
	if len(entries) == 0 {
		return nil
	}
	out := []paragraph{{Style: styleHeading, Text: "Skills"}}
	for _, s := range entries {
		text := s.Name
		if s.Level != "" {
			text += " (" + string(s.Level) + ")"
		}
		out = append(out, paragraph{Style: styleBullet, Text: text})
	}
	return out
}

func projectParagraphs(entries []types.Project) []paragraph {
	if len(entries) == 0 {
		return nil
	}
	out := []paragraph{{Style: styleHeading, Text: "Projects"}}
	for _, p := range entries {
		out = append(out, paragraph{Style: styleSubhead, Text: p.Name})
		if p.Description != "" {
			out = append(out, paragraph{Style: styleBody, Text: p.Description})
		}
		if len(p.Technologies) > 0 {
			out = append(out, paragraph{Style: styleBody, Text: strings.Join(p.Technologies, ", ")})
		}
		if p.URL != "" {
			out = append(out, paragraph{Style: styleBody, Text: p.URL})
		}
	}
	return out
}

func certificationParagraphs(entries []types.Certification) []paragraph {
	if len(entries) == 0 {
		return nil
	}
	out := []paragraph{{Style: styleHeading, Text: "Certifications"}}
	for _, c := range entries {
		out = append(out, paragraph{Style: styleSubhead, Text: joinNonEmpty(" — ", c.Name, c.Issuer)})
		if line := joinNonEmpty(" | ", c.Date, c.CredentialID, c.URL); line != "" {
			out = append(out, paragraph{Style: styleBody, Text: line})
		}
	}
	return out
}

func languageParagraphs(entries []types.Language) []paragraph {
	if len(entries) == 0 {
		return nil
	}
	out := []paragraph{{Style: styleHeading, Text: "Languages"}}
	for _, l := range entries {
		text := l.Name
		if l.Proficiency != "" {
			text += " (" + string(l.Proficiency) + ")"
		}
		out = append(out, paragraph{Style: styleBullet, Text: text})
	}
	return out
}

func customParagraphs(entries []types.CustomSection) []paragraph {
	var out []paragraph
	for _, c := range entries {
		if c.Title == "" && c.Content == "" {
			continue
		}
		out = append(out, paragraph{Style: styleHeading, Text: c.Title})
		if c.Content != "" {
			out = append(out, paragraph{Style: styleBody, Text: c.Content})
		}
	}
	return out
}

func dateSpan(start, end string, current bool) string {
	if start == "" && end == "" && !current {
		return ""
	}
	switch {
	case current:
		end = "Present"
	case end == "":
		end = ""
	}
	if end == "" {
		return start
	}
	if start == "" {
		return end
	}
	return start + " – " + end
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
