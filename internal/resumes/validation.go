package resumes

import (
	"fmt"
	"strings"

	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
)

// ValidateDocument runs the minimal pre-save checks and returns a map of
// field path to message. An empty map means the document may be saved.
// Validation never fails the request by itself; callers decide whether the
// returned problems block the operation.
func ValidateDocument(doc types.ResumeDocument) map[string]string {
	problems := map[string]string{}

	requireField(problems, "personalInfo.firstName", doc.PersonalInfo.FirstName, "first name is required")
	requireField(problems, "personalInfo.lastName", doc.PersonalInfo.LastName, "last name is required")
	requireField(problems, "personalInfo.email", doc.PersonalInfo.Email, "email is required")
	requireField(problems, "personalInfo.phone", doc.PersonalInfo.Phone, "phone is required")

	for _, exp := range doc.Experience {
		requireField(problems, fmt.Sprintf("experience.%s.company", exp.ID), exp.Company, "company is required")
		requireField(problems, fmt.Sprintf("experience.%s.position", exp.ID), exp.Position, "position is required")
	}
	for _, edu := range doc.Education {
		requireField(problems, fmt.Sprintf("education.%s.institution", edu.ID), edu.Institution, "institution is required")
		requireField(problems, fmt.Sprintf("education.%s.degree", edu.ID), edu.Degree, "degree is required")
	}
	for _, proj := range doc.Projects {
		requireField(problems, fmt.Sprintf("projects.%s.name", proj.ID), proj.Name, "project name is required")
	}

	return problems
}

func requireField(problems map[string]string, path, value, message string) {
	if strings.TrimSpace(value) == "" {
		problems[path] = message
	}
}
