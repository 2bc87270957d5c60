package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
)

func sampleDocument() types.ResumeDocument {
	doc := types.NewResumeDocument()
	doc.PersonalInfo = types.PersonalInfo{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+44 20 0000 0000",
		Summary:   "Engineer and analyst.",
	}
	doc.Experience = []types.Experience{{
		ID:           uuid.New(),
		Company:      "Analytical Engines Ltd",
		Position:     "Lead Engineer",
		StartDate:    "2021-03",
		IsCurrent:    true,
		Achievements: []string{"Shipped the difference engine", "Mentored two juniors"},
	}}
	doc.Skills = []types.Skill{{ID: uuid.New(), Name: "Go", Level: enums.SkillLevelExpert}}
	doc.CustomSections = []types.CustomSection{{ID: uuid.New(), Title: "Volunteering", Content: "Local CS club"}}
	return doc
}

func TestRenderHTMLContainsSections(t *testing.T) {
	html, err := RenderHTML(sampleDocument(), "Ada Lovelace")
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Ada Lovelace</h1>")
	assert.Contains(t, html, "ada@example.com")
	assert.Contains(t, html, "Analytical Engines Ltd")
	assert.Contains(t, html, "Shipped the difference engine")
	assert.Contains(t, html, "Volunteering")
	assert.Contains(t, html, "Present")
}

func TestRenderHTMLHonorsSectionOrder(t *testing.T) {
	doc := sampleDocument()
	doc.SectionOrder = []enums.SectionName{enums.SectionSkills, enums.SectionExperience}

	html, err := RenderHTML(doc, "Ada Lovelace")
	require.NoError(t, err)

	skillsAt := strings.Index(html, "<h2>Skills</h2>")
	experienceAt := strings.Index(html, "<h2>Experience</h2>")
	require.GreaterOrEqual(t, skillsAt, 0)
	require.GreaterOrEqual(t, experienceAt, 0)
	assert.Less(t, skillsAt, experienceAt)
}

func TestRenderHTMLEscapesUserContent(t *testing.T) {
	doc := sampleDocument()
	doc.PersonalInfo.Summary = `<script>alert("x")</script>`

	html, err := RenderHTML(doc, "Ada Lovelace")
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderDOCXIsAReadableZip(t *testing.T) {
	data, err := RenderDOCX(sampleDocument(), "Ada & Co")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("PK")), "docx should be a zip archive")

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	document := readZipEntry(t, reader, "word/document.xml")
	assert.Contains(t, document, "Ada &amp; Co")
	assert.Contains(t, document, "Analytical Engines Ltd")
	assert.Contains(t, document, "Shipped the difference engine")

	readZipEntry(t, reader, "[Content_Types].xml")
	readZipEntry(t, reader, "_rels/.rels")
}

func TestRenderODTMimetypeFirstAndStored(t *testing.T) {
	data, err := RenderODT(sampleDocument(), "Ada Lovelace")
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.NotEmpty(t, reader.File)

	first := reader.File[0]
	assert.Equal(t, "mimetype", first.Name)
	assert.Equal(t, zip.Store, first.Method)

	assert.Equal(t, odtMimetype, readZipEntry(t, reader, "mimetype"))
	content := readZipEntry(t, reader, "content.xml")
	assert.Contains(t, content, "Analytical Engines Ltd")
	assert.Contains(t, content, "Local CS club")
}

func TestBuildParagraphsFollowsSectionOrder(t *testing.T) {
	doc := sampleDocument()
	doc.SectionOrder = []enums.SectionName{enums.SectionSkills, enums.SectionExperience}

	paragraphs := buildParagraphs(doc, "Ada Lovelace")
	require.NotEmpty(t, paragraphs)
	assert.Equal(t, styleTitle, paragraphs[0].Style)
	assert.Equal(t, "Ada Lovelace", paragraphs[0].Text)

	headings := make([]string, 0, 2)
	for _, p := range paragraphs {
		if p.Style == styleHeading {
			headings = append(headings, p.Text)
		}
	}
	assert.Equal(t, []string{"Skills", "Experience"}, headings)
}

func readZipEntry(t *testing.T, reader *zip.Reader, name string) string {
	t.Helper()
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(body)
	}
	t.Fatalf("zip entry %q missing", name)
	return ""
}
