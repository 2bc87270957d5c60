package export

import (
	"archive/zip"
	"bytes"
	"strings"

	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
)

const odtMimetype = "application/vnd.oasis.opendocument.text"

const odtManifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
<manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.text"/>
<manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
</manifest:manifest>`

// RenderODT packs the document into a minimal ODF text file. The mimetype
// entry must come first and stay uncompressed per the ODF packaging rules.
func RenderODT(doc types.ResumeDocument, title string) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	mimetype, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write odt mimetype")
	}
	if _, err := mimetype.Write([]byte(odtMimetype)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write odt mimetype")
	}

	parts := []struct {
		name string
		body string
	}{
		{"META-INF/manifest.xml", odtManifest},
		{"content.xml", odtContent(buildParagraphs(doc, title))},
	}
	for _, part := range parts {
		f, err := w.Create(part.name)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write odt part")
		}
		if _, err := f.Write([]byte(part.body)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write odt part")
		}
	}
	if err := w.Close(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finish odt package")
	}
	return buf.Bytes(), nil
}

func odtContent(paragraphs []paragraph) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" office:version="1.2"><office:body><office:text>`)
	for _, p := range paragraphs {
		switch p.Style {
		case styleTitle:
			b.WriteString(`<text:h text:outline-level="1">`)
			b.WriteString(escapeXML(p.Text))
			b.WriteString(`</text:h>`)
		case styleHeading:
			b.WriteString(`<text:h text:outline-level="2">`)
			b.WriteString(escapeXML(p.Text))
			b.WriteString(`</text:h>`)
		case styleSubhead:
			b.WriteString(`<text:h text:outline-level="3">`)
			b.WriteString(escapeXML(p.Text))
			b.WriteString(`</text:h>`)
		case styleBullet:
			b.WriteString(`<text:list><text:list-item><text:p>`)
			b.WriteString(escapeXML(p.Text))
			b.WriteString(`</text:p></text:list-item></text:list>`)
		default:
			b.WriteString(`<text:p>`)
			b.WriteString(escapeXML(p.Text))
			b.WriteString(`</text:p>`)
		}
	}
	b.WriteString(`</office:text></office:body></office:document-content>`)
	return b.String()
}
