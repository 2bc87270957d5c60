package enums

import "fmt"

// ExportFormat names a downloadable resume artifact format.
type ExportFormat string

const (
	ExportFormatPDF  ExportFormat = "pdf"
	ExportFormatDOCX ExportFormat = "docx"
	ExportFormatODF  ExportFormat = "odf"
)

var validExportFormats = []ExportFormat{
	ExportFormatPDF,
	ExportFormatDOCX,
	ExportFormatODF,
}

// String implements fmt.Stringer.
func (f ExportFormat) String() string {
	return string(f)
}

// IsValid reports whether the value is a known ExportFormat.
func (f ExportFormat) IsValid() bool {
	for _, candidate := range validExportFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseExportFormat converts raw input into an ExportFormat.
func ParseExportFormat(value string) (ExportFormat, error) {
	for _, candidate := range validExportFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export format %q", value)
}

// Extension returns the file extension used for download filenames.
func (f ExportFormat) Extension() string {
	if f == ExportFormatODF {
		return "odt"
	}
	return string(f)
}

// ContentType returns the MIME type served for the rendered artifact.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatPDF:
		return "application/pdf"
	case ExportFormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ExportFormatODF:
		return "application/vnd.oasis.opendocument.text"
	}
	return "application/octet-stream"
}

// FeatureName returns the feature flag guarding this format.
func (f ExportFormat) FeatureName() string {
	switch f {
	case ExportFormatPDF:
		return "pdfDownload"
	case ExportFormatDOCX:
		return "docxDownload"
	case ExportFormatODF:
		return "odfDownload"
	}
	return ""
}
