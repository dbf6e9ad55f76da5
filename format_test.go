package gdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFromPath(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"report.pdf", "pdf"},
		{"data.XLSX", "xlsx"},
		{"old.doc", "docx"},
		{"slides.ppt", "pptx"},
		{"notes.txt", "txt"},
		{"book.epub", "epub"},
		{"archive.zip", ""},
		{"noextension", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatFromPath(tc.path))
		})
	}
}

func TestResolveExportFormat(t *testing.T) {
	testCases := []struct {
		name   string
		kind   string
		format string
		want   string
	}{
		{"empty defaults to pdf", KindDocument, "", "pdf"},
		{"ms shorthand for sheets", KindSpreadsheets, "ms", "xlsx"},
		{"ms shorthand for docs", KindDocument, "ms", "docx"},
		{"ms shorthand for slides", KindPresentation, "ms", "pptx"},
		{"explicit format passes through", KindDocument, "odt", "odt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolveExportFormat(tc.kind, tc.format))
		})
	}
}

func TestExtensionForFormat(t *testing.T) {
	assert.Equal(t, ".pdf", extensionForFormat("pdf"))
	assert.Equal(t, ".xlsx", extensionForFormat("xlsx"))
	assert.Equal(t, ".bin", extensionForFormat(""))
	assert.Equal(t, ".bin", extensionForFormat("mystery"))
}
