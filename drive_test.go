package gdl

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	drive "google.golang.org/api/drive/v3"
)

func TestMediaURLPlainFile(t *testing.T) {
	c := newTestClient(t)
	c.cfg.APIKey = "k3y"

	got, err := c.mediaURL(&drive.File{Id: "abc", MimeType: "text/plain"})
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "www.googleapis.com", u.Host)
	assert.Equal(t, "/drive/v3/files/abc", u.Path)
	assert.Equal(t, "media", u.Query().Get("alt"))
	assert.Equal(t, "k3y", u.Query().Get("key"))
}

func TestMediaURLGoogleDoc(t *testing.T) {
	c := newTestClient(t)
	c.cfg.APIKey = "k3y"

	got, err := c.mediaURL(&drive.File{Id: "abc", MimeType: "application/vnd.google-apps.document"})
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "/drive/v3/files/abc/export", u.Path)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		u.Query().Get("mimeType"))
	assert.Empty(t, u.Query().Get("alt"))
}

func TestMediaURLUnsupportedExport(t *testing.T) {
	c := newTestClient(t)
	c.cfg.APIKey = "k3y"

	_, err := c.mediaURL(&drive.File{Id: "abc", MimeType: "application/vnd.google-apps.form"})
	assert.Error(t, err)
}

func TestFileInfoRequiresAPIKey(t *testing.T) {
	c := newTestClient(t)
	_, err := c.FileInfo(context.Background(), "https://drive.google.com/file/d/abc/view")
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}

func TestDownloadFolderRequiresAPIKey(t *testing.T) {
	c := newTestClient(t)
	_, err := c.DownloadFolder(context.Background(), "https://drive.google.com/drive/folders/abc", t.TempDir())
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}

func TestDownloadFolderRejectsFileLink(t *testing.T) {
	c := newTestClient(t)
	_, err := c.DownloadFolder(context.Background(), "https://drive.google.com/file/d/abc/view", t.TempDir())
	var uerr *URLError
	assert.ErrorAs(t, err, &uerr)
}

func TestExportName(t *testing.T) {
	testCases := []struct {
		name     string
		fileName string
		mimeType string
		want     string
	}{
		{"plain file untouched", "photo.jpg", "image/jpeg", "photo.jpg"},
		{"doc gets docx", "Meeting notes", "application/vnd.google-apps.document", "Meeting notes.docx"},
		{"sheet gets xlsx", "Budget", "application/vnd.google-apps.spreadsheet", "Budget.xlsx"},
		{"slides get pptx", "Pitch", "application/vnd.google-apps.presentation", "Pitch.pptx"},
		{"existing extension kept", "Notes.txt", "application/vnd.google-apps.document", "Notes.txt"},
		{"unknown apps type untouched", "Form", "application/vnd.google-apps.form", "Form"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, exportName(tc.fileName, tc.mimeType))
		})
	}
}
