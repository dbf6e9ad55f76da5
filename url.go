package gdl

import (
	"net/url"
	"regexp"
)

const (
	downloadBase = "https://drive.google.com/uc?export=download"
	docsBase     = "https://docs.google.com/"
)

// Link kinds, matching the path segment Google uses in share links.
const (
	KindFile         = "file"
	KindDocument     = "document"
	KindSpreadsheets = "spreadsheets"
	KindPresentation = "presentation"
	KindFolder       = "folders"
)

var (
	reSharedItem = regexp.MustCompile(`google\.com/(file|document|spreadsheets|presentation)/d/([a-zA-Z0-9_-]+)`)
	reFolder     = regexp.MustCompile(`google\.com/drive/folders/([a-zA-Z0-9_-]+)`)
	reIDParam    = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
)

// Link is a parsed Google Drive share link.
type Link struct {
	FileID string
	Kind   string
}

// IsDocs reports whether the link points at a Docs, Sheets or Slides
// document, which must be exported instead of downloaded directly.
func (l *Link) IsDocs() bool {
	switch l.Kind {
	case KindDocument, KindSpreadsheets, KindPresentation:
		return true
	}
	return false
}

// IsFolder reports whether the link points at a shared folder.
func (l *Link) IsFolder() bool { return l.Kind == KindFolder }

// DownloadURL builds the direct-download URL for the link. For Docs,
// Sheets and Slides the export endpoint is used; format must already be
// resolved to a concrete export format for those kinds.
func (l *Link) DownloadURL(format string) string {
	if !l.IsDocs() {
		return downloadBase + "&id=" + l.FileID
	}
	if l.Kind == KindPresentation {
		return docsBase + l.Kind + "/d/" + l.FileID + "/export/" + format
	}
	return docsBase + l.Kind + "/d/" + l.FileID + "/export?format=" + format
}

// ValidURL reports whether rawURL points at a Google Drive host at all.
func ValidURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "drive.google.com", "docs.google.com", "drive.usercontent.google.com":
		return true
	}
	return false
}

// ParseLink extracts the file ID and kind from any of the share-link
// shapes Google hands out: /file/d/ID/view, /open?id=ID, /uc?id=ID,
// Docs/Sheets/Slides /d/ID links and /drive/folders/ID links.
func ParseLink(rawURL string) (*Link, error) {
	if !ValidURL(rawURL) {
		return nil, &URLError{URL: rawURL, Reason: "not a drive.google.com or docs.google.com URL"}
	}
	if m := reSharedItem.FindStringSubmatch(rawURL); m != nil {
		return &Link{Kind: m[1], FileID: m[2]}, nil
	}
	if m := reFolder.FindStringSubmatch(rawURL); m != nil {
		return &Link{Kind: KindFolder, FileID: m[1]}, nil
	}
	if m := reIDParam.FindStringSubmatch(rawURL); m != nil {
		return &Link{Kind: KindFile, FileID: m[1]}, nil
	}
	return nil, &URLError{URL: rawURL, Reason: "could not extract a file ID"}
}

// confirmURL builds the second-request URL that carries the confirmation
// token for a large-file download.
func confirmURL(fileID, token string) string {
	return downloadBase + "&confirm=" + url.QueryEscape(token) + "&id=" + fileID
}
