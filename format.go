package gdl

import (
	"path/filepath"
	"strings"
)

// extToFormat maps output file extensions to Docs export formats.
var extToFormat = map[string]string{
	".pdf":  "pdf",
	".docx": "docx",
	".doc":  "docx",
	".xlsx": "xlsx",
	".xls":  "xlsx",
	".csv":  "csv",
	".tsv":  "tsv",
	".pptx": "pptx",
	".ppt":  "pptx",
	".txt":  "txt",
	".html": "html",
	".odt":  "odt",
	".ods":  "ods",
	".odp":  "odp",
	".rtf":  "rtf",
	".epub": "epub",
}

// formatToExt is the reverse map used for fallback filenames.
var formatToExt = map[string]string{
	"pdf":  ".pdf",
	"docx": ".docx",
	"xlsx": ".xlsx",
	"pptx": ".pptx",
	"csv":  ".csv",
	"tsv":  ".tsv",
	"txt":  ".txt",
	"html": ".html",
	"odt":  ".odt",
	"ods":  ".ods",
	"odp":  ".odp",
	"rtf":  ".rtf",
	"epub": ".epub",
}

// Export MIME types for google-apps files fetched through the Drive API.
var exportMime = map[string]string{
	"application/vnd.google-apps.document":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.google-apps.spreadsheet":  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.google-apps.presentation": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"application/vnd.google-apps.drawing":      "image/png",
}

var mimeToExt = map[string]string{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   ".docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         ".xlsx",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
	"image/png": ".png",
}

// FormatFromPath infers a Docs export format from the extension of the
// output path. Returns "" when the extension is unknown.
func FormatFromPath(path string) string {
	return extToFormat[strings.ToLower(filepath.Ext(path))]
}

// resolveExportFormat turns the user-supplied format into a concrete one
// for the given link kind. Empty defaults to pdf; the shorthand "ms"
// selects the matching Office format.
func resolveExportFormat(kind, format string) string {
	switch format {
	case "":
		return "pdf"
	case "ms":
		switch kind {
		case KindSpreadsheets:
			return "xlsx"
		case KindDocument:
			return "docx"
		case KindPresentation:
			return "pptx"
		}
	}
	return format
}

// extensionForFormat returns the file extension for a fallback filename.
func extensionForFormat(format string) string {
	if ext, ok := formatToExt[format]; ok {
		return ext
	}
	return ".bin"
}
