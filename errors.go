package gdl

import (
	"errors"
	"fmt"
)

var (
	// ErrQuotaExceeded is reported when Google refuses the download because
	// too many users have viewed or downloaded the file recently.
	ErrQuotaExceeded = errors.New("download quota for this file is exceeded")

	// ErrNotShared is reported when the file exists but is not shared
	// publicly, so it cannot be fetched without credentials.
	ErrNotShared = errors.New("file is not shared")

	// ErrAPIKeyRequired is reported by operations that need the Drive API,
	// such as folder downloads and file metadata lookups.
	ErrAPIKeyRequired = errors.New("a Google API key is required for this operation")
)

// URLError reports an input URL that is not a usable Google Drive link.
type URLError struct {
	URL    string
	Reason string
}

func (e *URLError) Error() string {
	return fmt.Sprintf("invalid Google Drive URL %q: %s", e.URL, e.Reason)
}

// DownloadError wraps a failure that occurred while transferring a file.
type DownloadError struct {
	FileID string
	Err    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of file %s failed: %v", e.FileID, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }
