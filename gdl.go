package gdl

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Options control a single download.
type Options struct {
	// Format is the export format for Docs, Sheets and Slides links
	// (pdf, docx, xlsx, ...). Empty means: infer from the output
	// extension, falling back to pdf. Ignored for plain files.
	Format string

	// Resume continues an interrupted download by sending a Range
	// request for the bytes past the existing partial file.
	Resume bool

	// AutoName treats the output argument as a directory and names the
	// file after the Content-Disposition response header, falling back
	// to the file ID.
	AutoName bool

	// NoProgress suppresses the progress bar.
	NoProgress bool
}

// Result describes a finished download.
type Result struct {
	Path        string
	Size        int64
	ContentType string
	Duration    time.Duration
}

// Client is a configured Google Drive downloader. It is safe for
// sequential reuse across many downloads; the underlying HTTP client
// retries transient failures with exponential backoff.
type Client struct {
	cfg *Config
	hc  *http.Client
	log *zap.SugaredLogger
}

// New builds a Client. A nil cfg selects DefaultConfig.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		// A total client timeout would abort long transfers, so only the
		// wait for response headers is bounded.
		ResponseHeaderTimeout: cfg.Timeout,
	}
	if !cfg.VerifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.Logger = nil
	rc.HTTPClient = &http.Client{Jar: jar, Transport: transport}

	return &Client{cfg: cfg, hc: rc.StandardClient(), log: log}, nil
}

// Download fetches a single shared file with default settings. It is the
// shortest way to use the package.
func Download(rawURL, output string) error {
	c, err := New(nil)
	if err != nil {
		return err
	}
	_, err = c.DownloadFile(context.Background(), rawURL, output, nil)
	return err
}

// DownloadFile downloads the file behind a share link to output. See
// Options for export formats, resuming and automatic naming.
func (c *Client) DownloadFile(ctx context.Context, rawURL, output string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	link, err := ParseLink(rawURL)
	if err != nil {
		return nil, err
	}
	if link.IsFolder() {
		return nil, &URLError{URL: rawURL, Reason: "folder links must go through DownloadFolder"}
	}

	format := opts.Format
	if link.IsDocs() {
		if format == "" {
			format = FormatFromPath(output)
		}
		format = resolveExportFormat(link.Kind, format)
	}
	dlURL := link.DownloadURL(format)
	c.log.Debugw("resolved share link", "id", link.FileID, "kind", link.Kind, "url", dlURL)

	return c.downloadFromURL(ctx, dlURL, link, format, output, opts)
}

// downloadFromURL runs the request/confirm/save pipeline against an
// already-resolved direct URL.
func (c *Client) downloadFromURL(ctx context.Context, dlURL string, link *Link, format, output string, opts *Options) (*Result, error) {
	var offset int64
	if opts.Resume && output != "" && !opts.AutoName {
		if fi, err := os.Stat(output); err == nil {
			offset = fi.Size()
			c.log.Infow("resuming download", "path", output, "offset", offset)
		}
	}

	start := time.Now()
	res, err := c.fetch(ctx, dlURL, offset)
	if err != nil {
		return nil, &DownloadError{FileID: link.FileID, Err: err}
	}
	res, err = c.resolveConfirmation(ctx, res, link, offset)
	if err != nil {
		return nil, &DownloadError{FileID: link.FileID, Err: err}
	}

	switch res.StatusCode {
	case http.StatusOK:
		// Server ignored the Range header; start over from byte zero.
		offset = 0
	case http.StatusPartialContent:
	default:
		res.Body.Close()
		return nil, &DownloadError{FileID: link.FileID, Err: fmt.Errorf("unexpected status %s", res.Status)}
	}
	defer res.Body.Close()

	dest := output
	if opts.AutoName {
		name := filenameFromResponse(res)
		if name == "" {
			name = link.FileID + extensionForFormat(format)
			c.log.Debugw("no filename in response, using fallback", "name", name)
		}
		dest = filepath.Join(output, name)
	}
	if dest == "" {
		return nil, &DownloadError{FileID: link.FileID, Err: fmt.Errorf("no output path given")}
	}
	if c.cfg.AutoCreateDirs {
		if err := ensureDir(filepath.Dir(dest)); err != nil {
			return nil, &DownloadError{FileID: link.FileID, Err: err}
		}
	}

	size, err := c.save(res, dest, offset, opts.NoProgress)
	if err != nil {
		return nil, &DownloadError{FileID: link.FileID, Err: err}
	}
	result := &Result{
		Path:        dest,
		Size:        size,
		ContentType: res.Header.Get("Content-Type"),
		Duration:    time.Since(start),
	}
	c.log.Infow("download completed", "path", result.Path, "bytes", result.Size)
	return result, nil
}

// fetch issues a GET with the browser User-Agent and an optional Range
// offset.
func (c *Client) fetch(ctx context.Context, rawURL string, offset int64) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}
	return c.hc.Do(req)
}

// save streams the response body to dest, appending after offset bytes
// on a partial-content response.
func (c *Client) save(res *http.Response, dest string, offset int64, quiet bool) (int64, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	appending := offset > 0 && res.StatusCode == http.StatusPartialContent
	if appending {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(dest, flags, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	total := res.ContentLength
	if appending && total > 0 {
		total += offset
	}
	var w io.Writer = f
	if !quiet {
		bar := newProgressBar(total, filepath.Base(dest))
		if appending {
			_ = bar.Set64(offset)
		}
		defer bar.Close()
		w = io.MultiWriter(f, bar)
	}

	buf := make([]byte, c.cfg.ChunkSize)
	n, err := io.CopyBuffer(w, res.Body, buf)
	if err != nil {
		return n, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if appending {
		n += offset
	}
	return n, nil
}

// filenameFromResponse extracts the filename from the
// Content-Disposition header. Returns "" when absent or unparsable.
func filenameFromResponse(res *http.Response) string {
	cd := res.Header.Get("Content-Disposition")
	if cd == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return ""
	}
	// Base guards against names trying to escape the output directory.
	if name := params["filename"]; name != "" {
		return filepath.Base(name)
	}
	return ""
}
