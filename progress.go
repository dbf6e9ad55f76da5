package gdl

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

// newProgressBar builds a byte-counting bar for the transfer. A total of
// -1 (unknown Content-Length) renders a spinner instead.
func newProgressBar(total int64, desc string) *progressbar.ProgressBar {
	if total <= 0 {
		total = -1
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
}

// Summary renders a one-line human-readable description of the result.
func (r *Result) Summary() string {
	size := r.Size
	if size < 0 {
		size = 0
	}
	return fmt.Sprintf("%s (%s) in %s",
		filepath.Base(r.Path),
		humanize.Bytes(uint64(size)),
		r.Duration.Round(100*time.Millisecond))
}
