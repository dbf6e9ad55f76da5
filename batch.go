package gdl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// parseURLList reads one URL per line, skipping blank lines and
// #-comments.
func parseURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// BatchDownload downloads every URL listed in urlsFile into outputDir,
// naming each file after the response headers. Individual failures are
// logged and skipped; the number of successful downloads is returned.
func (c *Client) BatchDownload(ctx context.Context, urlsFile, outputDir, format string) (int, error) {
	f, err := os.Open(urlsFile)
	if err != nil {
		return 0, fmt.Errorf("failed to open URL list: %w", err)
	}
	defer f.Close()

	urls, err := parseURLList(f)
	if err != nil {
		return 0, fmt.Errorf("failed to read URL list: %w", err)
	}
	if err := ensureDir(outputDir); err != nil {
		return 0, err
	}
	c.log.Infow("starting batch download", "urls", len(urls), "dir", outputDir)

	count := 0
	for i, u := range urls {
		select {
		case <-ctx.Done():
			return count, ctx.Err()
		default:
		}
		c.log.Infow("downloading", "index", i+1, "total", len(urls), "url", u)
		res, err := c.DownloadFile(ctx, u, outputDir, &Options{Format: format, AutoName: true})
		if err != nil {
			c.log.Errorw("skipped", "url", u, "error", err)
			continue
		}
		c.log.Infow("saved", "path", res.Path, "bytes", res.Size)
		count++
	}
	c.log.Infow("batch download completed", "downloaded", count, "total", len(urls))
	return count, nil
}
