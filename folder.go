package gdl

import (
	"context"
	"path/filepath"
	"strings"

	getfilelist "github.com/tanaikech/go-getfilelist"
)

const appsScriptMime = "application/vnd.google-apps.script"

// DownloadFolder downloads every file in a shared folder into outputDir,
// recreating the folder tree. Requires Config.APIKey; Apps Script files
// are skipped because the API key cannot fetch them. Returns the number
// of files downloaded.
func (c *Client) DownloadFolder(ctx context.Context, folderURL, outputDir string) (int, error) {
	link, err := ParseLink(folderURL)
	if err != nil {
		return 0, err
	}
	if !link.IsFolder() {
		return 0, &URLError{URL: folderURL, Reason: "not a shared folder link"}
	}
	srv, err := c.driveService(ctx)
	if err != nil {
		return 0, err
	}
	fileList, err := getfilelist.Folder(link.FileID).Do(srv)
	if err != nil {
		return 0, err
	}
	c.log.Infow("downloading folder",
		"name", fileList.SearchedFolder.Name,
		"files", fileList.TotalNumberOfFiles,
		"folders", fileList.TotalNumberOfFolders,
	)

	idToName := map[string]string{}
	seenDirs := map[string]bool{}
	for i, id := range fileList.FolderTree.Folders {
		idToName[id] = uniqueName(seenDirs, fileList.FolderTree.Names[i])
	}

	count := 0
	for _, set := range fileList.FileList {
		dir := outputDir
		for _, folderID := range set.FolderTree {
			if name, ok := idToName[folderID]; ok {
				dir = filepath.Join(dir, name)
			}
		}
		if err := ensureDir(dir); err != nil {
			return count, err
		}
		seenFiles := map[string]bool{}
		for _, f := range set.Files {
			select {
			case <-ctx.Done():
				return count, ctx.Err()
			default:
			}
			if f.MimeType == appsScriptMime {
				c.log.Warnw("skipping Apps Script file, not downloadable with an API key", "name", f.Name)
				continue
			}
			dest := filepath.Join(dir, uniqueName(seenFiles, exportName(f.Name, f.MimeType)))
			if fileExists(dest) {
				c.log.Infow("skipping existing file", "path", dest)
				continue
			}
			if err := c.downloadDriveFile(ctx, f, dest, false); err != nil {
				c.log.Errorw("skipped", "name", f.Name, "id", f.Id, "error", err)
				continue
			}
			count++
		}
	}
	c.log.Infow("folder download completed", "downloaded", count)
	return count, nil
}

// exportName appends the export extension to google-apps files that
// carry no extension of their own.
func exportName(name, mimeType string) string {
	if !strings.HasPrefix(mimeType, "application/vnd.google-apps") {
		return name
	}
	if filepath.Ext(name) != "" {
		return name
	}
	if exported, ok := exportMime[mimeType]; ok {
		return name + mimeToExt[exported]
	}
	return name
}
