/*
Package gdl downloads shared files from Google Drive.

Shared files on Google Drive can be downloaded without authorization, but
large files (about 40 MB and up) are served behind an interstitial page
because Google cannot scan them for viruses. Downloading such a file takes
two requests: the first retrieves a confirmation token, the second fetches
the file using that token. This package handles the whole dance, streams
the response body to disk with a progress bar, retries transient network
failures, and can resume an interrupted download with a Range request.

Quick usage:

	err := gdl.Download("https://drive.google.com/file/d/FILE_ID/view", "output.pdf")

For more control:

	client, err := gdl.New(nil)
	if err != nil {
		log.Fatal(err)
	}
	res, err := client.DownloadFile(ctx, url, "output.pdf", &gdl.Options{Resume: true})

Google Docs, Sheets and Slides links are exported rather than downloaded;
the export format is taken from the output file extension or from
Options.Format.

With an API key (GDL_API_KEY or Config.APIKey) the client can also report
file metadata and download every file in a shared folder.

The companion command is gdlcli, see cmd/gdlcli.
*/
package gdl
