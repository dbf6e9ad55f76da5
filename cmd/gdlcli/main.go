// Command gdlcli downloads any file from Google Drive.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/mfaeezshabbir/gdl"
)

const version = "1.0.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "gdlcli"
	app.Usage = "Google Drive Loader: download any file from Google Drive"
	app.Version = version
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "Google Drive file or folder `URL` to download",
		},
		&cli.StringFlag{
			Name:    "batch",
			Aliases: []string{"b"},
			Usage:   "`FILE` containing URLs to download, one per line",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file `PATH` for single URL downloads",
		},
		&cli.StringFlag{
			Name:  "output-dir",
			Usage: "output `DIR` for batch, folder and auto-named downloads",
			Value: "./downloads",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "export `FORMAT` for Docs/Sheets/Slides (pdf, xlsx, docx, csv, ...)",
		},
		&cli.BoolFlag{
			Name:    "resume",
			Aliases: []string{"r"},
			Usage:   "resume an interrupted download",
		},
		&cli.BoolFlag{
			Name:  "auto-name",
			Usage: "name the file after the response headers",
		},
		&cli.BoolFlag{
			Name:  "no-progress",
			Usage: "do not show the progress bar",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "custom configuration `FILE` path",
		},
		&cli.StringFlag{
			Name:    "apikey",
			Usage:   "Google API `KEY` for folder downloads and file info (or GDL_API_KEY)",
			EnvVars: []string{"GDL_API_KEY"},
		},
		&cli.BoolFlag{
			Name:    "info",
			Aliases: []string{"i"},
			Usage:   "print file metadata as JSON instead of downloading (API key required)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "enable verbose logging",
		},
	}
	app.Action = run
	return app
}

func run(cc *cli.Context) error {
	cfg, err := gdl.LoadConfig(cc.String("config"))
	if err != nil {
		return err
	}
	if cc.Bool("verbose") {
		cfg.LogLevel = "debug"
	}
	if key := cc.String("apikey"); key != "" {
		cfg.APIKey = key
	}
	client, err := gdl.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case cc.String("url") != "" && cc.String("batch") != "":
		return errors.New("--url and --batch are mutually exclusive")
	case cc.String("batch") != "":
		return runBatch(ctx, client, cc)
	case cc.String("url") != "":
		return runSingle(ctx, client, cc)
	case !term.IsTerminal(int(os.Stdin.Fd())):
		return runPiped(ctx, client, cc)
	default:
		cli.ShowAppHelp(cc)
		return errors.New("either --url or --batch is required")
	}
}

func runSingle(ctx context.Context, client *gdl.Client, cc *cli.Context) error {
	rawURL := cc.String("url")

	if cc.Bool("info") {
		info, err := client.FileInfo(ctx, rawURL)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", out)
		return nil
	}

	link, err := gdl.ParseLink(rawURL)
	if err != nil {
		return err
	}
	if link.IsFolder() {
		count, err := client.DownloadFolder(ctx, rawURL, cc.String("output-dir"))
		if err != nil {
			return err
		}
		fmt.Printf("Folder download completed: %d files\n", count)
		return nil
	}

	output := cc.String("output")
	autoName := cc.Bool("auto-name")
	if output == "" && !autoName {
		return errors.New("--output is required for single URL downloads (or use --auto-name)")
	}
	if autoName {
		output = cc.String("output-dir")
	}
	res, err := client.DownloadFile(ctx, rawURL, output, &gdl.Options{
		Format:     cc.String("format"),
		Resume:     cc.Bool("resume"),
		AutoName:   autoName,
		NoProgress: cc.Bool("no-progress"),
	})
	if err != nil {
		return err
	}
	fmt.Println("Downloaded", res.Summary())
	return nil
}

func runBatch(ctx context.Context, client *gdl.Client, cc *cli.Context) error {
	count, err := client.BatchDownload(ctx, cc.String("batch"), cc.String("output-dir"), cc.String("format"))
	if err != nil {
		return err
	}
	if count == 0 {
		return errors.New("no files were downloaded")
	}
	fmt.Printf("Batch download completed: %d files\n", count)
	return nil
}

// runPiped reads URLs from stdin, one per line, until EOF or a line
// reading "end", and downloads each into the output directory.
func runPiped(ctx context.Context, client *gdl.Client, cc *cli.Context) error {
	var urls []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if scanner.Text() == "end" {
			break
		}
		urls = append(urls, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(urls) == 0 {
		return errors.New("no URL data on stdin, see gdlcli --help")
	}

	count := 0
	for _, u := range urls {
		res, err := client.DownloadFile(ctx, u, cc.String("output-dir"), &gdl.Options{
			Format:     cc.String("format"),
			AutoName:   true,
			NoProgress: cc.Bool("no-progress"),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "## Skipped: %v\n", err)
			continue
		}
		fmt.Println("Downloaded", res.Summary())
		count++
	}
	if count == 0 {
		return errors.New("no files were downloaded")
	}
	return nil
}
