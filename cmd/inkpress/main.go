package main

import (
	"fmt"
	"os"

	"github.com/eringen/inkpress"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "index":
		if err := runIndex(); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating articles index: %v\n", err)
			os.Exit(1)
		}
	case "prerender":
		if err := runPrerender(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during pre-rendering: %v\n", err)
			os.Exit(1)
		}
	case "build":
		if err := runIndex(); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating articles index: %v\n", err)
			os.Exit(1)
		}
		if err := runPrerender(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during pre-rendering: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if err := runCheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		app := inkpress.New(siteConfig())
		if err := app.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("inkpress %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// siteConfig assembles the site configuration from environment variables.
// Paths are fixed relative to the working directory unless overridden.
func siteConfig() inkpress.SiteConfig {
	return inkpress.SiteConfig{
		Name:        inkpress.EnvOr("SITE_NAME", ""),
		URL:         inkpress.EnvOr("SITE_URL", ""),
		Description: inkpress.EnvOr("SITE_DESCRIPTION", ""),
		Author:      inkpress.EnvOr("SITE_AUTHOR", ""),
		Image:       inkpress.EnvOr("SITE_IMAGE", ""),
		Addr:        inkpress.EnvOr("ADDR", ""),
		SiteDir:     inkpress.EnvOr("SITE_DIR", ""),
		ContentDir:  inkpress.EnvOr("CONTENT_DIR", ""),
		OutputDir:   inkpress.EnvOr("OUTPUT_DIR", ""),
		CVPath:      inkpress.EnvOr("CV_PATH", ""),
	}
}

func runIndex() error {
	cfg := siteConfig()
	if cfg.ContentDir == "" {
		cfg.ContentDir = "public/articles"
	}
	files, err := inkpress.WriteManifest(cfg.ContentDir)
	if err != nil {
		return err
	}
	fmt.Printf("Generated articles index with %d files:\n", len(files))
	for _, f := range files {
		fmt.Printf("   - %s\n", f)
	}
	return nil
}

func runPrerender() error {
	pr, err := inkpress.NewPrerenderer(siteConfig())
	if err != nil {
		return err
	}
	written, err := pr.Run()
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Printf("Pre-rendered: %s\n", path)
	}
	fmt.Println("Pre-rendering complete.")
	return nil
}

// runCheck validates the CV data file so schema mistakes surface at build
// time instead of on the live CV page.
func runCheck() error {
	cfg := siteConfig()
	if cfg.CVPath == "" {
		cfg.CVPath = "public/cv-data.yaml"
	}
	raw, err := os.ReadFile(cfg.CVPath)
	if err != nil {
		return err
	}
	cv, err := inkpress.ParseCV(raw)
	if err != nil {
		return err
	}
	fmt.Printf("CV data OK: %s, %d experience entries, %d talks\n",
		cv.Personal.Name, len(cv.Experience), len(cv.Talks))
	return nil
}

func printUsage() {
	fmt.Println(`inkpress - static blog & CV site toolkit

Usage:
  inkpress <command>

Commands:
  index       Regenerate the article manifest (articles/index.json)
  prerender   Pre-render static post shells with social-preview metadata
  build       Run index then prerender
  check       Validate the CV data file
  serve       Serve the built site with feed and sitemap
  version     Print the inkpress version
  help        Show this help message

Site settings come from the environment: SITE_NAME, SITE_URL,
SITE_DESCRIPTION, SITE_AUTHOR, SITE_IMAGE, ADDR, SITE_DIR, CONTENT_DIR,
OUTPUT_DIR, CV_PATH.`)
}
