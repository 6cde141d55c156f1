package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/crawl"
	taxetree "github.com/fwojciec/taxdoc/etree"
	"github.com/fwojciec/taxdoc/goldmark"
	"github.com/fwojciec/taxdoc/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *Config

	DB        *sqlite.DB
	Documents taxdoc.DocumentService

	Pipeline   *crawl.Pipeline
	Crawler    *crawl.Crawler
	Summarizer taxdoc.Summarizer
	Exporter   *taxetree.Exporter
	Renderer   *goldmark.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `type:"path" env:"TAXDOC_CONFIG" help:"YAML config file"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Convert    ConvertCmd    `cmd:"" help:"Convert an HTML file to structured text"`
	ConvertDir ConvertDirCmd `cmd:"" name:"convert-dir" help:"Convert a directory of HTML files to markdown files"`
	Fetch      FetchCmd      `cmd:"" help:"Fetch, convert and store documents"`
	List       ListCmd       `cmd:"" help:"List stored documents"`
	Show       ShowCmd       `cmd:"" help:"Show a stored document"`
	Delete     DeleteCmd     `cmd:"" help:"Delete a stored document"`
	Summarize  SummarizeCmd  `cmd:"" help:"Summarize a stored document"`
	Import     ImportCmd     `cmd:"" help:"Import markdown files with frontmatter into the store"`
	Serve      ServeCmd      `cmd:"" help:"Serve stored documents over HTTP"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	File         string `arg:"" type:"existingfile" help:"HTML file, or a text file with --plain"`
	Type         string `short:"t" default:"판례" help:"Document type label (판례, 심판, 질의회신, ...)"`
	Number       string `short:"n" help:"Document number (default: file name)"`
	Format       string `short:"f" default:"markdown" enum:"markdown,xml,html,outline" help:"Output format (markdown, xml, html, outline)"`
	WithMetadata bool   `name:"with-metadata" help:"Prepend the metadata header"`
	Plain        bool   `help:"Read FILE as plain text, one paragraph per line"`
}

// ConvertDirCmd is the "convert-dir" subcommand.
type ConvertDirCmd struct {
	Dir         string `arg:"" type:"existingdir" help:"Directory of HTML files"`
	Out         string `arg:"" help:"Output directory"`
	Type        string `short:"t" default:"판례" help:"Document type label"`
	Concurrency int    `short:"c" help:"Concurrent conversions (default from config)"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Document URLs"`
	Type        string        `short:"t" help:"Document type label (default: read from page)"`
	Static      bool          `help:"Fetch with plain HTTP instead of a browser"`
	Timeout     time.Duration `default:"30s" help:"Fetch timeout per page"`
	Concurrency int           `short:"c" help:"Concurrent fetch limit (default from config)"`
	Out         string        `short:"o" type:"path" help:"Write markdown files to this directory instead of the store"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Type  string `short:"t" help:"Only list documents of this type label"`
	Limit int    `short:"l" help:"Maximum number of documents"`
	Full  bool   `help:"Print the content of every listed document"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	DocNumber string `arg:"" help:"Document number"`
	Full      bool   `help:"Show full document content with the metadata header"`
	Format    string `short:"f" enum:"markdown,xml,html,outline" default:"markdown" help:"Format of the full content"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	DocNumber string `arg:"" help:"Document number"`
	Force     bool   `help:"Confirm deletion"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	DocNumber string `arg:"" help:"Document number"`
	Remote    bool   `help:"Use the summarize endpoint from the config instead of Gemini"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Dir string `arg:"" type:"existingdir" help:"Directory of markdown files"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:"127.0.0.1:8080" help:"Listen address"`
}
