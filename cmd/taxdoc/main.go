package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/crawl"
	taxetree "github.com/fwojciec/taxdoc/etree"
	"github.com/fwojciec/taxdoc/fs"
	"github.com/fwojciec/taxdoc/gemini"
	"github.com/fwojciec/taxdoc/goldmark"
	"github.com/fwojciec/taxdoc/goquery"
	"github.com/fwojciec/taxdoc/htmltomarkdown"
	taxhttp "github.com/fwojciec/taxdoc/http"
	"github.com/fwojciec/taxdoc/readability"
	"github.com/fwojciec/taxdoc/rod"
	taxslog "github.com/fwojciec/taxdoc/slog"
	"github.com/fwojciec/taxdoc/sqlite"
	"github.com/fwojciec/taxdoc/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(). When empty the config file
	// value is used, then the default location.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. Set before calling Run() to replace
	// the default implementations.
	DocumentService taxdoc.DocumentService
	Summarizer      taxdoc.Summarizer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: os.Getenv("TAXDOC_DB"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("taxdoc"),
		kong.Description("Convert Korean tax precedents and interpretations to structured text"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'taxdoc --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", taxdoc.ErrorMessage(err))
		return err
	}
	deps.Config = cfg

	deps.Pipeline = &crawl.Pipeline{
		Converter: taxslog.NewLoggingDocumentConverter(&goquery.Converter{
			ContainerID: cfg.ContainerID,
			TableClass:  cfg.TableClass,
			Fallback:    htmltomarkdown.NewConverter(),
		}, deps.Logger),
		Extractor: crawl.ChainExtractor{trafilatura.NewExtractor(), readability.NewExtractor()},
		Metadata:  goquery.NewMetadataReader(),
	}
	deps.Exporter = taxetree.NewExporter()
	deps.Renderer = goldmark.NewRenderer()

	if cli.needsStore(cmd) {
		if err := m.openStore(cfg, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.DB = m.DB
		deps.Documents = m.DocumentService
	}

	switch cmd {
	case "fetch":
		fetcher, err := newFetcher(cli.Fetch.Static, cli.Fetch.Timeout)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		tokenCounter, err := gemini.NewTokenCounter(cfg.Model)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		var documents taxdoc.DocumentWriter = deps.Documents
		if cli.Fetch.Out != "" {
			documents = fs.NewWriter(cli.Fetch.Out)
		}

		deps.Crawler = &crawl.Crawler{
			Fetcher:      taxslog.NewLoggingFetcher(fetcher, deps.Logger),
			Converter:    deps.Pipeline.Converter,
			Documents:    documents,
			Extractor:    deps.Pipeline.Extractor,
			Metadata:     deps.Pipeline.Metadata,
			TokenCounter: tokenCounter,
			RateLimiter:  crawl.NewDomainLimiter(cfg.RateLimit),
			Logger:       deps.Logger,
			Concurrency:  cfg.Concurrency,
		}

	case "summarize":
		summarizer, err := m.summarizer(ctx, cfg, cli.Summarize.Remote, stderr)
		if err != nil {
			return err
		}
		deps.Summarizer = taxslog.NewLoggingSummarizer(summarizer, deps.Logger)

	case "serve":
		// Summarization is only served when a Gemini key is available.
		if m.Summarizer != nil || os.Getenv("GEMINI_API_KEY") != "" {
			summarizer, err := m.summarizer(ctx, cfg, false, stderr)
			if err != nil {
				return err
			}
			deps.Summarizer = taxslog.NewLoggingSummarizer(summarizer, deps.Logger)
		}
	}

	return kongCtx.Run(deps)
}

func (cli *CLI) needsStore(cmd string) bool {
	switch cmd {
	case "convert", "convert-dir":
		return false
	case "fetch":
		return cli.Fetch.Out == ""
	}
	return true
}

func (m *Main) openStore(cfg *Config, stderr io.Writer) error {
	if m.DocumentService != nil {
		return nil
	}

	path := m.DBPath
	if path == "" {
		path = cfg.Database
	}
	if path == "" {
		path = defaultDBPath()
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TAXDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	return nil
}

func (m *Main) summarizer(ctx context.Context, cfg *Config, remote bool, stderr io.Writer) (taxdoc.Summarizer, error) {
	if m.Summarizer != nil {
		return m.Summarizer, nil
	}

	if remote {
		if cfg.SummarizeURL == "" {
			fmt.Fprintln(stderr, "Hint: Set summarize_url in the config file")
			return nil, taxdoc.Errorf(taxdoc.EINVALID, "summarize_url not configured")
		}
		return taxhttp.NewSummarizer(cfg.SummarizeURL), nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return gemini.NewSummarizer(client, cfg.Model), nil
}

func newFetcher(static bool, timeout time.Duration) (taxdoc.Fetcher, error) {
	if static {
		return taxhttp.NewFetcher(taxhttp.WithTimeout(timeout)), nil
	}
	f, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taxdoc.db"
	}
	dir := filepath.Join(home, ".taxdoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "taxdoc.db")
}
