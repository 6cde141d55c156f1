package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/taxdoc"
	main "github.com/fwojciec/taxdoc/cmd/taxdoc"
	"github.com/fwojciec/taxdoc/crawl"
	"github.com/fwojciec/taxdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedDocument() *taxdoc.Document {
	return &taxdoc.Document{
		ID:        "doc-1",
		DocNumber: "조심2023서1234",
		Type:      taxdoc.DocumentPrecedent,
		Title:     "부가가치세 경정청구 거부처분",
		Content:   "# 주 문\n\n    기각한다.\n\n# 이 유\n\n## 1.\n\n    처분의 경위",
	}
}

func documentsWith(doc *taxdoc.Document) *mock.DocumentService {
	return &mock.DocumentService{
		FindDocumentByNumberFn: func(_ context.Context, number string) (*taxdoc.Document, error) {
			if number == doc.DocNumber {
				return doc, nil
			}
			return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "document %q not found", number)
		},
	}
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints details and top sections", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documentsWith(storedDocument()),
		}

		err := (&main.ShowCmd{DocNumber: "조심2023서1234"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Title:     부가가치세 경정청구 거부처분")
		assert.Contains(t, stdout.String(), "Sections (3):")
		assert.Contains(t, stdout.String(), "  주 문\n")
		assert.Contains(t, stdout.String(), "    1.\n")
	})

	t.Run("reports missing documents", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: documentsWith(storedDocument()),
		}

		err := (&main.ShowCmd{DocNumber: "없음"}).Run(deps)

		assert.Equal(t, taxdoc.ENOTFOUND, taxdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "taxdoc list")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes document when --force is set", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		docs := documentsWith(storedDocument())
		docs.DeleteDocumentFn = func(_ context.Context, id string) error {
			deletedID = id
			return nil
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: docs,
		}

		err := (&main.DeleteCmd{DocNumber: "조심2023서1234", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "doc-1", deletedID)
		assert.Contains(t, stdout.String(), "Deleted")
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: documentsWith(storedDocument()),
		}

		err := (&main.DeleteCmd{DocNumber: "조심2023서1234"}).Run(deps)

		assert.Equal(t, taxdoc.EINVALID, taxdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes type and limit to the filter", func(t *testing.T) {
		t.Parallel()

		var got taxdoc.DocumentFilter
		docs := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, filter taxdoc.DocumentFilter) ([]*taxdoc.Document, error) {
				got = filter
				return []*taxdoc.Document{storedDocument()}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Documents: docs}

		err := (&main.ListCmd{Type: "심판", Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Type)
		assert.Equal(t, taxdoc.DocumentPrecedent, *got.Type)
		assert.Equal(t, 5, got.Limit)
		assert.Equal(t, "조심2023서1234  precedent  부가가치세 경정청구 거부처분\n", stdout.String())
	})

	t.Run("full prints document contents", func(t *testing.T) {
		t.Parallel()

		docs := &mock.DocumentService{
			FindDocumentsFn: func(context.Context, taxdoc.DocumentFilter) ([]*taxdoc.Document, error) {
				return []*taxdoc.Document{storedDocument()}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Documents: docs}

		err := (&main.ListCmd{Full: true}).Run(deps)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout.String(), "## Document: 조심2023서1234 부가가치세 경정청구 거부처분\n"))
		assert.Contains(t, stdout.String(), storedDocument().Content)
	})

	t.Run("returns store errors", func(t *testing.T) {
		t.Parallel()

		docs := &mock.DocumentService{
			FindDocumentsFn: func(context.Context, taxdoc.DocumentFilter) ([]*taxdoc.Document, error) {
				return nil, errors.New("disk I/O error")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Documents: docs}

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Internal error")
	})
}

func TestSummarizeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stores and prints the summary", func(t *testing.T) {
		t.Parallel()

		doc := storedDocument()
		var update taxdoc.DocumentUpdate
		docs := documentsWith(doc)
		docs.UpdateDocumentFn = func(_ context.Context, id string, upd taxdoc.DocumentUpdate) (*taxdoc.Document, error) {
			assert.Equal(t, "doc-1", id)
			update = upd
			return doc, nil
		}

		summarizer := &mock.Summarizer{
			SummarizeFn: func(_ context.Context, content string) (string, error) {
				assert.Equal(t, doc.Content, content)
				return "청구를 기각한 사례", nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Documents:  docs,
			Summarizer: summarizer,
		}

		err := (&main.SummarizeCmd{DocNumber: doc.DocNumber}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, update.Summary)
		assert.Equal(t, "청구를 기각한 사례", *update.Summary)
		assert.Equal(t, "청구를 기각한 사례\n", stdout.String())
	})

	t.Run("does not update on summarizer failure", func(t *testing.T) {
		t.Parallel()

		docs := documentsWith(storedDocument())
		docs.UpdateDocumentFn = func(context.Context, string, taxdoc.DocumentUpdate) (*taxdoc.Document, error) {
			t.Fatal("unexpected update")
			return nil, nil
		}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Documents: docs,
			Summarizer: &mock.Summarizer{
				SummarizeFn: func(context.Context, string) (string, error) {
					return "", taxdoc.Errorf(taxdoc.EINVALID, "content required")
				},
			},
		}

		err := (&main.SummarizeCmd{DocNumber: "조심2023서1234"}).Run(deps)

		assert.Equal(t, taxdoc.EINVALID, taxdoc.ErrorCode(err))
	})
}

func TestMain_Run_Summarize(t *testing.T) {
	t.Parallel()

	doc := storedDocument()
	docs := documentsWith(doc)
	docs.UpdateDocumentFn = func(_ context.Context, _ string, upd taxdoc.DocumentUpdate) (*taxdoc.Document, error) {
		return doc, nil
	}

	m := main.NewMain()
	m.DocumentService = docs
	m.Summarizer = &mock.Summarizer{
		SummarizeFn: func(context.Context, string) (string, error) {
			return "요지", nil
		},
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"summarize", doc.DocNumber}, stdout, stderr)

	require.NoError(t, err)
	assert.Equal(t, "요지\n", stdout.String())
	assert.Contains(t, stderr.String(), "summarize")
}

func TestFetchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls urls and reports totals", func(t *testing.T) {
		t.Parallel()

		var saved []*taxdoc.Document
		crawler := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html>" + url + "</html>", nil
				},
			},
			Converter: &mock.DocumentConverter{
				ConvertDocumentFn: func(html string, docType taxdoc.DocumentType) (*taxdoc.Conversion, error) {
					return &taxdoc.Conversion{Text: "# 이유"}, nil
				},
			},
			Metadata: &mock.MetadataReader{
				ReadMetadataFn: func(html string) (*taxdoc.Metadata, error) {
					return &taxdoc.Metadata{DocNumber: strings.TrimSuffix(strings.TrimPrefix(html, "<html>https://taxlaw.nts.go.kr/a/"), "</html>")}, nil
				},
			},
			Documents: &mock.DocumentWriter{
				CreateDocumentFn: func(_ context.Context, doc *taxdoc.Document) error {
					saved = append(saved, doc)
					return nil
				},
			},
			Logger:      slog.New(slog.DiscardHandler),
			RetryDelays: []time.Duration{},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Crawler: crawler}

		err := (&main.FetchCmd{
			URLs:        []string{"https://taxlaw.nts.go.kr/a/1", "https://taxlaw.nts.go.kr/a/2"},
			Type:        "질의회신",
			Concurrency: 2,
		}).Run(deps)

		require.NoError(t, err)
		require.Len(t, saved, 2)
		assert.Equal(t, "1", saved[0].DocNumber)
		assert.Equal(t, taxdoc.DocumentInterpretation, saved[0].Type)
		assert.Equal(t, 2, crawler.Concurrency)
		assert.Contains(t, stdout.String(), "Fetching 2 documents")
		assert.Contains(t, stdout.String(), "Saved 2 documents")
	})

	t.Run("returns an error when documents fail", func(t *testing.T) {
		t.Parallel()

		crawler := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "", taxdoc.Errorf(taxdoc.ENOTFOUND, "page not found")
				},
			},
			Converter:   &mock.DocumentConverter{},
			Documents:   &mock.DocumentWriter{},
			Logger:      slog.New(slog.DiscardHandler),
			RetryDelays: []time.Duration{},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Crawler: crawler}

		err := (&main.FetchCmd{URLs: []string{"https://taxlaw.nts.go.kr/a/1"}}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "skip https://taxlaw.nts.go.kr/a/1")
	})
}

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       ctx,
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Logger:    slog.New(slog.DiscardHandler),
			Documents: &mock.DocumentService{},
		}

		err := (&main.ServeCmd{Addr: "127.0.0.1:0"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Listening on http://127.0.0.1:")
	})

	t.Run("fails on an invalid address", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Logger:    slog.New(slog.DiscardHandler),
			Documents: &mock.DocumentService{},
		}

		err := (&main.ServeCmd{Addr: "not an address"}).Run(deps)

		require.Error(t, err)
	})
}
