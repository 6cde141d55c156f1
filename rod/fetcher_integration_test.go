//go:build integration

package rod_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/goquery"
	"github.com/fwojciec/taxdoc/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFetcher_Integration_DocumentPage fetches a live document page and runs
// it through the converter. Set TAXDOC_TEST_URL to a document detail page.
func TestFetcher_Integration_DocumentPage(t *testing.T) {
	t.Parallel()

	url := os.Getenv("TAXDOC_TEST_URL")
	if url == "" {
		t.Skip("TAXDOC_TEST_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(ctx, url)
	require.NoError(t, err)
	assert.Contains(t, html, "cntnWrap_html")

	conv, err := goquery.NewConverter(nil).ConvertDocument(html, taxdoc.DocumentPrecedent)
	require.NoError(t, err)
	assert.NotEmpty(t, conv.Text)
	assert.False(t, conv.Fallback)

	t.Logf("fetched %d bytes, structure=%s paragraphs=%d tables=%d",
		len(html), conv.Structure, conv.Paragraphs, conv.Tables)
}
