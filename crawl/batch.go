package crawl

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/taxdoc"
	"golang.org/x/net/html/charset"
)

// Batch converts local HTML files into an output store. Files are
// independent, so they are converted in parallel; the store is committed
// once every file has been attempted.
type Batch struct {
	Pipeline    *Pipeline
	Store       taxdoc.OutputStore
	Concurrency int
}

// ListHTML returns the .html and .htm files directly inside dir, sorted.
func ListHTML(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".html", ".htm":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

// ConvertFiles converts each file as a document of docType. The document
// number defaults to the file name without extension. Failures are
// recorded in the result; the store is aborted only when ctx is canceled.
func (b *Batch) ConvertFiles(ctx context.Context, files []string, docType taxdoc.DocumentType, progress ProgressFunc) (*Result, error) {
	outcomes := runOrdered(ctx, b.Concurrency, files, progress, func(ctx context.Context, i int, path string) outcome {
		o := outcome{position: i, key: path, url: path}
		if err := ctx.Err(); err != nil {
			o.err = err
			return o
		}
		html, err := ReadHTML(path)
		if err != nil {
			o.err = err
			return o
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		o.doc, o.err = b.Pipeline.Build(html, taxdoc.Target{DocNumber: stem, Type: docType})
		return o
	})

	if err := ctx.Err(); err != nil {
		_ = b.Store.Abort()
		return nil, err
	}

	var result Result
	for _, o := range outcomes {
		if o.err == nil {
			o.err = b.Store.Save(ctx, o.doc)
		}
		if o.err != nil {
			result.fail(o.key, o.err)
			continue
		}
		result.Saved++
		result.Bytes += len(o.doc.Content)
	}

	if err := b.Store.Commit(); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReadHTML reads a file, decoding legacy charsets declared in the markup.
func ReadHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r, err := charset.NewReader(f, "")
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
