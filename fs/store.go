package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fwojciec/taxdoc"
	"go.yaml.in/yaml/v3"
)

// IndexFile is the manifest written at the root of a committed output
// directory.
const IndexFile = "index.yaml"

var _ taxdoc.OutputStore = (*FileStore)(nil)

// IndexEntry describes one saved document in the manifest.
type IndexEntry struct {
	Path        string `yaml:"path"`
	DocNumber   string `yaml:"doc_number"`
	Type        string `yaml:"type"`
	Structure   string `yaml:"structure"`
	ContentHash string `yaml:"content_hash,omitempty"`
}

// FileStore stages a batch of documents in <dir>.tmp and swaps it into place
// on Commit, so readers never see a half-written output directory. Save is
// safe for concurrent use.
type FileStore struct {
	baseDir string
	name    string

	mu      sync.Mutex
	entries map[string]IndexEntry
}

// NewFileStore returns a store that commits to baseDir/name.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		entries: make(map[string]IndexEntry),
	}
}

func (s *FileStore) staging() string { return filepath.Join(s.baseDir, s.name+".tmp") }
func (s *FileStore) target() string  { return filepath.Join(s.baseDir, s.name) }

// Save writes doc into the staging directory. Two documents of one batch
// that map to the same file give ECONFLICT.
func (s *FileStore) Save(ctx context.Context, doc *taxdoc.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	rel := DocumentPath(doc)
	s.mu.Lock()
	if prev, ok := s.entries[rel]; ok {
		s.mu.Unlock()
		return taxdoc.Errorf(taxdoc.ECONFLICT, "%q and %q both map to %s", prev.DocNumber, doc.DocNumber, rel)
	}
	s.entries[rel] = IndexEntry{
		Path:        filepath.ToSlash(rel),
		DocNumber:   doc.DocNumber,
		Type:        string(doc.Type),
		Structure:   doc.Structure.String(),
		ContentHash: doc.ContentHash,
	}
	s.mu.Unlock()

	if err := writeDocument(s.staging(), doc); err != nil {
		s.mu.Lock()
		delete(s.entries, rel)
		s.mu.Unlock()
		return err
	}
	return nil
}

// Index returns the manifest entries saved so far, ordered by path.
func (s *FileStore) Index() []IndexEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]IndexEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b IndexEntry) int { return strings.Compare(a.Path, b.Path) })
	return out
}

// Commit writes the manifest and replaces the output directory with the
// staging directory. An empty batch commits an output directory holding only
// an empty manifest.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.staging(), 0755); err != nil {
		return err
	}
	index, err := yaml.Marshal(struct {
		Documents []IndexEntry `yaml:"documents"`
	}{s.Index()})
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.staging(), IndexFile), index, 0644); err != nil {
		return err
	}
	if err := os.RemoveAll(s.target()); err != nil {
		return err
	}
	return os.Rename(s.staging(), s.target())
}

// Abort discards the staging directory and the manifest.
func (s *FileStore) Abort() error {
	s.mu.Lock()
	clear(s.entries)
	s.mu.Unlock()
	return os.RemoveAll(s.staging())
}

// ReadIndex reads the manifest of a committed output directory.
func ReadIndex(dir string) ([]IndexEntry, error) {
	data, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if os.IsNotExist(err) {
		return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "no %s in %s", IndexFile, dir)
	} else if err != nil {
		return nil, err
	}
	var index struct {
		Documents []IndexEntry `yaml:"documents"`
	}
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "invalid %s: %v", IndexFile, err)
	}
	return index.Documents, nil
}
