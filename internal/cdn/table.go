// Package cdn provides a file-backed image CDN for Counter-Strike items
package cdn

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Table maps market hash names to image URLs. It becomes ready once a table is loaded
// and is safe for concurrent use
type Table struct {
	mu    sync.RWMutex
	urls  map[string]string
	ready bool
}

// tableFile is the on-disk layout:
//
//	items:
//	  "AK-47 | Redline (Field-Tested)": https://...
type tableFile struct {
	Items map[string]string `yaml:"items"`
}

// New creates an empty, not yet ready, table
func New() *Table {
	return &Table{urls: make(map[string]string)}
}

// LoadFile creates a table from a yaml file
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cdn table: %w", err)
	}
	defer f.Close()

	t := New()
	if err := t.Load(f); err != nil {
		return nil, err
	}
	return t, nil
}

// Load replaces the table contents from yaml read from r and marks the table ready
func (t *Table) Load(r io.Reader) error {
	var file tableFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return fmt.Errorf("decoding cdn table: %w", err)
	}

	urls := make(map[string]string, len(file.Items))
	for name, url := range file.Items {
		if url != "" {
			urls[name] = url
		}
	}

	t.mu.Lock()
	t.urls = urls
	t.ready = true
	t.mu.Unlock()
	return nil
}

// Ready implements image.CDN
func (t *Table) Ready() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ready
}

// ItemURL implements image.CDN
func (t *Table) ItemURL(marketHashName string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	url, ok := t.urls[marketHashName]
	return url, ok
}

// Len returns the number of known items
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.urls)
}
