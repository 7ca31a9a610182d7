package vault

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
)

// PlainFileBackend keeps non-secret flags in a readable YAML document.
// Never use it for credentials.
type PlainFileBackend struct {
	path string
	mu   sync.Mutex
}

// NewPlainFileBackend stores values in dir/preferences.yaml
func NewPlainFileBackend(dir string) *PlainFileBackend {
	return &PlainFileBackend{path: filepath.Join(dir, "preferences.yaml")}
}

func (p *PlainFileBackend) Name() string { return "plain-file" }

func (p *PlainFileBackend) Get(service, account string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc, err := p.read()
	if err != nil {
		return nil, err
	}
	encoded, ok := doc[service][account]
	if !ok {
		return nil, ErrNotFound
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func (p *PlainFileBackend) Set(service, account string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc, err := p.read()
	if err != nil {
		return err
	}
	if doc[service] == nil {
		doc[service] = make(map[string]string)
	}
	doc[service][account] = base64.StdEncoding.EncodeToString(data)
	return p.write(doc)
}

func (p *PlainFileBackend) Delete(service, account string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc, err := p.read()
	if err != nil {
		return err
	}
	if _, ok := doc[service][account]; !ok {
		return ErrNotFound
	}
	delete(doc[service], account)
	if len(doc[service]) == 0 {
		delete(doc, service)
	}
	return p.write(doc)
}

func (p *PlainFileBackend) read() (map[string]map[string]string, error) {
	doc := make(map[string]map[string]string)
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.path, err)
	}
	if doc == nil {
		doc = make(map[string]map[string]string)
	}
	return doc, nil
}

func (p *PlainFileBackend) write(doc map[string]map[string]string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return writeFileAtomic(p.path, data, 0o644)
}
