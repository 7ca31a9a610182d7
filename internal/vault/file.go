package vault

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const fileSchemaVersion = 1

// EncryptedFileBackend keeps values in a single file sealed with
// XChaCha20-Poly1305. Each service gets its own key derived from a random
// master key stored beside the data with 0600 permissions.
type EncryptedFileBackend struct {
	dataPath string
	keyPath  string
	mu       sync.Mutex
}

type sealedItem struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

type sealedFile struct {
	SchemaVersion int                              `json:"schema_version"`
	Items         map[string]map[string]sealedItem `json:"items"`
}

// NewEncryptedFileBackend stores data in dir/credentials.enc and the master
// key in dir/master.key
func NewEncryptedFileBackend(dir string) *EncryptedFileBackend {
	return &EncryptedFileBackend{
		dataPath: filepath.Join(dir, "credentials.enc"),
		keyPath:  filepath.Join(dir, "master.key"),
	}
}

func (f *EncryptedFileBackend) Name() string { return "encrypted-file" }

func (f *EncryptedFileBackend) Get(service, account string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := f.read()
	if err != nil {
		return nil, err
	}
	item, ok := file.Items[service][account]
	if !ok {
		return nil, ErrNotFound
	}

	aead, err := f.cipherFor(service)
	if err != nil {
		return nil, err
	}
	nonce, err := base64.StdEncoding.DecodeString(item.Nonce)
	if err != nil {
		return nil, err
	}
	ciphertext, err := base64.StdEncoding.DecodeString(item.Ciphertext)
	if err != nil {
		return nil, err
	}
	plain, err := aead.Open(nil, nonce, ciphertext, []byte(account))
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", account, err)
	}
	return plain, nil
}

func (f *EncryptedFileBackend) Set(service, account string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := f.read()
	if err != nil {
		return err
	}
	aead, err := f.cipherFor(service)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return err
	}
	ciphertext := aead.Seal(nil, nonce, data, []byte(account))

	if file.Items[service] == nil {
		file.Items[service] = make(map[string]sealedItem)
	}
	file.Items[service][account] = sealedItem{
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	}
	return f.write(file)
}

func (f *EncryptedFileBackend) Delete(service, account string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := file.Items[service][account]; !ok {
		return ErrNotFound
	}
	delete(file.Items[service], account)
	if len(file.Items[service]) == 0 {
		delete(file.Items, service)
	}
	return f.write(file)
}

func (f *EncryptedFileBackend) read() (*sealedFile, error) {
	data, err := os.ReadFile(f.dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &sealedFile{SchemaVersion: fileSchemaVersion, Items: map[string]map[string]sealedItem{}}, nil
		}
		return nil, err
	}
	var file sealedFile
	if err := sonic.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.dataPath, err)
	}
	if file.Items == nil {
		file.Items = map[string]map[string]sealedItem{}
	}
	if file.SchemaVersion == 0 {
		file.SchemaVersion = fileSchemaVersion
	}
	return &file, nil
}

func (f *EncryptedFileBackend) write(file *sealedFile) error {
	encoded, err := sonic.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(f.dataPath, encoded, 0o600)
}

func (f *EncryptedFileBackend) cipherFor(service string) (cipher.AEAD, error) {
	master, err := f.loadOrCreateKey()
	if err != nil {
		return nil, err
	}
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte("vault:"+service)), key); err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}

func (f *EncryptedFileBackend) loadOrCreateKey() ([]byte, error) {
	key, err := os.ReadFile(f.keyPath)
	if err == nil {
		if len(key) != 32 {
			return nil, errors.New("invalid master key length")
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	key = make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(f.keyPath, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}

// writeFileAtomic replaces path via a temp file and rename
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
