package token

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoreira/produtos-cli/pkg/logger"
)

// FileStore keeps the credentials in a single JSON file, the CLI
// equivalent of the browser's local storage.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is <user config dir>/produtos/credentials.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ``, fmt.Errorf("token/file: failed resolving user config dir, %w", err)
	}
	return filepath.Join(dir, "produtos", "credentials.json"), nil
}

func (fs *FileStore) Set(_ context.Context, token string, expiration time.Time) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return fmt.Errorf("token/file: failed creating config dir, %w", err)
	}

	body, err := json.Marshal(Credentials{Token: token, Expiration: expiration})
	if err != nil {
		return fmt.Errorf("token/file: failed encoding credentials, %w", err)
	}

	// Write-then-rename so a crash can't leave half a credential behind.
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o600); err != nil {
		return fmt.Errorf("token/file: failed writing credentials, %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("token/file: failed replacing credentials, %w", err)
	}
	return nil
}

func (fs *FileStore) Get(ctx context.Context) (Credentials, bool, error) {
	body, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, fmt.Errorf("token/file: failed reading credentials, %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		// An unreadable file counts as not authenticated.
		logger.Log(ctx).Errorf("token/file: corrupt credentials file: %v", err)
		return Credentials{}, false, nil
	}
	if creds.Token == "" || creds.Expiration.IsZero() {
		return Credentials{}, false, nil
	}
	return creds, true, nil
}

func (fs *FileStore) Clear(_ context.Context) error {
	err := os.Remove(fs.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("token/file: failed removing credentials, %w", err)
	}
	return nil
}
