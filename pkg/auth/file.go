package auth

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileValidator validates tokens against a static token file.
//
// The file holds one "token user-id" pair per line; blank lines and lines
// starting with # are ignored. This suits Kubernetes-style secret mounts
// and local development where no session database exists.
//
// When watching is enabled the validator reloads the file on change, so
// tokens can be rotated without restarting the service.
type FileValidator struct {
	path  string
	watch bool

	mu      sync.RWMutex
	tokens  map[string]string // token hash -> user id
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// NewFileValidator loads the token file and optionally starts watching it
// for changes.
func NewFileValidator(path string, watch bool) (*FileValidator, error) {
	v := &FileValidator{
		path:   path,
		watch:  watch,
		stopCh: make(chan struct{}),
	}

	if err := v.reload(); err != nil {
		return nil, err
	}

	if watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed to create file watcher: %w", err)
		}
		if err := watcher.Add(path); err != nil {
			_ = watcher.Close() // Best effort close on error path
			return nil, fmt.Errorf("failed to watch token file: %w", err)
		}

		v.watcher = watcher
		go v.watchLoop()

		slog.Info("token file validator started with watching", "path", path)
	} else {
		slog.Info("token file validator started without watching", "path", path)
	}

	return v, nil
}

// Validate checks a raw token against the loaded token set.
func (v *FileValidator) Validate(ctx context.Context, token string) (*TokenInfo, error) {
	v.mu.RLock()
	userID, ok := v.tokens[hashToken(token)]
	v.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown token")
	}

	return &TokenInfo{UserID: userID}, nil
}

// Close stops the file watcher if one is running.
func (v *FileValidator) Close() error {
	close(v.stopCh)
	if v.watcher != nil {
		return v.watcher.Close()
	}
	return nil
}

// reload reads the token file and replaces the in-memory token set.
func (v *FileValidator) reload() error {
	f, err := os.Open(v.path)
	if err != nil {
		return fmt.Errorf("failed to open token file: %w", err)
	}
	defer f.Close()

	tokens := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		token, userID, found := strings.Cut(line, " ")
		if !found {
			userID = "admin"
		}
		tokens[hashToken(token)] = strings.TrimSpace(userID)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read token file: %w", err)
	}

	v.mu.Lock()
	v.tokens = tokens
	v.mu.Unlock()

	slog.Debug("token file loaded", "path", v.path, "token_count", len(tokens))
	return nil
}

// watchLoop reacts to file change events by reloading the token set.
// Editors and secret mounts often replace the file, so the path is
// re-added after remove/rename events.
func (v *FileValidator) watchLoop() {
	for {
		select {
		case <-v.stopCh:
			return

		case event, ok := <-v.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if err := v.reload(); err != nil {
					slog.Warn("token file reload failed", "error", err)
				}
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// Replaced atomically; re-watch the path once it reappears.
				time.Sleep(100 * time.Millisecond)
				if err := v.watcher.Add(v.path); err == nil {
					if err := v.reload(); err != nil {
						slog.Warn("token file reload failed", "error", err)
					}
				}
			}

		case err, ok := <-v.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("token file watcher error", "error", err)
		}
	}
}
