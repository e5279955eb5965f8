package accounts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/dmitrijs2005/mrtrade/internal/filex"
	"github.com/dmitrijs2005/mrtrade/internal/logging"
	"github.com/dmitrijs2005/mrtrade/internal/models"
)

// LoadPolicy decides what OpenJSONFile does with a store file it cannot
// read or parse.
type LoadPolicy string

const (
	// LoadPolicyReset starts from an empty store and overwrites the file.
	LoadPolicyReset LoadPolicy = "reset"
	// LoadPolicyBackup moves the unreadable file aside, then starts empty.
	LoadPolicyBackup LoadPolicy = "backup"
	// LoadPolicyFail refuses to open the store.
	LoadPolicyFail LoadPolicy = "fail"
)

var ErrCorruptStore = errors.New("store file is unreadable")

// ParseLoadPolicy validates s. An empty string selects LoadPolicyBackup.
func ParseLoadPolicy(s string) (LoadPolicy, error) {
	switch p := LoadPolicy(strings.ToLower(s)); p {
	case LoadPolicyReset, LoadPolicyBackup, LoadPolicyFail:
		return p, nil
	case "":
		return LoadPolicyBackup, nil
	}
	return "", fmt.Errorf("unknown load policy %q", s)
}

const storeFilePerm = 0o600

// nowFn is a test seam for the timestamp in backup file names.
var nowFn = time.Now

// JSONFileRepository keeps every account in memory and rewrites the whole
// document on each mutation.
type JSONFileRepository struct {
	mu     sync.RWMutex
	path   string
	users  map[string]*models.Account
	logger logging.Logger
}

// OpenJSONFile loads the document at path. A missing file yields an empty
// store that is written out immediately; an unreadable one is handled
// according to policy.
func OpenJSONFile(ctx context.Context, path string, policy LoadPolicy, logger logging.Logger) (*JSONFileRepository, error) {
	r := &JSONFileRepository{
		path:   path,
		users:  make(map[string]*models.Account),
		logger: logger.With("store", path),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Info(ctx, "store file not found, starting empty")
		if err := r.flush(); err != nil {
			return nil, err
		}
		return r, nil
	}
	if err == nil {
		var accounts []*models.Account
		var mismatched []keyMismatch
		accounts, mismatched, err = decodeDocument(data)
		if err == nil {
			for _, m := range mismatched {
				r.logger.Warn(ctx, "record email differs from its key, keeping the key", "key", m.Key, "email", m.Field)
			}
			for _, a := range accounts {
				r.users[a.Email] = a
			}
			r.logger.Debug(ctx, "store loaded", "users", len(r.users))
			return r, nil
		}
	}

	if err := r.handleUnreadable(ctx, policy, err); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JSONFileRepository) handleUnreadable(ctx context.Context, policy LoadPolicy, cause error) error {
	switch policy {
	case LoadPolicyFail:
		return fmt.Errorf("%w: %v", ErrCorruptStore, cause)

	case LoadPolicyBackup:
		aside, err := backupPath(r.path, nowFn())
		if err != nil {
			return fmt.Errorf("%w: %v (moving it aside failed: %v)", ErrCorruptStore, cause, err)
		}
		if err := os.Rename(r.path, aside); err != nil {
			return fmt.Errorf("%w: %v (moving it aside failed: %v)", ErrCorruptStore, cause, err)
		}
		r.logger.Warn(ctx, "store file unreadable, moved aside and starting empty", "backup", aside, "error", cause)

	case LoadPolicyReset:
		r.logger.Warn(ctx, "store file unreadable, starting empty", "error", cause)

	default:
		return fmt.Errorf("unknown load policy %q", policy)
	}

	return r.flush()
}

// backupPath returns the first unused "<path>.corrupt-<unix>[-n]" name, so an
// earlier backup taken in the same second is never overwritten.
func backupPath(path string, now time.Time) (string, error) {
	base := fmt.Sprintf("%s.corrupt-%d", path, now.Unix())
	name := base
	for n := 1; ; n++ {
		_, err := os.Lstat(name)
		if errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", err
		}
		name = fmt.Sprintf("%s-%d", base, n)
	}
}

// flush writes the whole document. Callers hold r.mu for writing, or own r
// exclusively.
func (r *JSONFileRepository) flush() error {
	accounts := make([]*models.Account, 0, len(r.users))
	for _, a := range r.users {
		accounts = append(accounts, a)
	}

	data, err := EncodeDocument(accounts)
	if err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(r.path, data, storeFilePerm); err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	return nil
}

func (r *JSONFileRepository) Get(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(a), nil
}

func (r *JSONFileRepository) Exists(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[email]
	return ok, nil
}

// Create inserts account and persists the document. If the write fails
// the record is removed again, so memory never runs ahead of disk.
func (r *JSONFileRepository) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[account.Email]; ok {
		return common.ErrorAlreadyExists
	}

	r.users[account.Email] = clone(account)
	if err := r.flush(); err != nil {
		delete(r.users, account.Email)
		return err
	}
	return nil
}

func (r *JSONFileRepository) List(ctx context.Context) ([]*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Account, 0, len(r.users))
	for _, a := range r.users {
		out = append(out, clone(a))
	}
	sortByEmail(out)
	return out, nil
}

// Ping checks that the store file is still in place.
func (r *JSONFileRepository) Ping(ctx context.Context) error {
	if _, err := os.Stat(r.path); err != nil {
		return fmt.Errorf("store file: %w", err)
	}
	return nil
}

func (r *JSONFileRepository) Close() error {
	return nil
}

// Path returns the location of the store document.
func (r *JSONFileRepository) Path() string {
	return r.path
}
