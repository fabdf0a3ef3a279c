package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dgraph-io/badger/v3"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// BadgerTokenStore keeps the credential in an embedded Badger database.
//
// Badger holds an exclusive directory lock, so only one process can use
// a given directory at a time.
type BadgerTokenStore struct {
	db     *badger.DB
	logger *slog.Logger
	closed atomic.Bool
}

// NewBadgerTokenStore opens (or creates) a Badger database in dir.
func NewBadgerTokenStore(dir string, logger *slog.Logger) (*BadgerTokenStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = &badgerLogger{logger: logger}
	// A single small key; favour durability over throughput.
	opts.SyncWrites = true
	opts.ValueLogFileSize = 1 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	logger.Debug("badger token store opened", "dir", dir)
	return &BadgerTokenStore{db: db, logger: logger}, nil
}

// Get returns the stored credential.
func (s *BadgerTokenStore) Get(ctx context.Context) (domain.Credential, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(TokenKey))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", domain.ErrStorage.WithCause(err)
	}
	return domain.Credential(value), nil
}

// Set stores the credential.
func (s *BadgerTokenStore) Set(ctx context.Context, cred domain.Credential) error {
	if s.closed.Load() {
		return ErrClosed
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(TokenKey), []byte(cred))
	})
	if err != nil {
		return domain.ErrStorage.WithCause(err)
	}
	return nil
}

// Clear removes the credential.
func (s *BadgerTokenStore) Clear(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(TokenKey))
	})
	if err != nil {
		return domain.ErrStorage.WithCause(err)
	}
	return nil
}

// Close closes the database. Subsequent calls return ErrClosed.
func (s *BadgerTokenStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
// Badger is chatty at info level; its info output is demoted to debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
