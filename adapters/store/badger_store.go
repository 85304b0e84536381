package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v3"

	"github.com/layer-3/inkgate/core"
)

// BadgerStore keeps the token in an embedded badger database
type BadgerStore struct {
	db     *badger.DB
	key    []byte
	logger *slog.Logger
}

// OpenBadgerStore opens (or creates) a badger database in dir.
// An empty dir opens an in-memory database.
func OpenBadgerStore(dir, key string, logger *slog.Logger) (*BadgerStore, error) {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = &badgerLogger{logger: logger}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	return &BadgerStore{db: db, key: []byte("inkgate/" + key), logger: logger}, nil
}

// Get reads the token; a missing key or read failure counts as absent
func (s *BadgerStore) Get(ctx context.Context) (core.Token, bool) {
	var token core.Token

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			token = core.Token(val)
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			s.logger.Debug("token store read failed", "backend", "badger", "error", err)
		}
		return "", false
	}

	return token, token.Present()
}

// Set writes the token
func (s *BadgerStore) Set(ctx context.Context, token core.Token) error {
	if !token.Present() {
		return core.ErrEmptyToken
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	return nil
}

// Clear deletes the token
func (s *BadgerStore) Clear(ctx context.Context) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	return nil
}

// Close closes the database
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's printf-style logging into slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
