// Package keystore persists the credential pair in a local SQLite file.
// Tokens are sealed at rest and stored under two fixed keys. The store is the
// durable half of the session lifecycle: the session layer writes the pair at
// login, the gateway rewrites the access token after a refresh, and either
// side deletes both on invalidation.
package keystore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/dukahq/dukapos/internal/pos/keystore/migrations"
)

// Fixed storage keys for the credential pair.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// Store is a SQLite-backed credential store. It implements
// possdk.CredentialStore.
type Store struct {
	db     *sql.DB
	sealer *sealer
}

// Open opens (creating if needed) the keystore at path and applies any
// pending schema migrations. masterKey seals token values at rest; see
// LoadMasterKey for sourcing rules.
func Open(path string, masterKey []byte) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open keystore: %w", err)
	}

	s := &Store{db: db}
	s.sealer, err = newSealer(masterKey)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := s.applyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate keystore: %w", err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) applyMigrations() error {
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", src, "", driver)
	if err != nil {
		return err
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Access implements possdk.CredentialStore. A pair with only one surviving
// token is corrupt; it reports absent and the leftover is deleted.
func (s *Store) Access() (string, error) {
	access, refresh, err := s.readPair()
	if err != nil {
		return "", err
	}
	if access == "" || refresh == "" {
		return "", s.healDangling(access, refresh)
	}
	return access, nil
}

// Refresh implements possdk.CredentialStore.
func (s *Store) Refresh() (string, error) {
	access, refresh, err := s.readPair()
	if err != nil {
		return "", err
	}
	if access == "" || refresh == "" {
		return "", s.healDangling(access, refresh)
	}
	return refresh, nil
}

// SetPair implements possdk.CredentialStore. Both tokens are written in one
// transaction so a crash cannot leave a dangling single token behind.
func (s *Store) SetPair(access, refresh string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.putTx(tx, keyAccessToken, access); err != nil {
		return err
	}
	if err := s.putTx(tx, keyRefreshToken, refresh); err != nil {
		return err
	}
	return tx.Commit()
}

// SetAccess implements possdk.CredentialStore.
func (s *Store) SetAccess(access string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.putTx(tx, keyAccessToken, access); err != nil {
		return err
	}
	return tx.Commit()
}

// Clear implements possdk.CredentialStore.
func (s *Store) Clear() error {
	_, err := s.db.Exec(
		`DELETE FROM credentials WHERE key IN (?, ?)`,
		keyAccessToken, keyRefreshToken,
	)
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *Store) readPair() (access, refresh string, err error) {
	access, err = s.get(keyAccessToken)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.get(keyRefreshToken)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// healDangling removes whichever half of a broken pair survived.
func (s *Store) healDangling(access, refresh string) error {
	if access == "" && refresh == "" {
		return nil
	}
	return s.Clear()
}

func (s *Store) get(key string) (string, error) {
	var sealed []byte
	err := s.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential %q: %w", key, err)
	}

	plain, err := s.sealer.open(sealed)
	if err != nil {
		// An unreadable value is as good as absent; the caller's next failed
		// use clears the pair.
		return "", nil
	}
	return string(plain), nil
}

func (s *Store) putTx(tx *sql.Tx, key, value string) error {
	sealed, err := s.sealer.seal([]byte(value))
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, sealed,
	)
	if err != nil {
		return fmt.Errorf("write credential %q: %w", key, err)
	}
	return nil
}
