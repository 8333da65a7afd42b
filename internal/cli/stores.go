package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/slotscore/internal/config"
	"github.com/julianstephens/slotscore/internal/constants"
	apperrors "github.com/julianstephens/slotscore/internal/errors"
	"github.com/julianstephens/slotscore/internal/keyring"
	"github.com/julianstephens/slotscore/internal/logger"
	"github.com/julianstephens/slotscore/internal/storage"
	"github.com/julianstephens/slotscore/internal/storage/jsonstore"
	"github.com/julianstephens/slotscore/internal/storage/postgres"
	"github.com/julianstephens/slotscore/internal/storage/sqlite"
)

// Seams for tests.
var (
	getenv         = os.Getenv
	keyringConnStr = keyring.GetConnectionString
)

// DetectBackend picks a backend for a location given on the command line:
// Postgres DSNs, existing directories (JSON data dirs), otherwise SQLite files.
func DetectBackend(location string) string {
	if config.IsPostgresDSN(location) {
		return config.BackendPostgres
	}
	if info, err := os.Stat(location); err == nil && info.IsDir() {
		return config.BackendJSON
	}
	return config.BackendSQLite
}

// NewStore builds an unopened provider. Postgres locations are validated and
// must not embed a password unless trusted is set.
func NewStore(backend, location string, trusted bool) (storage.Provider, error) {
	switch backend {
	case config.BackendSQLite:
		return sqlite.NewStore(location), nil
	case config.BackendJSON:
		return jsonstore.NewStore(location), nil
	case config.BackendPostgres:
		err := postgres.ValidateConnString(location)
		if errors.Is(err, postgres.ErrEmbeddedCredentials) && trusted {
			err = nil
		}
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, apperrors.Usage(fmt.Errorf("%w: store the connection string with 'slotscore keyring set' or export %s instead", err, constants.EnvDBConnection))
		}
		if err != nil {
			return nil, apperrors.Usage(err)
		}
		return postgres.New(location), nil
	default:
		return nil, apperrors.Usagef("unknown storage backend %q", backend)
	}
}

// ResolveStore builds the provider described by cfg. For Postgres the
// connection string is taken from, in order: SLOTSCORE_DB_CONNECTION, the OS
// keyring, then the config path (which must rely on .pgpass for passwords).
// SLOTSCORE_DB_CONNECTION also overrides the location of the other backends.
func ResolveStore(cfg config.Config) (storage.Provider, error) {
	backend, location := cfg.Storage.Backend, cfg.Storage.Path

	if env := getenv(constants.EnvDBConnection); env != "" {
		if config.IsPostgresDSN(env) {
			backend = config.BackendPostgres
		}
		logger.Debug("Using database location from environment", "backend", backend)
		return NewStore(backend, env, true)
	}

	if backend != config.BackendPostgres {
		return NewStore(backend, location, false)
	}

	connStr, err := keyringConnStr()
	switch {
	case err == nil:
		logger.Debug("Using connection string from keyring")
		return NewStore(backend, connStr, true)
	case errors.Is(err, keyring.ErrNotFound):
	default:
		logger.Warn("Keyring unavailable, falling back to config", "error", err)
	}

	if location == "" {
		return nil, apperrors.Usagef("no postgres connection string: run 'slotscore keyring set' or export %s", constants.EnvDBConnection)
	}
	return NewStore(backend, location, false)
}
