// Package keyring keeps the PostgreSQL connection string out of config files
// by storing it in the OS credential store.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/slotscore/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// account is one secret stored under the application's keyring service.
type account string

const (
	connectionAccount account = constants.DefaultKeyringUser
	checkAccount      account = "availability-check"
)

func (a account) get() (string, error) {
	secret, err := keyring.Get(constants.AppName, string(a))
	return secret, a.wrap("read", err)
}

func (a account) set(secret string) error {
	return a.wrap("store", keyring.Set(constants.AppName, string(a), secret))
}

func (a account) delete() error {
	return a.wrap("delete", keyring.Delete(constants.AppName, string(a)))
}

// wrap maps go-keyring errors onto this package's sentinels.
func (a account) wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %s %s: %v", ErrKeyringUnavailable, op, a, err)
	}
}

func GetConnectionString() (string, error) {
	connStr, err := connectionAccount.get()
	if err != nil {
		return "", err
	}
	return connStr, nil
}

// SetConnectionString stores connStr with surrounding whitespace removed.
func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return connectionAccount.set(connStr)
}

func DeleteConnectionString() error {
	return connectionAccount.delete()
}

// IsAvailable reports whether the OS keyring answers a read for a throwaway account.
func IsAvailable() bool {
	_, err := checkAccount.get()
	return err == nil || errors.Is(err, ErrNotFound)
}
