// Package keyring keeps the PostgreSQL connection string in the OS keyring
// so a password never has to appear in config.toml.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/moodlit/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entry addresses one secret by service and user
type Entry struct {
	Service string
	User    string
}

// Connection is where moodlit keeps its database connection string
var Connection = Entry{Service: constants.AppName, User: constants.DefaultKeyringUser}

// translate maps go-keyring errors onto this package's sentinels
func (e Entry) translate(op string, err error) error {
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s %s/%s: %v", ErrKeyringUnavailable, op, e.Service, e.User, err)
}

func (e Entry) Get() (string, error) {
	secret, err := keyring.Get(e.Service, e.User)
	if err != nil {
		return "", e.translate("read", err)
	}
	return secret, nil
}

func (e Entry) Set(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(e.Service, e.User, secret); err != nil {
		return e.translate("write", err)
	}
	return nil
}

func (e Entry) Delete() error {
	if err := keyring.Delete(e.Service, e.User); err != nil {
		return e.translate("delete", err)
	}
	return nil
}

func GetConnectionString() (string, error) { return Connection.Get() }

func SetConnectionString(connStr string) error { return Connection.Set(connStr) }

func DeleteConnectionString() error { return Connection.Delete() }

// IsAvailable probes with a lookup that is expected to miss. Anything other
// than a clean miss means the backend is unusable.
func IsAvailable() bool {
	_, err := Entry{Service: constants.AppName, User: "availability-probe"}.Get()
	return err == nil || errors.Is(err, ErrNotFound)
}
