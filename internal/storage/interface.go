package storage

import "github.com/julianstephens/moodlit/internal/models"

// Provider persists the whole mood history. Load of an empty or missing
// store returns an empty History and a nil error.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// History
	Load() (models.History, error)
	Save(models.History) error
	Clear() error

	// Utils
	GetConfigPath() string
}
