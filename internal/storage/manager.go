// Package storage provides the top-level StorageManager that coordinates
// the 2 storage areas: the internal store (accounts, config) and the data
// store (submissions, options, linked items).
package storage

import (
	"fmt"

	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/interfaces"
	"github.com/cmai/strata/internal/storage/badger"
)

// Manager implements interfaces.StorageManager using 2 badger stores.
type Manager struct {
	internalStore *badger.Store
	dataStore     *badger.Store

	internal       interfaces.InternalStore
	submissions    interfaces.SubmissionStorage
	options        interfaces.OptionStorage
	endorsements   interfaces.EndorsementStorage
	subjectivities interfaces.SubjectivityStorage

	logger *common.Logger
}

// NewManager creates a new StorageManager with the 2 storage areas.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	return NewManagerWithPaths(logger, config.Storage.Internal.Path, config.Storage.Data.Path)
}

// NewManagerWithPaths creates a StorageManager with explicit store paths.
func NewManagerWithPaths(logger *common.Logger, internalPath, dataPath string) (*Manager, error) {
	internalStore, err := badger.NewStore(logger, internalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create internal store: %w", err)
	}

	dataStore, err := badger.NewStore(logger, dataPath)
	if err != nil {
		internalStore.Close()
		return nil, fmt.Errorf("failed to create data store: %w", err)
	}

	logger.Info().
		Str("internal", internalPath).
		Str("data", dataPath).
		Msg("Storage manager initialized (2 areas)")

	return &Manager{
		internalStore:  internalStore,
		dataStore:      dataStore,
		internal:       badger.NewInternalStorage(internalStore, logger),
		submissions:    badger.NewSubmissionStorage(dataStore, logger),
		options:        badger.NewOptionStorage(dataStore, logger),
		endorsements:   badger.NewEndorsementStorage(dataStore, logger),
		subjectivities: badger.NewSubjectivityStorage(dataStore, logger),
		logger:         logger,
	}, nil
}

func (m *Manager) Submissions() interfaces.SubmissionStorage {
	return m.submissions
}

func (m *Manager) Options() interfaces.OptionStorage {
	return m.options
}

func (m *Manager) Endorsements() interfaces.EndorsementStorage {
	return m.endorsements
}

func (m *Manager) Subjectivities() interfaces.SubjectivityStorage {
	return m.subjectivities
}

func (m *Manager) InternalStore() interfaces.InternalStore {
	return m.internal
}

func (m *Manager) Close() error {
	var firstErr error
	if err := m.internalStore.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := m.dataStore.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
