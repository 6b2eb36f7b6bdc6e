package provider

import (
	"sync"

	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// Registry owns the two well-known providers: the default one rooted at
// the script home and a wider one rooted at the storage root, used by file
// pickers (import source, download target).
type Registry struct {
	defaultProvider *StorageFileProvider

	externalOnce sync.Once
	externalCfg  Config
	external     *StorageFileProvider

	scanner DirectoryScanner
	logger  scriptfs.Logger
}

// NewRegistry builds the default provider eagerly and the external storage
// provider on first use.
func NewRegistry(defaultCfg, externalCfg Config, scanner DirectoryScanner, logger scriptfs.Logger) (*Registry, error) {
	def, err := New(defaultCfg, scanner, logger)
	if err != nil {
		return nil, err
	}
	if err := externalCfg.Validate(); err != nil {
		return nil, err
	}
	return &Registry{
		defaultProvider: def,
		externalCfg:     externalCfg,
		scanner:         scanner,
		logger:          logger,
	}, nil
}

// Default returns the script home provider.
func (r *Registry) Default() *StorageFileProvider {
	return r.defaultProvider
}

// ExternalStorage returns the storage root provider.
func (r *Registry) ExternalStorage() *StorageFileProvider {
	// externalCfg was validated by NewRegistry
	r.externalOnce.Do(func() {
		r.external = newProvider(r.externalCfg, r.scanner, r.logger)
	})
	return r.external
}
