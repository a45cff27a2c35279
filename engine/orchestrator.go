package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/uetools/propscan/entity"
	"github.com/uetools/propscan/props/parser"
)

type Config struct {
	Sources              map[string]AssetSource
	Profiles             map[string]Profile
	Storage              Storage
	Parser               parser.Options
	StorageFlushInterval time.Duration
	StorageBufferMaxSize uint
	FilesBufferMaxSize   uint
	RecordsBufferMaxSize uint
	ScanWorkersCount     uint
}

// Engine orchestrates the components of a scan: asset sources
// (readers), scan workers, and buffered storage.
type Engine struct {
	cfg            Config
	logger         *slog.Logger
	storageManager *storageManager
}

func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Engine{
		cfg:            cfg,
		logger:         logger,
		storageManager: newStorageManager(logger, cfg.Storage, cfg.StorageBufferMaxSize, cfg.StorageFlushInterval)}, nil
}

func (c Config) validate() error {
	if len(c.Sources) == 0 {
		return errors.New("no asset sources are configured")
	}

	for name, src := range c.Sources {
		pn := src.ProfileName()
		if pn == "" {
			// Legal: bindings from this source stay unclassified.
			continue
		}
		if _, ok := c.Profiles[pn]; !ok {
			return fmt.Errorf("source %q uses undefined profile %q", name, pn)
		}
	}

	if c.Storage == nil {
		return errors.New("no asset storage is configured")
	}

	if c.StorageBufferMaxSize == 0 && c.StorageFlushInterval == 0 {
		return errors.New("storage buffer max size and storage flush interval cannot both be zero")
	}

	if c.RecordsBufferMaxSize == 0 {
		return errors.New("records buffer max size cannot be zero")
	}

	if c.ScanWorkersCount == 0 {
		return errors.New("scan workers cannot be zero")
	}

	return nil
}

// Run drives the scan until every source is exhausted or ctx is
// cancelled. A scan over non-watching sources terminates on its own
// with a nil error once the last record is handed to storage.
func (e *Engine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start consuming dumps from all sources.
	// files will contain raw dumps from all sources.
	files := e.consumeFiles(ctx)

	var wg sync.WaitGroup
	records := make(chan entity.AssetRecord, e.cfg.RecordsBufferMaxSize)

	sm := newScanManager(e.logger, e.cfg.Sources, e.cfg.Profiles, e.cfg.Parser, int(e.cfg.ScanWorkersCount))

	// Storage manager handles buffering, and periodic saves.
	wg.Go(func() { e.storageManager.run(ctx) })
	// Scan manager handles fan-out pattern; the records channel closes
	// once every worker has drained.
	wg.Go(func() {
		sm.run(ctx, files, records)
		close(records)
	})

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case r, ok := <-records:
			if !ok {
				// All sources finished and every scan drained. Stop the
				// storage manager so it flushes the tail.
				cancel()
				wg.Wait()
				return nil
			}
			e.storageManager.addRecords(ctx, r)
		}
	}
}

func (e *Engine) consumeFiles(ctx context.Context) <-chan entity.AssetFile {
	files := make(chan entity.AssetFile, e.cfg.FilesBufferMaxSize)
	e.logger.Info("created incoming files channel.", "size", e.cfg.FilesBufferMaxSize)

	var sourceWg sync.WaitGroup

	// Spawn sources
	for n, s := range e.cfg.Sources {
		sourceWg.Add(1)
		go func(name string, src AssetSource) {
			defer sourceWg.Done()
			err := src.Provide(ctx, files)

			if err != nil && !errors.Is(err, context.Canceled) {
				e.logger.Error("failed to run asset source.", "name", name, "error", err)
			}
		}(n, s)
	}

	go func() {
		sourceWg.Wait()
		close(files)
	}()

	return files
}
