package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/uetools/propscan/entity"
)

// Storage represents a storage interface for the engine.
// Storage persists batches; buffering is the engine's job.
type Storage interface {
	StoreAssets(ctx context.Context, assets ...entity.AssetRecord) error
}

// storageManager manages storage operations like inserting, buffering, and flushing records.
// Note that you should never disable buffering and scheduled flushing together.
type storageManager struct {
	storage Storage
	logger  *slog.Logger
	buffer  []entity.AssetRecord
	mutex   sync.Mutex
	wg      sync.WaitGroup

	// bufferMaxSize defines the maximum items that buffer holds before flushing.
	// If value is reached, buffer will be flushed immediately.
	// Setting this to zero will disable buffering.
	bufferMaxSize uint

	// flushInterval defines the interval at which buffer will be flushed.
	// Setting flushInterval to 0 will disable scheduled flushing.
	flushInterval time.Duration
}

func newStorageManager(logger *slog.Logger, storage Storage, bufferMaxSize uint, flushInterval time.Duration) *storageManager {
	return &storageManager{
		logger:        logger,
		storage:       storage,
		bufferMaxSize: bufferMaxSize,
		buffer:        make([]entity.AssetRecord, 0, bufferMaxSize),
		flushInterval: flushInterval,
	}
}

func (sm *storageManager) run(ctx context.Context) {
	var ticker *time.Ticker

	if sm.flushInterval > 0 {
		ticker = time.NewTicker(sm.flushInterval)
		defer ticker.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			// The final flush must outlive the cancellation or the
			// buffered tail of the scan would be dropped.
			sm.flushBuffers(context.WithoutCancel(ctx))
			sm.wg.Wait()
			return
		// Reading from a nil ticker's channel would panic, so when
		// scheduled flushing is disabled substitute a channel that
		// blocks forever.
		case <-func() <-chan time.Time {
			if ticker != nil {
				return ticker.C
			}
			return make(chan time.Time)
		}():
			sm.flushBuffers(ctx)
		}
	}
}

func (sm *storageManager) flushBuffers(ctx context.Context) {
	var toFlush []entity.AssetRecord

	// Swap the buffer under the lock, store outside it
	sm.mutex.Lock()
	if len(sm.buffer) > 0 {
		toFlush = sm.buffer
		sm.buffer = make([]entity.AssetRecord, 0, sm.bufferMaxSize)
	}
	sm.mutex.Unlock()

	if len(toFlush) > 0 {
		sm.flushRecords(ctx, toFlush)
	}
}

func (sm *storageManager) flushRecords(ctx context.Context, toFlush []entity.AssetRecord) {
	sm.wg.Go(func() {
		if err := sm.storage.StoreAssets(ctx, toFlush...); err != nil {
			sm.logger.Error("failed to flush asset records", "error", err)
			return
		}

		sm.logger.Debug("flushed asset records successfully", "count", len(toFlush))
	})
}

func (sm *storageManager) addRecords(ctx context.Context, records ...entity.AssetRecord) {
	if len(records) == 0 {
		return
	}

	var toFlush []entity.AssetRecord

	sm.mutex.Lock()
	sm.buffer = append(sm.buffer, records...)

	// Check if buffer reached flush size
	if sm.bufferMaxSize > 0 && uint(len(sm.buffer)) >= sm.bufferMaxSize {
		toFlush = sm.buffer
		sm.buffer = make([]entity.AssetRecord, 0, sm.bufferMaxSize)
	}
	sm.mutex.Unlock()

	// Flush asynchronously if needed
	if toFlush != nil {
		sm.flushRecords(ctx, toFlush)
	}
}
