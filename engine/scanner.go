package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uetools/propscan/entity"
	"github.com/uetools/propscan/extract"
	"github.com/uetools/propscan/props/parser"
)

// Profile is an interface that defines the contract for game texture profiles.
type Profile interface {
	ClassifyTexture(param, texture string) (entity.TextureMap, error)
}

type scanManager struct {
	sources      map[string]AssetSource
	profiles     map[string]Profile
	parserOpts   parser.Options
	logger       *slog.Logger
	workersCount int
	wg           sync.WaitGroup
}

func newScanManager(logger *slog.Logger, sources map[string]AssetSource, profiles map[string]Profile, parserOpts parser.Options, workersCount int) *scanManager {
	return &scanManager{
		sources:      sources,
		profiles:     profiles,
		parserOpts:   parserOpts,
		logger:       logger,
		workersCount: workersCount,
	}
}

func (sm *scanManager) run(ctx context.Context, files <-chan entity.AssetFile, results chan<- entity.AssetRecord) {
	spawnWorker := func(workerId int) {
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-files:
				if !ok {
					// The jobs channel is closed and empty. No more work.
					return
				}

				record, ok := sm.scanFile(f)
				if !ok {
					continue
				}
				record.ID = uuid.New()

				sm.logger.Debug("scanned asset", "worker_id", workerId, "asset_id", record.ID, "path", record.Path)

				select {
				case results <- record:
				case <-ctx.Done():
					// If we can't send because context is cancelled, exit.
					return
				}
			}
		}
	}

	for i := 0; i < sm.workersCount; i++ {
		sm.wg.Go(func() {
			spawnWorker(i)
		})
	}

	sm.wg.Wait()
}

// scanFile parses one dump and extracts whatever its kind carries.
// Dumps that fail to parse or extract produce no record.
func (sm *scanManager) scanFile(f entity.AssetFile) (entity.AssetRecord, bool) {
	doc, err := parser.ParseWith(string(f.Data), sm.parserOpts)
	if err != nil {
		sm.logger.Error("Failed to parse dump", "source", f.Source, "path", f.Path, "error", err)
		return entity.AssetRecord{}, false
	}

	record := entity.AssetRecord{
		Source:    f.Source,
		Path:      f.Path,
		Kind:      extract.Classify(doc),
		Warnings:  uint32(len(doc.Warnings)),
		ScannedAt: time.Now(),
	}

	switch record.Kind {
	case entity.AssetKindStaticMesh:
		materials, err := extract.MeshMaterials(doc)
		if err != nil {
			sm.logger.Error("Failed to extract mesh materials", "source", f.Source, "path", f.Path, "error", err)
			return entity.AssetRecord{}, false
		}
		record.Materials = materials

	case entity.AssetKindMaterial:
		desc, err := extract.Material(doc)
		if err != nil {
			sm.logger.Error("Failed to extract material", "source", f.Source, "path", f.Path, "error", err)
			return entity.AssetRecord{}, false
		}
		record.Parent = desc.Parent
		record.Textures = desc.Textures
		record.Overrides = desc.Overrides
		sm.classifyTextures(f.Source, record.Textures)
	}

	return record, true
}

// classifyTextures fills binding maps in place using the profile of
// the serving source. Bindings stay unknown when no profile applies.
func (sm *scanManager) classifyTextures(sourceName string, bindings []entity.TextureBinding) {
	if len(bindings) == 0 {
		return
	}

	src, ok := sm.sources[sourceName]
	if !ok {
		sm.logger.Error("Source not found", "source", sourceName)
		return
	}

	p := sm.profiles[src.ProfileName()]
	if p == nil {
		sm.logger.Warn("Profile not found", "profile", src.ProfileName())
		return
	}

	for i, b := range bindings {
		m, err := p.ClassifyTexture(b.Param, b.Texture)
		if err != nil {
			sm.logger.Error("Failed to classify texture", "param", b.Param, "texture", b.Texture, "error", err)
			continue
		}
		bindings[i].Map = m
	}
}
