package source

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/uetools/propscan/entity"
)

// dumpSuffix is the file name suffix UModel gives textual property
// dumps when exporting with -props.
const dumpSuffix = ".props.txt"

// DirSource serves every property dump under a directory tree, one
// file per exported asset, and can keep watching the tree for dumps
// added or rewritten after the initial walk.
type DirSource struct {
	name        string
	root        string
	profileName string
	watch       bool
	logger      *slog.Logger
}

// NewDirSource creates a new DirSource instance.
func NewDirSource(logger *slog.Logger, name, root, profileName string, watch bool) *DirSource {
	return &DirSource{
		logger:      logger,
		name:        name,
		root:        root,
		profileName: profileName,
		watch:       watch,
	}
}

func (s *DirSource) Name() string {
	return s.name
}

func (s *DirSource) ProfileName() string {
	return s.profileName
}

func (s *DirSource) Provide(ctx context.Context, files chan<- entity.AssetFile) error {
	if _, err := os.Stat(s.root); err != nil {
		return fmt.Errorf("cannot open source root: %w", err)
	}

	var watcher *fsnotify.Watcher
	if s.watch {
		var err error
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("cannot create watcher: %w", err)
		}
		defer watcher.Close()
	}

	if err := s.scanTree(ctx, files, s.root, watcher); err != nil {
		return err
	}

	if watcher == nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				s.logger.Debug("fsnotify watcher channel is closed.")
				return nil
			}

			switch {
			case event.Has(fsnotify.Create):
				info, err := os.Stat(event.Name)
				if err != nil {
					// Already gone again; nothing to serve.
					s.logger.Debug("Created path vanished before stat.", "path", event.Name)
					continue
				}
				if info.IsDir() {
					// Walk the new directory instead of waiting for
					// per-file events; dumps may land in it before the
					// watch takes effect.
					if err := s.scanTree(ctx, files, event.Name, watcher); err != nil {
						return err
					}
					continue
				}
				if strings.HasSuffix(event.Name, dumpSuffix) {
					if err := s.send(ctx, files, event.Name); err != nil {
						return err
					}
				}

			case event.Has(fsnotify.Write):
				// TODO: coalesce the create+write burst a fresh export
				// emits instead of serving the file once per event.
				if strings.HasSuffix(event.Name, dumpSuffix) {
					if err := s.send(ctx, files, event.Name); err != nil {
						return err
					}
				}

			default:
				s.logger.Debug("Received unhandled event from fsnotify.", "event", event.String())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// scanTree serves every dump under dir and, when a watcher is given,
// registers each directory with it.
func (s *DirSource) scanTree(ctx context.Context, files chan<- entity.AssetFile, dir string, watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("Skipping unreadable path.", "path", p, "error", err)
			return nil
		}

		if d.IsDir() {
			if watcher != nil {
				if err := watcher.Add(p); err != nil {
					s.logger.Warn("Cannot watch directory.", "path", p, "error", err)
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), dumpSuffix) {
			return nil
		}

		return s.send(ctx, files, p)
	})
}

// send reads one dump and hands it to the engine. Unreadable files are
// logged and skipped so a single bad export cannot stop the source.
func (s *DirSource) send(ctx context.Context, files chan<- entity.AssetFile, fullPath string) error {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		s.logger.Warn("Cannot read dump.", "path", fullPath, "error", err)
		return nil
	}

	rel, err := filepath.Rel(s.root, fullPath)
	if err != nil {
		rel = fullPath
	}

	f := entity.AssetFile{
		Source: s.name,
		Path:   filepath.ToSlash(rel),
		Data:   data,
		Seen:   time.Now(),
	}

	select {
	case files <- f:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
