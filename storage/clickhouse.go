package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/uetools/propscan/entity"
)

type ClickHouseStorageConfig struct {
	Addr     []string `yaml:"addr"`
	Database string   `yaml:"database"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
}

type ClickHouseStorage struct {
	conn clickhouse.Conn
	cfg  ClickHouseStorageConfig
}

func NewClickHouseStorage(cfg ClickHouseStorageConfig) (*ClickHouseStorage, error) {
	return &ClickHouseStorage{cfg: cfg}, nil
}

func setupClickHouseTables(ctx context.Context, conn driver.Conn) error {
	// One row per scan of one dump. Rescans append; queries that want
	// the current state of an asset take the newest scanned_at per
	// (source, path).
	// Texture bindings are flattened into three parallel arrays so a
	// material's bindings stay on its own row.
	return conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS assets (
			id UUID,
			source String,
			path String,
			kind Enum8('UNKNOWN' = 0, 'STATIC_MESH' = 1, 'MATERIAL' = 2),
			parent String,
			materials Array(String),
			texture_params Array(String),
			texture_paths Array(String),
			texture_maps Array(Enum8('UNKNOWN' = 0, 'DIFFUSE' = 1, 'NORMAL' = 2, 'SRO' = 3, 'MRO' = 4, 'MROH' = 5)),
			blend_mode String,
			two_sided Nullable(Bool),
			opacity_mask_clip Nullable(Float64),
			warnings UInt32,
			scanned_at DateTime64(3)
		)
		ENGINE = MergeTree
		ORDER BY (source, path, scanned_at)
		PARTITION BY toYYYYMM(scanned_at)
	`)
}

func (s *ClickHouseStorage) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: s.cfg.Addr,
		Auth: clickhouse.Auth{
			Database: s.cfg.Database,
			Username: s.cfg.Username,
			Password: s.cfg.Password,
		},
		DialTimeout: 5 * time.Second,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})

	if err != nil {
		return fmt.Errorf("failed to connect: %v", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping the database: %w", err)
	}

	s.conn = conn

	// A single table; no need to introduce go-migrate for now.
	if err := setupClickHouseTables(ctx, conn); err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	return nil
}

func (s *ClickHouseStorage) Close(ctx context.Context) error {
	return s.conn.Close()
}

func (s *ClickHouseStorage) StoreAssets(ctx context.Context, assets ...entity.AssetRecord) error {
	if len(assets) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 1*time.Minute)
	defer cancel()

	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO assets (id, source, path, kind, parent, materials, texture_params, texture_paths, texture_maps, blend_mode, two_sided, opacity_mask_clip, warnings, scanned_at)")
	if err != nil {
		return fmt.Errorf("couldn't prepare batch: %w", err)
	}

	for _, a := range assets {
		params := make([]string, len(a.Textures))
		paths := make([]string, len(a.Textures))
		maps := make([]string, len(a.Textures))
		for i, b := range a.Textures {
			params[i] = b.Param
			paths[i] = b.Texture
			maps[i] = b.Map.String()
		}

		var blendMode string
		var twoSided *bool
		var opacityClip *float64
		if a.Overrides != nil {
			blendMode = a.Overrides.BlendMode
			twoSided = a.Overrides.TwoSided
			opacityClip = a.Overrides.OpacityMaskClipValue
		}

		id := a.ID
		if id == uuid.Nil {
			id = uuid.New()
		}

		err = batch.Append(id, a.Source, a.Path, a.Kind.String(), a.Parent, a.Materials,
			params, paths, maps, blendMode, twoSided, opacityClip, a.Warnings, a.ScannedAt)

		if err != nil {
			return fmt.Errorf("couldn't append asset to batch: %w", err)
		}
	}

	err = batch.Send()
	if err != nil {
		return fmt.Errorf("couldn't send batch: %w", err)
	}

	return nil
}

// QueryAssets returns stored scans matching the filter, newest first.
func (s *ClickHouseStorage) QueryAssets(ctx context.Context, filter AssetFilter) ([]entity.AssetRecord, error) {
	query, args := buildAssetQuery(filter)

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("couldn't query assets: %w", err)
	}
	defer rows.Close()

	var records []entity.AssetRecord
	for rows.Next() {
		var (
			r         entity.AssetRecord
			kind      string
			params    []string
			paths     []string
			maps      []string
			blendMode string
			twoSided  *bool
			clip      *float64
		)
		err := rows.Scan(&r.ID, &r.Source, &r.Path, &kind, &r.Parent, &r.Materials,
			&params, &paths, &maps, &blendMode, &twoSided, &clip, &r.Warnings, &r.ScannedAt)
		if err != nil {
			return nil, fmt.Errorf("couldn't scan asset row: %w", err)
		}

		r.Kind = entity.ParseAssetKind(kind)
		if len(params) > 0 {
			r.Textures = make([]entity.TextureBinding, len(params))
			for i := range params {
				r.Textures[i] = entity.TextureBinding{
					Param:   params[i],
					Texture: paths[i],
					Map:     entity.ParseTextureMap(maps[i]),
				}
			}
		}
		if blendMode != "" || twoSided != nil || clip != nil {
			r.Overrides = &entity.MaterialOverrides{
				BlendMode:            blendMode,
				TwoSided:             twoSided,
				OpacityMaskClipValue: clip,
			}
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("couldn't read asset rows: %w", err)
	}

	return records, nil
}
