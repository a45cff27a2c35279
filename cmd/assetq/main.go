// assetq queries the ClickHouse asset index built by the scanner.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/uetools/propscan/entity"
	"github.com/uetools/propscan/storage"
)

type options struct {
	Addr     []string `long:"addr" default:"localhost:9000" description:"clickhouse address, repeatable"`
	Database string   `long:"database" default:"propscan" description:"clickhouse database"`
	Username string   `long:"username" default:"propscan" description:"clickhouse username"`
	Password string   `long:"password" env:"PROPSCAN_CH_PASSWORD" description:"clickhouse password"`

	Kinds        []string `short:"k" long:"kind" choice:"STATIC_MESH" choice:"MATERIAL" choice:"UNKNOWN" description:"keep only these asset kinds, repeatable"`
	Source       string   `long:"source" description:"keep scans from one source"`
	PathPrefix   string   `long:"path-prefix" description:"keep assets whose dump path starts with the prefix"`
	UsesTexture  string   `long:"uses-texture" description:"keep materials binding this texture object path"`
	UsesMaterial string   `long:"uses-material" description:"keep meshes referencing this material object path"`
	Limit        uint64   `short:"n" long:"limit" default:"100" description:"cap the number of returned scans, 0 for no cap"`

	JSON bool `long:"json" description:"emit records as JSON instead of a table"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	records, err := query(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	printTable(records)
}

func query(ctx context.Context, opts options) ([]entity.AssetRecord, error) {
	st, err := storage.NewClickHouseStorage(storage.ClickHouseStorageConfig{
		Addr:     opts.Addr,
		Database: opts.Database,
		Username: opts.Username,
		Password: opts.Password,
	})
	if err != nil {
		return nil, err
	}

	if err := st.Connect(ctx); err != nil {
		return nil, err
	}
	defer st.Close(ctx)

	filter := storage.AssetFilter{
		Source:       opts.Source,
		PathPrefix:   opts.PathPrefix,
		UsesTexture:  opts.UsesTexture,
		UsesMaterial: opts.UsesMaterial,
		Limit:        opts.Limit,
	}
	for _, k := range opts.Kinds {
		filter.Kinds = append(filter.Kinds, entity.ParseAssetKind(k))
	}

	return st.QueryAssets(ctx, filter)
}

func printTable(records []entity.AssetRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tSOURCE\tPATH\tREFS\tWARN\tSCANNED")

	for _, r := range records {
		refs := len(r.Materials)
		if r.Kind == entity.AssetKindMaterial {
			refs = len(r.Textures)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.Kind, r.Source, r.Path, refs, r.Warnings, r.ScannedAt.Format(time.RFC3339))
	}

	w.Flush()
	fmt.Printf("%d record(s)\n", len(records))
}
