// Command relcore seeds one page of an in-memory table and runs a
// projection over it, to exercise the storage and execution layers
// end to end.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/luigitni/relcore/config"
	"github.com/luigitni/relcore/exec"
	"github.com/luigitni/relcore/pagecache"
	"github.com/luigitni/relcore/pages"
	"github.com/luigitni/relcore/storage"
	"github.com/rs/zerolog"
)

var flagConfig = flag.String("config", "", "path to a YAML config file, defaults built in if omitted")

func main() {
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return config.Config{}, err
	}
	defer f.Close()

	return config.Load(f)
}

func run(cfg config.Config, logger zerolog.Logger) error {
	cache := pagecache.NewMemCache(logger.With().Str("component", "pagecache").Logger())

	schema := exec.NewSchema(
		exec.ColumnInfo{Qualifier: "orders", Name: "id", Type: storage.INT},
		exec.ColumnInfo{Qualifier: "orders", Name: "quantity", Type: storage.INT},
		exec.ColumnInfo{Qualifier: "orders", Name: "price", Type: storage.INT},
	)

	if err := seed(cache, schema, [][3]int{
		{1, 2, 10},
		{2, 5, 4},
		{3, 1, 99},
	}); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	stats := &exec.Stats{Columns: []exec.ColumnStats{
		{NumUniqueValues: 3},
		{NumUniqueValues: 3},
		{NumUniqueValues: 3},
	}}

	scan := exec.NewTableScan("orders", schema, stats, 3, cache, exec.FixedWidthCodec{})

	project := exec.NewProject(scan, exec.ProjectionSpec{
		exec.Expression(exec.ColumnRef{Qualifier: "orders", Name: "id"}, ""),
		exec.Expression(exec.BinaryOp{
			Op:    exec.OpMul,
			Left:  exec.ColumnRef{Qualifier: "orders", Name: "quantity"},
			Right: exec.ColumnRef{Qualifier: "orders", Name: "price"},
		}, "total"),
	})

	if err := project.Prepare(); err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	if err := project.Initialize(); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer project.CleanUp()

	for {
		tuple, err := project.GetNextTuple()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("get next tuple: %w", err)
		}

		id := storage.ValueAsInteger[storage.Int](tuple.Value(0))
		total := storage.ValueAsInteger[storage.Int](tuple.Value(1))
		fmt.Printf("order %d: total %d\n", id, total)
	}

	return nil
}

func seed(cache pagecache.Cache, schema *exec.Schema, rows [][3]int) error {
	_, page, err := cache.AllocatePage()
	if err != nil {
		return err
	}

	sp := pages.NewSlottedPage(page, storage.PageSize)
	sp.Initialize()

	for _, row := range rows {
		var body []byte
		for _, v := range row {
			body = append(body, storage.ValueFromInteger[storage.Int](storage.SizeOfInt, storage.Int(v))...)
		}

		idx, err := sp.AllocateTuple(len(body))
		if err != nil {
			return err
		}

		dst, err := sp.TupleBytes(idx)
		if err != nil {
			return err
		}
		copy(dst, body)
	}

	return nil
}
