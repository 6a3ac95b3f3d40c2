package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/encoding"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/featuresource"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/graphreader"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/logger"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configFile = flag.String("config", "", "config file, default ./data/config.yaml")
	logLevel   = flag.String("log_level", "info", "minimum log level")
	probeLat   = flag.Float64("probe_lat", 0, "after the import, log the edges around this latitude")
	probeLon   = flag.Float64("probe_lon", 0, "after the import, log the edges around this longitude")
)

func main() {
	flag.Parse()
	log, err := logger.NewWithLevel(*logLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := util.ReadConfig(*configFile); err != nil {
		log.Fatal("read config", zap.Error(err))
	}
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("graph import failed", zap.Error(err))
	}
}

func newSource(cfg Config, file string) featuresource.Source {
	if cfg.Source == SOURCE_OSMPBF {
		return featuresource.NewOSMPBFSource(file, cfg.Procs)
	}
	return featuresource.NewGeoJSONSource(cfg.Dir, cfg.IDAttribute)
}

// importResult. the graph of one file with its edge index.
type importResult struct {
	file     string
	store    *datastructure.GraphStorage
	rtree    *spatialindex.Rtree
	counters map[string]float64
}

// importFile builds the graph of one file. every call owns its source, store, encoder and reader.
func importFile(ctx context.Context, cfg Config, file string, log *zap.Logger) (*importResult, error) {
	store := datastructure.NewGraphStorage()
	encoder := encoding.NewCarEncoder(store, log, cfg.UseMaxSpeed)
	rtree := spatialindex.NewRtree(store, cfg.BoundingBoxRadius, log)

	reader, err := graphreader.NewReader(newSource(cfg, file), store, encoder, graphreader.Config{
		Table:              file,
		TagsToCopy:         cfg.TagsToCopy,
		ClassifierCapacity: cfg.ClassifierCapacity,
		StoreCapacity:      cfg.StoreCapacity,
		SkipRestrictions:   cfg.SkipRestrictions,
	}, log, graphreader.WithEdgeAddedHandler(rtree.EdgeAdded))
	if err != nil {
		return nil, err
	}

	log.Info("importing road graph", zap.String("source", cfg.Source))
	if err := reader.ReadGraph(ctx); err != nil {
		return nil, err
	}
	counters, err := reader.Stats().Values()
	if err != nil {
		return nil, err
	}
	return &importResult{
		file:     file,
		store:    store,
		rtree:    rtree,
		counters: counters,
	}, nil
}

// importAll imports every configured file, at most cfg.ParallelImports at a time.
// the first failure cancels the imports still running.
func importAll(ctx context.Context, cfg Config, log *zap.Logger) ([]*importResult, error) {
	results := make([]*importResult, len(cfg.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.ParallelImports)
	for i, file := range cfg.Files {
		g.Go(func() error {
			res, err := importFile(gctx, cfg, file, log.With(zap.String("file", file)))
			if err != nil {
				return fmt.Errorf("import %s: %w", file, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func run(ctx context.Context, cfg Config, log *zap.Logger) error {
	results, err := importAll(ctx, cfg, log)
	if err != nil {
		return err
	}

	for _, res := range results {
		log.Info("road graph imported",
			zap.String("file", res.file),
			zap.Int("nodes", res.store.NumberOfNodes()),
			zap.Int("edges", res.store.NumberOfEdges()),
			zap.Int("turn_restrictions", len(res.store.GetTurnRestrictions())),
			zap.Int("indexed_edges", res.rtree.Len()),
			zap.Any("counters", res.counters))

		if *probeLat == 0 && *probeLon == 0 {
			continue
		}
		for _, entry := range res.rtree.SearchWithinRadius(*probeLat, *probeLon, cfg.BoundingBoxRadius) {
			edge, ok := res.store.GetEdge(entry.GetEdgeID())
			if !ok {
				continue
			}
			log.Info("edge near probe",
				zap.String("file", res.file),
				zap.Uint32("edge_id", uint32(edge.GetID())),
				zap.Int64("way_id", entry.GetWayID()),
				zap.String("name", edge.GetName()),
				zap.Stringer("road_class", edge.GetFlags().RoadClass),
				zap.Float64("length_m", util.RoundFloat(edge.GetLength(), 2)),
				zap.String("geometry", edge.GetEncodedGeometry()))
		}
	}
	return nil
}
