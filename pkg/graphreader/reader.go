// Package graphreader builds the routing graph from road line features in three passes:
// junction detection, edge building and turn restriction resolution.
package graphreader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/encoding"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/featuresource"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/util"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

var (
	ErrNoNodesFound = errors.New("no nodes found")
)

// Encoder decides which ways a car may use and derives the edge flags.
type Encoder interface {
	AcceptWay(way *datastructure.ReaderWay) (bool, encoding.AcceptContext)
	HandleWayTags(way *datastructure.ReaderWay, accept encoding.AcceptContext) (datastructure.EdgeFlags, bool)
	ApplyWayTags(way *datastructure.ReaderWay, edge *datastructure.EdgeHandle)
	HandleTurnRelation(rel datastructure.TurnRelation) error
}

// EdgeAddedHandler is called right after an edge is created in the graph storage.
type EdgeAddedHandler func(way *datastructure.ReaderWay, edge *datastructure.EdgeHandle)

type Config struct {
	Table              string   `validate:"required"`
	TagsToCopy         []string `validate:"dive,required"`
	ClassifierCapacity int      `validate:"gte=0"`
	StoreCapacity      int      `validate:"gte=0"`
	SkipRestrictions   bool
}

type Option func(r *Reader)

// WithEdgeAddedHandler appends a handler. handlers run in the order they were added.
func WithEdgeAddedHandler(h EdgeAddedHandler) Option {
	return func(r *Reader) {
		r.edgeAddedHandlers = append(r.edgeAddedHandlers, h)
	}
}

// WithFeatureFilter sets the predicate deciding which features are imported. the same
// predicate is used by all three passes.
func WithFeatureFilter(filter featuresource.Filter) Option {
	return func(r *Reader) {
		if filter != nil {
			r.filter = filter
		}
	}
}

// wayEndpoints. from = start node of the first edge of the way, to = end node of its last edge.
type wayEndpoints struct {
	from datastructure.Index
	to   datastructure.Index
}

// Reader owns all state of one import. a Reader is used for one ReadGraph call at a time.
type Reader struct {
	source  featuresource.Source
	store   *datastructure.GraphStorage
	encoder Encoder
	cfg     Config
	logger  *zap.Logger

	filter            featuresource.Filter
	edgeAddedHandlers []EdgeAddedHandler

	classifier   *CoordinateClassifier
	nextNodeID   datastructure.Index
	wayEndpoints map[int64]*wayEndpoints
	edgeWayID    map[datastructure.Index]int64

	stats    *Stats
	distance *DistanceEstimator
}

func NewReader(source featuresource.Source, store *datastructure.GraphStorage, encoder Encoder, cfg Config,
	logger *zap.Logger, opts ...Option) (*Reader, error) {
	if err := util.ValidateStruct(cfg); err != nil {
		return nil, err
	}
	if cfg.ClassifierCapacity == 0 {
		cfg.ClassifierCapacity = pkg.DEFAULT_CLASSIFIER_CAPACITY
	}
	if cfg.StoreCapacity == 0 {
		cfg.StoreCapacity = pkg.DEFAULT_STORE_CAPACITY
	}

	r := &Reader{
		source:            source,
		store:             store,
		encoder:           encoder,
		cfg:               cfg,
		logger:            logger,
		filter:            featuresource.AcceptAll,
		edgeAddedHandlers: make([]EdgeAddedHandler, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.nextNodeID = pkg.FIRST_NODE_ID
	r.stats = newStats()
	r.distance = NewDistanceEstimator(logger, r.stats)
	return r, nil
}

func (r *Reader) reset() {
	r.classifier = NewCoordinateClassifier(r.cfg.ClassifierCapacity)
	r.nextNodeID = pkg.FIRST_NODE_ID
	r.wayEndpoints = make(map[int64]*wayEndpoints)
	r.edgeWayID = make(map[datastructure.Index]int64)
	r.stats.reset()
}

// ReadGraph runs the import: junction detection, edge building and restriction resolution.
// the coordinate classifier is released after the edges are built.
func (r *Reader) ReadGraph(ctx context.Context) error {
	start := time.Now()
	r.reset()
	defer r.classifier.Clear()

	if err := r.store.Create(r.cfg.StoreCapacity); err != nil {
		return fmt.Errorf("create graph storage: %w", err)
	}

	if err := r.detectJunctions(ctx); err != nil {
		return err
	}
	if err := r.buildEdges(ctx); err != nil {
		return err
	}
	r.finishReading()

	if r.cfg.SkipRestrictions {
		r.logger.Info("skipping turn restrictions")
	} else if err := r.resolveRestrictions(ctx); err != nil {
		return err
	}
	r.wayEndpoints = make(map[int64]*wayEndpoints)

	r.logger.Info("graph import done",
		zap.Int("nodes", r.store.NumberOfNodes()),
		zap.Int("edges", r.store.NumberOfEdges()),
		zap.Duration("took", time.Since(start)))
	return nil
}

// finishReading drops the coordinate classifier and logs the counters.
func (r *Reader) finishReading() {
	r.logger.Sugar().Infof("releasing coordinate classifier with %d entries", r.classifier.Len())
	r.classifier.Clear()

	values, err := r.stats.Values()
	if err != nil {
		r.logger.Warn("gather import counters", zap.Error(err))
		return
	}
	fields := make([]zap.Field, 0, len(values))
	for name, v := range values {
		fields = append(fields, zap.Float64(name, v))
	}
	r.logger.Info("edges built", fields...)
}

// WayIDOfEdge returns the id of the feature the edge was cut from.
func (r *Reader) WayIDOfEdge(edgeID datastructure.Index) (int64, bool) {
	id, ok := r.edgeWayID[edgeID]
	return id, ok
}

// NumberOfNodes. tower nodes assigned by the last import.
func (r *Reader) NumberOfNodes() int {
	return int(r.nextNodeID - pkg.FIRST_NODE_ID)
}

// Stats of the running or last import. the same Stats is reused by every ReadGraph call.
func (r *Reader) Stats() *Stats {
	return r.stats
}

// scan opens the source, feeds every accepted feature of the table to fn and releases
// the iterator and the source on every return path.
func (r *Reader) scan(ctx context.Context, pass string, fn func(f featuresource.Feature) error) (err error) {
	if err := r.source.Open(ctx); err != nil {
		return fmt.Errorf("%s: open feature source: %w", pass, err)
	}
	defer func() {
		if cerr := r.source.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%s: close feature source: %w", pass, cerr)
		}
	}()

	it, err := r.source.Features(ctx, r.cfg.Table, r.filter)
	if err != nil {
		return fmt.Errorf("%s: read table %q: %w", pass, r.cfg.Table, err)
	}
	defer func() {
		if cerr := it.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%s: close iterator: %w", pass, cerr)
		}
	}()

	for it.Next() {
		if util.StopConcurrentOperation(ctx) {
			return fmt.Errorf("%s: %w", pass, ctx.Err())
		}
		if err := fn(it.Feature()); err != nil {
			return fmt.Errorf("%s: %w", pass, err)
		}
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("%s: iterate table %q: %w", pass, r.cfg.Table, err)
	}
	return nil
}

func quantizeLine(line orb.LineString) []datastructure.Coordinate {
	coords := make([]datastructure.Coordinate, len(line))
	for i, p := range line {
		coords[i] = datastructure.NewCoordinate(p.Lon(), p.Lat())
	}
	return coords
}
