package featuresource

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

var (
	ErrMissingID = errors.New("feature has no way id")
)

// GeoJSONSource reads road tables stored as GeoJSON FeatureCollections.
// table "roads" resolves to <dir>/roads.geojson, <dir>/roads.json or <dir>/roads.geojson.bz2.
type GeoJSONSource struct {
	dir         string
	idAttribute string
	open        bool
}

func NewGeoJSONSource(dir, idAttribute string) *GeoJSONSource {
	return &GeoJSONSource{
		dir:         dir,
		idAttribute: idAttribute,
	}
}

func (s *GeoJSONSource) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "open geojson source")
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		return errors.Wrapf(err, "open geojson source %s", s.dir)
	}
	if !info.IsDir() {
		return errors.Errorf("open geojson source: %s is not a directory", s.dir)
	}
	s.open = true
	return nil
}

func (s *GeoJSONSource) resolve(table string) (string, error) {
	candidates := []string{table + ".geojson", table + ".json", table + ".geojson.bz2"}
	if ext := filepath.Ext(table); ext == ".geojson" || ext == ".json" || ext == ".bz2" {
		candidates = []string{table}
	}
	for _, c := range candidates {
		path := filepath.Join(s.dir, c)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.Wrapf(ErrTableNotFound, "geojson table %q in %s", table, s.dir)
}

func (s *GeoJSONSource) Features(ctx context.Context, table string, filter Filter) (Iterator, error) {
	if !s.open {
		return nil, ErrSourceNotOpen
	}
	path, err := s.resolve(table)
	if err != nil {
		return nil, err
	}

	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, err
	}

	features := make([]Feature, len(fc.Features))
	for i, f := range fc.Features {
		features[i] = &geoJSONFeature{
			f:           f,
			idAttribute: s.idAttribute,
		}
	}
	return newSliceIterator(ctx, features, filter), nil
}

func (s *GeoJSONSource) Close() error {
	s.open = false
	return nil
}

func readFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "bzip2 reader %s", path)
		}
		defer bz.Close()
		r = bz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode feature collection %s", path)
	}
	return fc, nil
}

type geoJSONFeature struct {
	f           *geojson.Feature
	idAttribute string
}

// GetID. the id attribute wins over the GeoJSON feature id.
func (g *geoJSONFeature) GetID() (int64, error) {
	if val, ok := g.f.Properties[g.idAttribute]; ok && val != nil {
		return util.ToInt64(val)
	}
	if g.f.ID != nil {
		return util.ToInt64(g.f.ID)
	}
	return 0, ErrMissingID
}

func (g *geoJSONFeature) GetGeometry() orb.Geometry {
	return g.f.Geometry
}

func (g *geoJSONFeature) GetAttribute(name string) (any, bool) {
	val, ok := g.f.Properties[name]
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}
