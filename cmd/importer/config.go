package main

import (
	"github.com/lintang-b-s/navigatorx-geoimport/pkg"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/util"
	"github.com/spf13/viper"
)

const (
	SOURCE_GEOJSON = "geojson"
	SOURCE_OSMPBF  = "osmpbf"
)

// Config of one import run, read from config.yaml / environment.
type Config struct {
	Source      string   `validate:"required,oneof=geojson osmpbf"`
	Files       []string `validate:"required,min=1,dive,required"` // table names (geojson) or paths of .osm.pbf files
	Dir         string   `validate:"required_if=Source geojson"`
	IDAttribute string   `validate:"required"`
	Procs       int      `validate:"gte=1"`

	TagsToCopy         []string
	ClassifierCapacity int `validate:"gte=0"`
	StoreCapacity      int `validate:"gte=0"`
	SkipRestrictions   bool
	UseMaxSpeed        bool
	ParallelImports    int `validate:"gte=1"` // files imported at the same time, each into its own graph

	BoundingBoxRadius float64 `validate:"gt=0"` // km
}

func setConfigDefaults() {
	viper.SetDefault("datareader.source", SOURCE_GEOJSON)
	viper.SetDefault("datareader.dir", "./data")
	viper.SetDefault("datareader.id_attribute", "osm_id")
	viper.SetDefault("datareader.procs", 4)
	viper.SetDefault("db.tags_to_copy", "name")
	viper.SetDefault("graph.classifier_capacity", pkg.DEFAULT_CLASSIFIER_CAPACITY)
	viper.SetDefault("graph.store_capacity", pkg.DEFAULT_STORE_CAPACITY)
	viper.SetDefault("graph.skip_restrictions", false)
	viper.SetDefault("graph.use_maxspeed", true)
	viper.SetDefault("graph.parallel_imports", 1)
	viper.SetDefault("index.bbox_radius_km", 0.05)
}

func loadConfig() (Config, error) {
	setConfigDefaults()
	cfg := Config{
		Source:             viper.GetString("datareader.source"),
		Files:              util.SplitCommaList(viper.GetString("datareader.file")),
		Dir:                viper.GetString("datareader.dir"),
		IDAttribute:        viper.GetString("datareader.id_attribute"),
		Procs:              viper.GetInt("datareader.procs"),
		TagsToCopy:         util.SplitCommaList(viper.GetString("db.tags_to_copy")),
		ClassifierCapacity: viper.GetInt("graph.classifier_capacity"),
		StoreCapacity:      viper.GetInt("graph.store_capacity"),
		SkipRestrictions:   viper.GetBool("graph.skip_restrictions"),
		UseMaxSpeed:        viper.GetBool("graph.use_maxspeed"),
		ParallelImports:    viper.GetInt("graph.parallel_imports"),
		BoundingBoxRadius:  viper.GetFloat64("index.bbox_radius_km"),
	}
	if err := util.ValidateStruct(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
