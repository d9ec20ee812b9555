package engine_di

import (
	"fmt"

	"github.com/lintang-b-s/parking-search/pkg/geo"
	"github.com/lintang-b-s/parking-search/pkg/http/usecases"
	"github.com/lintang-b-s/parking-search/pkg/kvdb"
	"github.com/lintang-b-s/parking-search/pkg/parking"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// New builds the ranking engine from the record table the indexing step
// wrote into the bbolt store.
func New(log *zap.Logger, db *kvdb.KVDB) (usecases.Engine, error) {
	records, err := db.GetAllRecords()
	if err != nil {
		return nil, fmt.Errorf("load parking records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("record store is empty, run the indexing command first")
	}

	log.Info("building spatial index", zap.Int("records", len(records)))
	return parking.NewEngine(records), nil
}

// NewSearchDefaults reads the tuning defaults applied to requests that omit
// them.
func NewSearchDefaults() usecases.SearchDefaults {
	viper.SetDefault("SEARCH_RADIUS_MI", 0.5)
	viper.SetDefault("SEARCH_ALPHA", 0.8)
	viper.SetDefault("SEARCH_BETA", 1.6)
	viper.SetDefault("SEARCH_TOP_N", 5)
	viper.SetDefault("MAX_SNAP_MI", 2.0)

	// San Francisco by default
	viper.SetDefault("SERVICE_AREA_MIN_LAT", 37.708)
	viper.SetDefault("SERVICE_AREA_MIN_LON", -122.514)
	viper.SetDefault("SERVICE_AREA_MAX_LAT", 37.832)
	viper.SetDefault("SERVICE_AREA_MAX_LON", -122.357)

	return usecases.SearchDefaults{
		RadiusMi:  viper.GetFloat64("SEARCH_RADIUS_MI"),
		Alpha:     viper.GetFloat64("SEARCH_ALPHA"),
		Beta:      viper.GetFloat64("SEARCH_BETA"),
		TopN:      viper.GetInt("SEARCH_TOP_N"),
		MaxSnapMi: viper.GetFloat64("MAX_SNAP_MI"),
		ServiceArea: geo.NewBoundingBox(
			viper.GetFloat64("SERVICE_AREA_MIN_LAT"),
			viper.GetFloat64("SERVICE_AREA_MIN_LON"),
			viper.GetFloat64("SERVICE_AREA_MAX_LAT"),
			viper.GetFloat64("SERVICE_AREA_MAX_LON"),
		),
	}
}
