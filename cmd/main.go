package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/lintang-b-s/parking-search/pkg/dataset"
	"github.com/lintang-b-s/parking-search/pkg/geo"
	"github.com/lintang-b-s/parking-search/pkg/parking"
)

// Local query tool: rank parking around a point straight from the indexing
// snapshot, no server needed.
var (
	snapshotPath = flag.String("snapshot", "parking_records.msgpack", "msgpack snapshot written by the indexing command")
	lat          = flag.Float64("lat", 37.8084, "origin latitude")
	lon          = flag.Float64("lon", -122.4098, "origin longitude")
	radiusMi     = flag.Float64("radius", 0.5, "search radius in miles")
	alpha        = flag.Float64("alpha", 0.8, "distance decay weight")
	beta         = flag.Float64("beta", 1.6, "distance decay exponent")
	topN         = flag.Int("n", 5, "number of recommendations")
)

func main() {
	flag.Parse()

	records, err := dataset.ReadSnapshot(*snapshotPath)
	if err != nil {
		log.Fatal(err)
	}

	engine := parking.NewEngine(records)

	results, err := engine.RankCandidates(*lat, *lon, parking.Params{
		RadiusMi: *radiusMi,
		Alpha:    *alpha,
		Beta:     *beta,
		TopN:     *topN,
	})
	if err != nil {
		log.Fatal(err)
	}

	for i, c := range results {
		fmt.Printf("%d. %s\n", i+1, c.Record.Street)
		fmt.Printf("   %.6f, %.6f\n", c.Record.Lat, c.Record.Lon)
		fmt.Printf("   supply %.0f, %.0f ft away, score %.2f\n",
			c.Record.Supply, c.DistMi*geo.FtPerMi, c.Score)
	}
}
