package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/lintang-b-s/parking-search/pkg/parking"
)

// Load reads a clean parking table from a CSV file (gzip-compressed when the
// name ends in .gz) with header columns street,lat,lon,supply in any order.
// Record ids are assigned sequentially so id == position in the table, the
// layout the engine expects. The int result counts skipped rows.
func Load(path string) ([]parking.Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, 0, fmt.Errorf("open gzip dataset: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	return Parse(r)
}

// Parse consumes the CSV stream. Rows with unparseable or out-of-range
// coordinates are skipped (the engine assumes every record has valid
// coordinates); a bad supply value coerces to 0 instead of dropping the row,
// matching how the source dataset treats missing supply counts.
func Parse(r io.Reader) ([]parking.Record, int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []parking.Record{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read dataset header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"street", "lat", "lon", "supply"} {
		if _, ok := col[required]; !ok {
			return nil, 0, fmt.Errorf("dataset missing column %q", required)
		}
	}

	records := []parking.Record{}
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read dataset row: %w", err)
		}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(row[col["lat"]]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(row[col["lon"]]), 64)
		if latErr != nil || lonErr != nil ||
			math.IsNaN(lat) || math.IsNaN(lon) ||
			lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			skipped++
			continue
		}

		supply, supplyErr := strconv.ParseFloat(strings.TrimSpace(row[col["supply"]]), 64)
		if supplyErr != nil || math.IsNaN(supply) || supply < 0 {
			supply = 0
		}

		street := strings.TrimSpace(row[col["street"]])
		records = append(records, parking.NewRecord(len(records), street, lat, lon, supply))
	}

	return records, skipped, nil
}
