package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `STREET,LAT,LON,SUPPLY
The Embarcadero,37.8080,-122.4100,10
Beach St,37.8090,-122.4090,2
Bay St,37.8000,-122.4200,50
Bad Row,not-a-number,-122.41,5
Out Of Range,95.0,-122.41,5
No Supply,37.8050,-122.4150,
Negative Supply,37.8060,-122.4160,-3
`

func TestParse(t *testing.T) {
	records, skipped, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, skipped, "rows with bad coordinates are dropped")
	require.Len(t, records, 5)

	// ids are sequential positions
	for i, rec := range records {
		assert.Equal(t, i, rec.ID)
	}

	assert.Equal(t, "The Embarcadero", records[0].Street)
	assert.Equal(t, 37.8080, records[0].Lat)
	assert.Equal(t, -122.4100, records[0].Lon)
	assert.Equal(t, 10.0, records[0].Supply)

	// bad supply coerces to zero instead of dropping the row
	assert.Equal(t, 0.0, records[3].Supply)
	assert.Equal(t, 0.0, records[4].Supply)
}

func TestParseHeaderVariants(t *testing.T) {
	t.Run("lowercase header with spaces", func(t *testing.T) {
		records, skipped, err := Parse(strings.NewReader("street, lat, lon, supply\nBeach St,37.8,-122.41,4\n"))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, records, 1)
		assert.Equal(t, 4.0, records[0].Supply)
	})

	t.Run("missing column", func(t *testing.T) {
		_, _, err := Parse(strings.NewReader("street,lat,lon\nBeach St,37.8,-122.41\n"))
		assert.ErrorContains(t, err, "missing column")
	})

	t.Run("empty input", func(t *testing.T) {
		records, skipped, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		assert.Empty(t, records)
	})
}

func TestLoadGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parking.csv.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	records, skipped, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Len(t, records, 5)
}

func TestSnapshotRoundTrip(t *testing.T) {
	records, _, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "records.msgpack")
	require.NoError(t, WriteSnapshot(path, records))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
