package kvdb

import (
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/parking-search/pkg/parking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func newTestDB(t *testing.T) *KVDB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parking.db")
	db, err := bbolt.Open(path, 0600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	kv, err := NewKVDB(db)
	require.NoError(t, err)
	return kv
}

func TestSaveAndGetRecord(t *testing.T) {
	kv := newTestDB(t)

	records := []parking.Record{
		parking.NewRecord(0, "The Embarcadero", 37.8080, -122.4100, 10),
		parking.NewRecord(1, "Beach St", 37.8090, -122.4090, 2),
	}
	require.NoError(t, kv.SaveRecords(records))

	got, err := kv.GetRecord(1)
	require.NoError(t, err)
	assert.Equal(t, records[1], got)

	_, err = kv.GetRecord(99)
	assert.ErrorIs(t, err, ErrKeyNotExists)
}

func TestGetAllRecordsOrderedByID(t *testing.T) {
	kv := newTestDB(t)

	// 12 records so byte-ordered keys ("10" < "2") differ from numeric order
	records := make([]parking.Record, 0, 12)
	for i := 0; i < 12; i++ {
		records = append(records, parking.NewRecord(i, "Beach St", 37.80+float64(i)*0.001, -122.41, float64(i)))
	}
	require.NoError(t, kv.SaveRecords(records))

	got, err := kv.GetAllRecords()
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
