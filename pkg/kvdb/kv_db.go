package kvdb

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/lintang-b-s/parking-search/pkg/parking"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

var (
	ErrKeyNotExists = errors.New("key not exists")
)

const (
	BBOLTDB_BUCKET = "parkingRecords"
)

// KVDB persists the parking record table between the indexing step and the
// server. The engine never reads from here at query time; the server loads
// everything once at startup.
type KVDB struct {
	db *bbolt.DB
	sync.Mutex
}

func NewKVDB(db *bbolt.DB) (*KVDB, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BBOLTDB_BUCKET))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create records bucket: %w", err)
	}

	return &KVDB{db, sync.Mutex{}}, nil
}

// SaveRecords writes the whole record table in one batch transaction.
func (db *KVDB) SaveRecords(records []parking.Record) error {
	db.Lock()
	defer db.Unlock()
	return db.db.Batch(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_BUCKET))
		for _, rec := range records {
			recBytes, err := msgpack.Marshal(rec)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(strconv.Itoa(rec.ID)), recBytes); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *KVDB) GetRecord(id int) (rec parking.Record, err error) {
	err = db.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_BUCKET))
		recBytes := b.Get([]byte(strconv.Itoa(id)))
		if recBytes == nil {
			return fmt.Errorf("record with id %d: %w", id, ErrKeyNotExists)
		}
		return msgpack.Unmarshal(recBytes, &rec)
	})
	return
}

// GetAllRecords returns the stored table ordered by id, the layout the
// engine expects (id == position).
func (db *KVDB) GetAllRecords() ([]parking.Record, error) {
	records := []parking.Record{}
	err := db.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_BUCKET))
		return b.ForEach(func(_, v []byte) error {
			var rec parking.Record
			if err := msgpack.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	// bucket iteration is byte-ordered on the stringified key, not numeric
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records, nil
}
