package dataset

import (
	"fmt"
	"os"

	"github.com/lintang-b-s/parking-search/pkg/parking"
	"github.com/vmihailenco/msgpack/v5"
)

// WriteSnapshot persists the parsed record table so the server can start
// from the indexing output without re-parsing CSV.
func WriteSnapshot(path string, records []parking.Record) error {
	buf, err := msgpack.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func ReadSnapshot(path string) ([]parking.Record, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var records []parking.Record
	if err := msgpack.Unmarshal(buf, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return records, nil
}
