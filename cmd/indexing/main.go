package main

import (
	"flag"
	"log"

	"github.com/lintang-b-s/parking-search/pkg/dataset"
	"github.com/lintang-b-s/parking-search/pkg/kvdb"

	ansi "github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	bolt "go.etcd.io/bbolt"
)

var (
	datasetFile  = flag.String("f", "sf_parking.csv", "cleaned parking dataset (csv or csv.gz) with street,lat,lon,supply columns")
	storePath    = flag.String("db", "parking_records.db", "bbolt record store consumed by the server")
	snapshotPath = flag.String("snapshot", "parking_records.msgpack", "msgpack snapshot consumed by the query tool")
)

func newBar(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(1,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func main() {
	flag.Parse()

	bar := newBar("[cyan][1/3]Parsing parking dataset...")
	records, skipped, err := dataset.Load(*datasetFile)
	if err != nil {
		log.Fatal(err)
	}
	_ = bar.Add(1)
	if skipped > 0 {
		log.Printf("skipped %d rows with bad coordinates", skipped)
	}
	if len(records) == 0 {
		log.Fatal("dataset has no usable rows")
	}

	bar = newBar("[cyan][2/3]Writing record store...")
	db, err := bolt.Open(*storePath, 0600, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	bboltKV, err := kvdb.NewKVDB(db)
	if err != nil {
		log.Fatal(err)
	}
	if err := bboltKV.SaveRecords(records); err != nil {
		log.Fatal(err)
	}
	_ = bar.Add(1)

	bar = newBar("[cyan][3/3]Writing snapshot...")
	if err := dataset.WriteSnapshot(*snapshotPath, records); err != nil {
		log.Fatal(err)
	}
	_ = bar.Add(1)

	log.Printf("indexed %d parking records", len(records))
}
