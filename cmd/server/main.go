package main

import (
	"log"

	"github.com/lintang-b-s/parking-search/pkg/di"
)

func main() {
	server, cleanup, err := di.InitializeParkingService()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	if err := server.Wait(); err != nil {
		server.Log.Fatal(err.Error())
	}
}
