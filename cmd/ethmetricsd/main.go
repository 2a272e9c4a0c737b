package main

import (
	"context"
	"log"
	"os"

	"github.com/splunk/ethmetrics/pkg/api"
)

func main() {
	if err := api.Serve(context.Background(), os.Getenv("ETHMETRICS_CONFIG")); err != nil {
		log.Fatal(err)
	}
}
