package main

import (
	"github.com/splunk/ethmetrics/pkg/cli"
)

func main() {
	cli.Execute()
}
