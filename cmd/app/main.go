package main

import (
	"fulfillment/cmd"

	"github.com/labstack/gommon/log"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
