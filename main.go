package main

import (
	"github.com/sst/ghosttext/cmd"
	"github.com/sst/ghosttext/internal/logging"
	"github.com/sst/ghosttext/internal/status"
)

func main() {
	defer logging.RecoverPanic("main", func() {
		status.Error("Application terminated due to unhandled panic")
	})

	cmd.Execute()
}
