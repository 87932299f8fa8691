// main is the entry point for the covgate CLI.
package main

import (
	"github.com/huangsam/covgate/cmd"
	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/internal/history"
)

func main() {
	defer history.CloseStores()

	cmd.SetHistoryManager(history.Manager)

	if err := cmd.Execute(); err != nil {
		history.CloseStores()
		contract.LogFatal("covgate failed", err)
	}

	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("could not stop profiling", err)
	}
}
