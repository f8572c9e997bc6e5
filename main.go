// main is the entry point for the burndown CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/burndown/cmd"
	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	defer iocache.CloseCaching()

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		iocache.CloseCaching()
		_, _ = fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
