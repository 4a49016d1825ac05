// main is the entry point for the benchboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/benchboard/cmd"
	"github.com/huangsam/benchboard/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Fatal %v\n", err)
		os.Exit(1)
	}
}
