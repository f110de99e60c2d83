package main

import (
	"fmt"
	"os"

	"github.com/rollkit/eigenda-client/da/proxy"
	"github.com/rollkit/eigenda-client/pkg/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd(proxy.NewInvoker)
	if err := rootCmd.Execute(); err != nil {
		// Print to stderr and exit with error
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
