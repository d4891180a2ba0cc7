package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// set via -ldflags at release time
var (
	version = "dev"
	commit  = "none"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("higlint %s (%s) %s/%s\n", version, commit, runtime.GOOS, runtime.GOARCH)
		},
	}
}
