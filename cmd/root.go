package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "grounded", Short: "Web-grounded question answering"}

	root.AddCommand(serveCMD(), askCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
