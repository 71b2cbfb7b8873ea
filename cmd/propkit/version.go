// Version command for the propkit CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matforge/propkit/pkg/propkit"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the propkit version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("propkit", propkit.Version)
	},
}
