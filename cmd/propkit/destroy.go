// Destroy command for the propkit CLI.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var destroyCollectionFile string

var destroyCmd = &cobra.Command{
	Use:   "destroy <instance-id>",
	Short: "Remove a property instance from the collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		instanceID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "destroy: instance id %q is not an integer\n", args[0])
			os.Exit(exitUserError)
		}

		kit, err := openKit()
		if err != nil {
			fail("destroy", err)
		}

		collection, err := readCollection(destroyCollectionFile, false)
		if err != nil {
			fail("destroy", err)
		}

		next, err := kit.Destroy(collection, instanceID)
		if err != nil {
			fail("destroy", err)
		}

		if err := writeCollection(destroyCollectionFile, next); err != nil {
			fail("destroy", err)
		}
	},
}

func init() {
	destroyCmd.Flags().StringVarP(&destroyCollectionFile, "input", "i", "", "collection file to read and update (required)")
	destroyCmd.MarkFlagRequired("input")
}
