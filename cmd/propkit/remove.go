// Remove command for the propkit CLI.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var removeCollectionFile string

var removeCmd = &cobra.Command{
	Use:   "remove <instance-id> key <name> [field...] ...",
	Short: "Delete keys or fields from a property instance",
	Long: `Remove deletes whole keys or named fields under keys from one
instance. A group naming no fields deletes the key and all of its
metadata.

Example:
  propkit remove -i results.edn 1 key a source-unit
  propkit remove -i results.edn 1 key short-name

Flags must precede the instance id and the token stream.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		instanceID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "remove: instance id %q is not an integer\n", args[0])
			os.Exit(exitUserError)
		}

		kit, err := openKit()
		if err != nil {
			fail("remove", err)
		}

		collection, err := readCollection(removeCollectionFile, false)
		if err != nil {
			fail("remove", err)
		}

		next, err := kit.Remove(collection, instanceID, args[1:]...)
		if err != nil {
			fail("remove", err)
		}

		if err := writeCollection(removeCollectionFile, next); err != nil {
			fail("remove", err)
		}
	},
}

func init() {
	removeCmd.Flags().StringVarP(&removeCollectionFile, "input", "i", "", "collection file to read and update (required)")
	removeCmd.MarkFlagRequired("input")
	removeCmd.Flags().SetInterspersed(false)
}
