// Modify command for the propkit CLI.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var modifyCollectionFile string

var modifyCmd = &cobra.Command{
	Use:   "modify <instance-id> key <name> <field> [index...] <value...> ...",
	Short: "Set key values on a property instance",
	Long: `Modify applies a flat token stream of key groups to one instance.

Each group starts with the literal token "key" followed by the key name
and one or more field assignments. Array fields take one 1-based index
token per declared dimension; one of them may be a start:stop range
claiming the dimension's extent, with the values for those positions
following in order.

Example:
  propkit modify -i results.edn 1 \
    key short-name source-value 1 fcc \
    key a source-value 1:5 3.9149 4.0000 4.032 4.0817 4.1602 \
          source-unit angstrom digits 5

Flags must precede the instance id and the token stream.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		instanceID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "modify: instance id %q is not an integer\n", args[0])
			os.Exit(exitUserError)
		}

		kit, err := openKit()
		if err != nil {
			fail("modify", err)
		}

		collection, err := readCollection(modifyCollectionFile, false)
		if err != nil {
			fail("modify", err)
		}

		next, err := kit.Modify(collection, instanceID, args[1:]...)
		if err != nil {
			fail("modify", err)
		}

		if err := writeCollection(modifyCollectionFile, next); err != nil {
			fail("modify", err)
		}
	},
}

func init() {
	modifyCmd.Flags().StringVarP(&modifyCollectionFile, "input", "i", "", "collection file to read and update (required)")
	modifyCmd.MarkFlagRequired("input")
	// Negative values in the token stream must not be parsed as flags.
	modifyCmd.Flags().SetInterspersed(false)
}
