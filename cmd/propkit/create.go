// Create command for the propkit CLI.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	createCollectionFile string
	createDisclaimer     string
)

var createCmd = &cobra.Command{
	Use:   "create <instance-id> <property>",
	Short: "Create a new empty property instance",
	Long: `Create appends a new empty property instance to the collection.

The property is identified by its short name, its full tagged identifier,
or a path to a definition file. A missing collection file starts a new
collection. A definition resolved from a file is known for this run
only; put it in the definitions directory so later commands can resolve
the instance's property id.

Example:
  propkit create 1 cohesive-energy-relation-cubic-crystal -i results.edn`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		instanceID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "create: instance id %q is not an integer\n", args[0])
			os.Exit(exitUserError)
		}

		kit, err := openKit()
		if err != nil {
			fail("create", err)
		}

		collection, err := readCollection(createCollectionFile, true)
		if err != nil {
			fail("create", err)
		}

		next, err := kit.Create(collection, instanceID, args[1], createDisclaimer)
		if err != nil {
			fail("create", err)
		}

		if err := writeCollection(createCollectionFile, next); err != nil {
			fail("create", err)
		}
	},
}

func init() {
	createCmd.Flags().StringVarP(&createCollectionFile, "input", "i", "", "collection file to read and update (default: stdout only)")
	createCmd.Flags().StringVar(&createDisclaimer, "disclaimer", "", "free-form disclaimer attached to the instance")
}
