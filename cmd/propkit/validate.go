// Validate command for the propkit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matforge/propkit/pkg/types"
)

var validateCollectionFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every instance in the collection against its definition",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		kit, err := openKit()
		if err != nil {
			fail("validate", err)
		}

		collection, err := readCollection(validateCollectionFile, false)
		if err != nil {
			fail("validate", err)
		}

		violations, err := kit.Validate(collection)
		if err != nil {
			fail("validate", err)
		}

		if flagJSON {
			if violations == nil {
				violations = types.Violations{}
			}
			if err := printJSON(violations); err != nil {
				fail("validate", err)
			}
		} else {
			for _, v := range violations {
				fmt.Println(v.String())
			}
		}

		if len(violations) > 0 {
			os.Exit(exitUserError)
		}
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateCollectionFile, "input", "i", "", "collection file to validate (required)")
	validateCmd.MarkFlagRequired("input")
}
