// Defs commands for the propkit CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matforge/propkit/pkg/propkit"
)

var defsCmd = &cobra.Command{
	Use:   "defs",
	Short: "Inspect property definitions",
}

var defsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the loaded property definitions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		kit, err := openKit()
		if err != nil {
			fail("defs list", err)
		}

		defs := kit.Definitions()
		if flagJSON {
			type entry struct {
				PropertyID string `json:"property-id"`
				ShortName  string `json:"short-name"`
				Date       string `json:"date"`
				Title      string `json:"title"`
			}
			entries := make([]entry, len(defs))
			for i, def := range defs {
				entries[i] = entry{
					PropertyID: def.PropertyID,
					ShortName:  def.ShortName(),
					Date:       def.Date(),
					Title:      def.Title,
				}
			}
			if err := printJSON(entries); err != nil {
				fail("defs list", err)
			}
			return
		}
		for _, def := range defs {
			fmt.Println(def.PropertyID)
		}
	},
}

var defsCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check the format of a property definition file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		def, err := propkit.CheckDefinitionFile(args[0])
		if err != nil {
			fail("defs check", err)
		}
		fmt.Println(def.PropertyID, "ok")
	},
}

func init() {
	defsCmd.AddCommand(defsListCmd)
	defsCmd.AddCommand(defsCheckCmd)
}
