// Dump command for the propkit CLI.
package main

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"
)

var (
	dumpCollectionFile string
	dumpOutputFile     string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Validate the collection and write its indented serialization",
	Long: `Dump runs the validator over the collection and, only when it is
free of violations, writes the indented serialization. A collection
holding exactly one instance is written as a bare map.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		kit, err := openKit()
		if err != nil {
			fail("dump", err)
		}

		collection, err := readCollection(dumpCollectionFile, false)
		if err != nil {
			fail("dump", err)
		}

		// Dump into a buffer first so a failed validation never
		// truncates an existing output file.
		var buf bytes.Buffer
		if err := kit.Dump(collection, &buf); err != nil {
			fail("dump", err)
		}

		if dumpOutputFile == "" {
			os.Stdout.Write(buf.Bytes())
			return
		}
		if err := os.WriteFile(dumpOutputFile, buf.Bytes(), 0o644); err != nil {
			fail("dump", err)
		}
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpCollectionFile, "input", "i", "", "collection file to dump (required)")
	dumpCmd.MarkFlagRequired("input")
	dumpCmd.Flags().StringVarP(&dumpOutputFile, "output", "o", "", "destination file (default: stdout)")
}
