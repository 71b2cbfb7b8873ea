// Root command for the propkit CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/matforge/propkit/internal/paths"
	"github.com/matforge/propkit/pkg/propkit"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir      string
	flagDefinitionsDir string
	flagJSON           bool
)

// Values loaded from config.yaml by PersistentPreRunE so all
// subcommands can use them.
var (
	configDefinitionsDir string
	configCache          bool
	configCacheDir       string
)

var rootCmd = &cobra.Command{
	Use:     "propkit",
	Short:   "Propkit builds and validates property instance collections",
	Version: propkit.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDefinitionsDir = cfg.GetString(cfgKeyDefinitionsDir)
		configCache = cfg.GetBool(cfgKeyCache)
		configCacheDir = cfg.GetString(cfgKeyCacheDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDefinitionsDir, "definitions-dir", "", "property definitions directory (default: $(CWD)/definitions)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(modifyCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(defsCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > PROPKIT_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDefinitionsDir returns the definitions directory following the
// precedence: --definitions-dir flag > config.yaml definitions_dir >
// PROPKIT_DEFINITIONS_DIR env > $(CWD)/definitions.
func resolveDefinitionsDir() (string, error) {
	return paths.ResolveDefinitionsDir(flagDefinitionsDir, configDefinitionsDir)
}
