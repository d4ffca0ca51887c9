// Package cli implements the cobra command surface for maildeck.
package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/maildeck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/maildeck/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/maildeck/internal/core/ports/driven"
	"github.com/custodia-labs/maildeck/internal/core/services"
	"github.com/custodia-labs/maildeck/internal/logger"
)

// version is printed by the version command and stored under
// global.version.
var version = services.Version

// Supported storage backends.
const (
	backendTOML   = "toml"
	backendSQLite = "sqlite"
)

var (
	flagVerbose bool
	flagDir     string
	flagBackend string
)

// configService is the one shared service for the process. Commands
// read it; tests may replace it directly.
var (
	configService *services.ConfigService
	wireOnce      sync.Once
	wireErr       error
)

var rootCmd = &cobra.Command{
	Use:   "maildeck",
	Short: "Manage maildeck configuration",
	Long: `Maildeck configuration manager.

Configuration entries are typed (string, integer, or list of strings)
and live in ~/.maildeck by default. The built-in baseline keys are
created on first use.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return ensureConfigService()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagDir, "config-dir", "", "configuration directory (default ~/.maildeck)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", backendTOML, "storage backend: toml or sqlite")
}

// ensureConfigService wires the shared config service exactly once per
// process, so every command sees the same store.
func ensureConfigService() error {
	if configService != nil {
		return nil
	}
	wireOnce.Do(func() {
		var store driven.ConfigStore
		var err error
		switch flagBackend {
		case backendTOML:
			store, err = file.NewConfigStore(flagDir)
		case backendSQLite:
			store, err = sqlite.NewStore(flagDir)
		default:
			wireErr = fmt.Errorf("unknown backend %q", flagBackend)
			return
		}
		if err != nil {
			wireErr = fmt.Errorf("opening config store: %w", err)
			return
		}
		logger.Debug("config store: %s", store.Path())

		configService, wireErr = services.NewConfigService(store)
	})
	return wireErr
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
