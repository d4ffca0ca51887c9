package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/maildeck/internal/core/domain"
	"github.com/custodia-labs/maildeck/internal/core/services"
)

var (
	flagSetInt    bool
	flagSetList   bool
	flagSetSecret bool
	flagNoNotify  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration entries",
	Long: `View and change maildeck's typed configuration entries.

Every entry is a string, an integer, or a list of strings. Setting an
existing key replaces its type and value; the key itself is never
duplicated.`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration entries",
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value...]",
	Short: "Set a configuration entry",
	Long: `Set a configuration entry.

The value is stored as a string unless a type flag says otherwise:
  --int     store the value as an integer
  --list    store all value arguments as a list of strings
  --secret  prompt for the value without echoing (stored as a string)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the config file and print changes",
	Long: `Watch the backing config file and print a line for every entry that
changes on disk, until interrupted. Requires the toml backend.`,
	RunE: runConfigWatch,
}

func init() {
	configSetCmd.Flags().BoolVar(&flagSetInt, "int", false, "store the value as an integer")
	configSetCmd.Flags().BoolVar(&flagSetList, "list", false, "store the values as a list of strings")
	configSetCmd.Flags().BoolVar(&flagSetSecret, "secret", false, "prompt for the value without echoing")
	configSetCmd.Flags().BoolVar(&flagNoNotify, "no-notify", false, "do not inform observers of the change")

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configWatchCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if configService == nil {
		return errors.New("config service not configured")
	}

	for _, key := range configService.Keys() {
		entry, err := configService.Get(key)
		if err != nil {
			return fmt.Errorf("reading %q: %w", key, err)
		}
		cmd.Printf("%-24s %-8s %s\n", key, entry.Kind(), displayValue(key, entry))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configService == nil {
		return errors.New("config service not configured")
	}

	entry, err := configService.Get(args[0])
	if err != nil {
		return err
	}

	cmd.Println(entry.Display())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configService == nil {
		return errors.New("config service not configured")
	}

	key := args[0]
	value, err := parseSetValue(args[1:])
	if err != nil {
		return err
	}

	if err := configService.Set(key, value, !flagNoNotify); err != nil {
		return err
	}

	entry, err := configService.Get(key)
	if err != nil {
		return err
	}
	cmd.Printf("%s = %s (%s)\n", key, displayValue(key, entry), entry.Kind())
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if configService == nil {
		return errors.New("config service not configured")
	}

	if err := configService.Delete(args[0], !flagNoNotify); err != nil {
		return err
	}
	cmd.Printf("removed %s\n", args[0])
	return nil
}

func runConfigWatch(cmd *cobra.Command, _ []string) error {
	if configService == nil {
		return errors.New("config service not configured")
	}

	_, cancel := configService.Subscribe(func(e domain.ChangeEvent) {
		switch e.Type {
		case domain.ChangeDeleted:
			cmd.Printf("removed %s\n", e.Key)
		default:
			cmd.Printf("%s = %s (%s)\n", e.Key, displayValue(e.Key, e.Entry), e.Entry.Kind())
		}
	})
	defer cancel()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Println("watching for configuration changes (Ctrl-C to stop)")
	return services.NewWatcher(configService).Run(ctx)
}

// parseSetValue turns the value arguments into the runtime form whose
// kind the store will record.
func parseSetValue(args []string) (any, error) {
	switch {
	case flagSetSecret:
		if len(args) != 0 {
			return nil, errors.New("--secret reads the value from the terminal; do not pass one")
		}
		fmt.Fprint(os.Stderr, "Value: ")
		secret := readPassword()
		fmt.Fprintln(os.Stderr)
		return secret, nil
	case flagSetList:
		if len(args) == 0 {
			return nil, errors.New("--list requires at least one value")
		}
		return args, nil
	case flagSetInt:
		if len(args) != 1 {
			return nil, errors.New("--int requires exactly one value")
		}
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing integer value %q: %w", args[0], err)
		}
		return n, nil
	default:
		if len(args) != 1 {
			return nil, errors.New("expected exactly one value (use --list for lists)")
		}
		return args[0], nil
	}
}

// readPassword reads a line from the terminal without echoing it.
func readPassword() string {
	data, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return ""
	}
	return string(data)
}

// displayValue renders an entry for output, masking values of keys that
// look like credentials.
func displayValue(key string, entry domain.Entry) string {
	if isSecretKey(key) {
		if v, ok := entry.StringValue(); ok {
			return maskSecret(v)
		}
	}
	return entry.Display()
}

// isSecretKey reports whether a key's value should be masked in output.
func isSecretKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "password") ||
		strings.Contains(lower, "secret") ||
		strings.Contains(lower, "token")
}

// maskSecret hides all but the edges of a credential value.
func maskSecret(value string) string {
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "..." + value[len(value)-4:]
}
