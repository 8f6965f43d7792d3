package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"concatfiles/internal/app"
	"concatfiles/internal/commands"
	"concatfiles/internal/config"
	"concatfiles/internal/domain"
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

//nolint:gochecknoglobals // Package-level version info set once from ldflags
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d, b string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
	versionInfo.BuiltBy = b
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return versionInfo
}

// rootOptions holds the flags that are not resolved through viper.
type rootOptions struct {
	cfgFile string
	verbose bool
}

// NewRootCommand builds the concatfiles command tree. Each call gets its own
// viper instance, so commands built for tests do not share state.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "concatfiles [input...]",
		Short: "Concatenate text files into one, with a header before each file",
		Long: `Concatfiles writes the contents of a list of files into a single output file.
Each file is preceded by a "--- <path> ---" line and followed by a blank line.

Inputs come from positional arguments, --inputs or INPUT_FILES (comma separated,
default input.py). The output path comes from --output or OUTPUT_FILE
(default output.py). The output file is truncated before writing.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConcat(cmd, v, opts, args)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().
		StringVar(&opts.cfgFile, "config", "", "YAML config file with output, inputs and lock keys")
	rootCmd.PersistentFlags().
		BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	flags := rootCmd.Flags()
	flags.StringP("output", "o", "", "Output file path (env OUTPUT_FILE, default output.py)")
	flags.StringP("inputs", "i", "", "Comma separated input paths (env INPUT_FILES, default input.py)")
	flags.Bool("lock", false, "Hold an exclusive lock on the output file while writing (env CONCATFILES_LOCK)")
	flags.String("log-format", "", "Log format, text or json (env CONCATFILES_LOG_FORMAT, default text)")

	cobra.CheckErr(v.BindPFlag(config.KeyOutput, flags.Lookup("output")))
	cobra.CheckErr(v.BindPFlag(config.KeyInputs, flags.Lookup("inputs")))
	cobra.CheckErr(v.BindPFlag(config.KeyLock, flags.Lookup("lock")))
	cobra.CheckErr(v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format")))

	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure. An interrupt
// stops the run before the next input file is opened.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func runConcat(cmd *cobra.Command, v *viper.Viper, opts *rootOptions, args []string) error {
	ctx := cmd.Context()

	// Bound before the app exists so the log format can come from the environment.
	if err := config.BindEnv(v, domain.Config{}); err != nil {
		return err
	}

	application, err := app.NewApp(ctx,
		app.WithVerbose(opts.verbose),
		app.WithLogFormat(v.GetString(config.KeyLogFormat)),
		app.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)
	if err != nil {
		return err
	}

	concatCmd := commands.NewConcatCommand(
		application.ConfigLoader,
		application.FileSystem,
		application.Concatenator,
		application.Printer,
		application.Logger,
	)
	_, err = concatCmd.Execute(ctx, commands.ConcatRequest{
		Settings:   v,
		ConfigFile: opts.cfgFile,
		Args:       args,
	})
	return err
}
