package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ning0612/fdname/internal/config"
	"github.com/Ning0612/fdname/internal/core/namehash"
	"github.com/Ning0612/fdname/internal/domain"
)

var Version = "dev"

// options is the state shared by the command tree of one invocation
type options struct {
	v       *viper.Viper
	cfgFile string
	dir     string
}

// renameFailure marks errors raised after argument parsing succeeded
type renameFailure struct {
	err error
}

func (f *renameFailure) Error() string { return f.err.Error() }
func (f *renameFailure) Unwrap() error { return f.err }

var rootCmd, rootOpts = newRootCmd()

func newRootCmd() (*cobra.Command, *options) {
	opts := &options{v: viper.New()}

	root := &cobra.Command{
		Use:     "fdname [<dir>] [flags] <command>",
		Short:   "Batch rename files and directories",
		Version: Version,
		Long: `fdname renames the files and directories inside <dir> (default: the
current directory) with one naming transform. Only the name before the
last extension is rewritten; the extension is kept as is.

With --recursive every level below <dir> is processed, deepest entries
first, so a directory is renamed only after everything inside it.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("a transform command is required")
		},
	}

	flags := root.PersistentFlags()
	flags.BoolP("dirs", "d", false, "Rename directories (default: files and directories)")
	flags.BoolP("files", "f", false, "Rename files (default: files and directories)")
	flags.BoolP("recursive", "r", false, "Descend into subdirectories")
	flags.String("on-conflict", string(domain.ConflictError), "What to do when the new name is taken: error, skip or overwrite")
	flags.String("hash-algorithm", string(namehash.DefaultAlgorithm), "Hash used by the hash command: xxhash or fnv1a")
	flags.Bool("no-lock", false, "Do not take the per-directory run lock")
	flags.String("lock-dir", "", "Directory holding run locks (default: user config dir)")
	flags.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	flags.String("log-format", config.DefaultLogFormat, "Log format: text or json")
	flags.String("log-file", "", "Write logs to this file instead of stderr")
	flags.BoolP("verbose", "v", false, "Print every rename")
	flags.StringVar(&opts.cfgFile, "config", "", "Read defaults from this config file")

	_ = opts.v.BindPFlags(flags)

	for _, sub := range transformCommands(opts) {
		root.AddCommand(sub)
	}

	return root, opts
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, rootCmd, rootOpts, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run executes root with args and returns the process exit code
func run(ctx context.Context, root *cobra.Command, opts *options, args []string, stderr io.Writer) int {
	dir, rest := splitDir(root, args)
	opts.dir = dir
	root.SetArgs(rest)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var failure *renameFailure
	if errors.As(err, &failure) {
		fmt.Fprintf(stderr, "Problem renaming files: %v\n", failure.err)
	} else {
		fmt.Fprintf(stderr, "Error: %v\nRun '%s --help' for usage.\n", err, root.CommandPath())
	}
	return 1
}
