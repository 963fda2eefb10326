package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ning0612/fdname/internal/config"
	"github.com/Ning0612/fdname/internal/domain"
	"github.com/Ning0612/fdname/internal/logger"
	"github.com/Ning0612/fdname/internal/progress"
	"github.com/Ning0612/fdname/internal/service"
)

// commandText is the usage line and summary of each transform command
var commandText = map[domain.TransformKind]struct{ use, short string }{
	domain.TransformPrefix:     {"prefix <new>", "Add <new> before the name"},
	domain.TransformSuffix:     {"suffix <new>", "Add <new> after the name, before the extension"},
	domain.TransformReplace:    {"replace <old> [<new>]", "Replace every <old> with <new> (empty when omitted)"},
	domain.TransformRemove:     {"remove <sub>", "Remove every <sub>"},
	domain.TransformHash:       {"hash", "Replace the name with a hash of the name"},
	domain.TransformLowercase:  {"lowercase", "Convert the name to lower case"},
	domain.TransformUppercase:  {"uppercase", "Convert the name to upper case"},
	domain.TransformWhitespace: {"whitespace", "Remove all whitespace from the name"},
}

// transformCommands builds one subcommand per transform kind
func transformCommands(opts *options) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(domain.TransformKinds))
	for _, kind := range domain.TransformKinds {
		kind := kind
		text, ok := commandText[kind]
		if !ok {
			text.use = string(kind)
		}
		cmds = append(cmds, &cobra.Command{
			Use:   text.use,
			Short: text.short,
			Args:  argsFor(kind),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := runTransform(cmd, opts, kind, args); err != nil {
					return &renameFailure{err: err}
				}
				return nil
			},
		})
	}
	return cmds
}

// argsFor checks positional arguments against the kind's arity
func argsFor(kind domain.TransformKind) cobra.PositionalArgs {
	min, max := kind.Arity()
	switch {
	case max == 0:
		return cobra.NoArgs
	case min == max:
		return cobra.ExactArgs(min)
	default:
		return cobra.RangeArgs(min, max)
	}
}

func runTransform(cmd *cobra.Command, opts *options, kind domain.TransformKind, args []string) error {
	if opts.dir != "" {
		opts.v.Set("root", opts.dir)
	}

	cfg, err := config.Load(opts.v, opts.cfgFile)
	if err != nil {
		return err
	}

	cfg.Transform, err = domain.NewTransform(kind, args...)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(cfg.LoggerConfig()); err != nil {
		return err
	}
	defer logger.Shutdown()

	svc, err := service.NewRenameService(cfg)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		svc.SetProgressReporter(progress.NewWriterReporter(cmd.OutOrStdout()))
	}

	_, err = svc.Run(cmd.Context())
	return err
}
