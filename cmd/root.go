package cmd

import (
	"fmt"
	"os"

	"project2prompt/pkg/logging"
	"project2prompt/pkg/prompt"
	"project2prompt/pkg/version"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	fs     afero.Fs
	logger *zap.Logger
	opts   prompt.Options
	debug  bool
}

// NewRootCmd builds the root command. It operates on fsys and logs through
// logger unless --debug replaces it with a development logger.
func NewRootCmd(fsys afero.Fs, logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{fs: fsys, logger: logger}

	rootCmd := &cobra.Command{
		Use:   version.AppName,
		Short: "Collect project files into a single Markdown prompt",
		Long: `project2prompt collects all project files with the specified extensions and
included paths into a single Markdown file, one fenced code block per file,
ready to paste into a language model prompt.`,
		Example: `  project2prompt -l go,yaml -p ./myservice
  project2prompt -l go -p . -i README.md docs -e vendor internal/mocks`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !a.debug {
				return nil
			}
			logger, err := logging.Setup(true, version.AppName, version.Version)
			if err != nil {
				return fmt.Errorf("failed to initialize debug logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := prompt.Run(a.fs, a.opts, cmd.OutOrStdout(), a.logger)
			return err
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&a.opts.Languages, "lang", "l", "", "File extensions to search for, separated by commas (e.g. 'go,yaml,env')")
	flags.StringVarP(&a.opts.ProjectPath, "path", "p", "", "Path to the root folder of the project")
	flags.StringArrayVarP(&a.opts.Include, "include", "i", nil, "Files or directories to include, relative to the project root (e.g. 'folder1 file.txt')")
	flags.StringArrayVarP(&a.opts.Exclude, "exclude", "e", nil, "Files or directories to exclude, relative to the project root; wins over every inclusion")
	flags.StringArrayVarP(&a.opts.IgnorePatterns, "ignore", "x", nil, "Gitignore-style patterns to exclude (e.g. '*_test.go' 'testdata/')")
	flags.StringVarP(&a.opts.Output, "output", "o", "", "Output file (default <project name>_prompt.md in the current directory)")
	flags.BoolVar(&a.opts.Tree, "tree", false, "Write a tree of the collected files before their contents")
	_ = rootCmd.MarkFlagRequired("lang")
	_ = rootCmd.MarkFlagRequired("path")

	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command against the real filesystem with the process
// arguments. Errors are printed to stderr and returned.
func Execute(logger *zap.Logger) error {
	return execute(NewRootCmd(afero.NewOsFs(), logger), os.Args[1:])
}

func execute(rootCmd *cobra.Command, args []string) error {
	rootCmd.SetArgs(expandListFlags(args))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
