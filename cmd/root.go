package cmd

import (
	"filecombiner/pkg/logging"
	"filecombiner/pkg/output"
	"filecombiner/pkg/version"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Options holds the flags of the root command.
type Options struct {
	ConfigPath string
	OutputPath string
	Debug      bool
	Copy       bool
}

// Dependencies are the external resources the commands operate on.
type Dependencies struct {
	Fs        afero.Fs
	LogFile   string
	NewLogger func(logging.Options) (*zap.Logger, error)
	Clipboard output.ClipboardWriter // nil selects the system clipboard
}

// DefaultDependencies uses the host filesystem, the fixed log file and the
// system clipboard.
func DefaultDependencies() Dependencies {
	return Dependencies{
		Fs:        afero.NewOsFs(),
		LogFile:   logging.DefaultLogFile,
		NewLogger: logging.New,
	}
}

// NewRootCommand builds the filecombiner command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   version.Name,
		Short: "Combine files based on configuration",
		Long: `filecombiner concatenates groups of text files into a single output file.

Each group in the configuration wraps its files in header and footer
templates and can prepend a table of contents that maps output line
numbers to source paths.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts, deps)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "configfile.json", "Path to configuration file")
	flags.StringVarP(&opts.OutputPath, "output", "o", "combined_output.txt", "Output file path")
	flags.BoolVarP(&opts.Debug, "debug", "d", false, "Enable debug logging")
	flags.BoolVar(&opts.Copy, "copy", false, "Copy the combined output to the clipboard")

	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// Execute runs the root command against the host environment.
func Execute() error {
	return NewRootCommand(DefaultDependencies()).Execute()
}
