package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/provide-io/jpackfx/internal/basedir"
	"github.com/provide-io/jpackfx/pkg/app"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/logging"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// cli carries the global flags and the session opened for each command.
type cli struct {
	baseDir  string
	logLevel string
	app      *app.App
	logFile  io.Closer
}

func newRootCommand() (*cobra.Command, *cli) {
	c := &cli{}
	root := &cobra.Command{
		Use:           "jpackfx",
		Short:         "Configure and build native installers for JavaFX applications",
		Long:          `Configure and build native installers for JavaFX applications with jpackage and jdeps.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["session"] == "none" {
				return nil
			}
			layout := basedir.New(c.baseDir)
			if err := layout.Ensure(); err != nil {
				return errs.CouldNotSave(err, "preparing base directory %s", layout.Root)
			}
			output := cmd.ErrOrStderr()
			file, fileErr := logging.OpenLogFile(layout.Logs())
			if fileErr == nil {
				c.logFile = file
				output = io.MultiWriter(output, file)
			}
			logger := logging.NewLogger("jpackfx", logging.GetLogLevel(c.logLevel), output)
			if fileErr != nil {
				logger.Warn("⚠️ Logging to stderr only", "error", fileErr)
			}
			a, err := app.Open(layout.Root, logger)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.app != nil {
				c.app.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.baseDir, "base-dir", "", "Base directory for configuration, workspace and projects (default $JPACKFX_HOME or ~/.jpackfx)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(
		c.jdkCommand(),
		c.javafxCommand(),
		c.projectCommand(),
		c.depsCommand(),
		c.buildCommand(),
		c.iconCommand(),
		c.archiveCommand(),
		c.workspaceCommand(),
		versionCommand(),
	)
	return root, c
}

// release closes the session log. It runs whether or not the command
// succeeded.
func (c *cli) release() {
	if c.logFile != nil {
		c.logFile.Close()
		c.logFile = nil
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"session": "none"},
		Run: func(cmd *cobra.Command, args []string) {
			built, revision := "unknown", ""
			if info, ok := debug.ReadBuildInfo(); ok {
				for _, setting := range info.Settings {
					switch setting.Key {
					case "vcs.time":
						built = setting.Value
					case "vcs.revision":
						revision = setting.Value
					}
				}
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "jpackfx %s\n", version)
			fmt.Fprintf(w, "Built: %s\n", built)
			if revision != "" {
				fmt.Fprintf(w, "Revision: %s\n", revision)
			}
			fmt.Fprintf(w, "Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

var (
	heading = color.New(color.Bold, color.FgCyan)
	label   = color.New(color.FgYellow)
	faint   = color.New(color.Faint)
)

// field prints one aligned "key: value" line, skipping blank values.
func field(w io.Writer, key, value string) {
	if value == "" {
		return
	}
	label.Fprintf(w, "  %-22s", key+":")
	fmt.Fprintln(w, value)
}
