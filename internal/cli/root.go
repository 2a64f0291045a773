// Package cli is the boxline command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesen/boxline/internal/config"
)

// app carries the state shared by every command once flags are parsed.
type app struct {
	cfgFile string
	cfg     config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "boxline",
		Short:         "Boxes and lines in the terminal",
		Long:          "boxline edits a diagram of labeled boxes joined by lines, saving after every change.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.boxline.yaml)")
	config.Flags(root.PersistentFlags())

	root.AddCommand(newEditCmd(a), newExportCmd(a), newCheckCmd(a))
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	v, err := config.New(cmd.Flags())
	if err != nil {
		return err
	}
	file, explicit := a.cfgFile, a.cfgFile != ""
	if !explicit {
		file = config.DefaultFile()
	}
	cfg, err := config.Load(v, file, explicit)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
