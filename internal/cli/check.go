package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesen/boxline/internal/logging"
	"github.com/wesen/boxline/pkg/graphmodel"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the stored diagram",
		Long:  "check decodes the stored diagram, fails on malformed data, verifies that every edge joins two existing nodes, and prints counts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.Console(a.cfg.Log.Level)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			store, closeStore, err := openStore(a.cfg.Store, log)
			if err != nil {
				return err
			}
			defer closeStore()

			// Unlike the editor, malformed data is an error here.
			data, ok, err := store.Load()
			if err != nil {
				return err
			}
			g := graphmodel.New()
			if ok {
				if g, err = graphmodel.Decode(data); err != nil {
					return err
				}
			}
			if err := g.CheckIntegrity(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d nodes, %d edges, next id %d\n",
				g.NodeCount(), g.EdgeCount(), g.NextID())
			return nil
		},
	}
}
