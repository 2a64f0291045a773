package cli

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesen/boxline/internal/logging"
	"github.com/wesen/boxline/internal/persist"
	"github.com/wesen/boxline/internal/tui"
)

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the diagram editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The editor owns the terminal, so logs go to a file or nowhere.
			log, err := logging.File(a.cfg.Log.File, a.cfg.Log.Level)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			store, closeStore, err := openStore(a.cfg.Store, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					log.Error("close store", zap.Error(err))
				}
			}()

			sync := persist.NewSync(store, log)
			g, err := sync.Load()
			if err != nil {
				return err
			}

			model := tui.New(tui.Options{
				Graph:         g,
				Committer:     sync,
				Zoom:          a.cfg.Zoom.ZoomConfig(),
				WheelStep:     a.cfg.Zoom.WheelStep,
				Placeholder:   a.cfg.Editor.Placeholder,
				FrameInterval: a.cfg.UI.FrameInterval,
				Logger:        log,
			})
			log.Info("editor started",
				zap.String("session", model.Editor().Session()),
				zap.String("backend", a.cfg.Store.Backend))

			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("editor: %w", err)
			}
			log.Info("editor closed", zap.Int("commits", sync.Commits()))
			return nil
		},
	}
}
