package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/ui"
	"github.com/urfave/cli/v3"
)

// Menu launches the interactive console menu over the configured store.
//
// The store stays open for the whole session and is closed (and the file backend saved) on exit.
func (r *Runner) Menu(ctx context.Context, cmd *cli.Command) error {
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	return r.withCatalog(ctx, func(c *catalog.Catalog) error {
		p := tea.NewProgram(ui.NewModel(ctx, c), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running menu: %w", err)
		}
		return nil
	})
}
