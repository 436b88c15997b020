package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"folio/internal/adapters/editor"
	"folio/internal/adapters/tui"
	"folio/internal/adapters/tui/views"
	"folio/internal/adapters/watcher"
	"folio/internal/application"
	"folio/internal/config"
	"folio/internal/logging"
	"folio/internal/workspace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("folio needs a terminal; use folio-cli for scripting")
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}

	log, closer, err := logging.OpenFile(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		log = logging.Discard()
	} else {
		defer closer.Close()
	}

	ws, err := workspace.Open(cfg, log)
	if err != nil {
		return err
	}
	defer ws.Close()

	root, err := ws.Env.LoadTree()
	if err != nil {
		return err
	}

	session := application.NewSession(root, ws.Env.Blob, application.SessionOptions{
		Policy:        ws.Env.Policy,
		Frames:        cfg.AnimationFrames,
		ReducedMotion: cfg.ReducedMotion,
		Logger:        log,
	})
	defer func() {
		if err := session.Collapse.Flush(); err != nil {
			log.WithError(err).Warn("collapse state not saved")
		}
	}()

	browser := views.NewBrowserModel(session, ws.Env.Source, views.BrowserOptions{
		FrameInterval:   cfg.FrameInterval(),
		NativeScrollbar: cfg.Scrollbar == "native",
		MarkdownStyle:   cfg.MarkdownStyle,
		Logger:          log,
	})
	app := tui.NewApp(browser, editor.NewOpener(cfg.Editor))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if ws.Notebook != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := watch(ctx, ws.Notebook.Root(), p, log); err != nil {
			log.WithError(err).Warn("live reload disabled")
		}
	}

	log.WithFields(logrus.Fields{
		"root":  root.Name,
		"nodes": len(session.Rows()),
	}).Info("folio started")

	_, err = p.Run()
	return err
}

// watch reloads the tree when notes change on disk
func watch(ctx context.Context, dir string, p *tea.Program, log logrus.FieldLogger) error {
	w, err := watcher.New(dir,
		watcher.WithLogger(log),
		watcher.WithOnChange(func() {
			p.Send(views.NotebookChangedMsg{})
		}),
		watcher.WithOnError(func(err error) {
			log.WithError(err).Warn("watcher error")
		}),
	)
	if err != nil {
		return err
	}
	return w.Start(ctx)
}
