// Package app wires the overlay engine, dispatch, scripting, and the
// terminal into a runnable application.
package app

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/overkey/internal/config"
	"github.com/dshills/overkey/internal/dispatch"
	"github.com/dshills/overkey/internal/input"
	"github.com/dshills/overkey/internal/input/key"
	"github.com/dshills/overkey/internal/input/overlay"
	"github.com/dshills/overkey/internal/input/record"
	"github.com/dshills/overkey/internal/input/source"
	"github.com/dshills/overkey/internal/lighter"
	"github.com/dshills/overkey/internal/script"
)

// Options configures an App.
type Options struct {
	// ConfigPath is the TOML config file; empty uses defaults.
	ConfigPath string

	// ScriptPath is a Lua script run at startup; empty skips scripting.
	ScriptPath string

	// LogLevel overrides the configured level when non-empty.
	LogLevel string

	// WatchConfig reloads the config file on change.
	WatchConfig bool
}

// App owns every component and the interactive run loop.
type App struct {
	log      *Logger
	cfg      config.Config
	screen   tcell.Screen
	term     *source.Terminal
	guard    *source.Guard
	engine   *input.Engine
	resolver *dispatch.Resolver
	light    *lighter.Lighter
	host     *script.Host
	watcher  *config.Watcher

	macrosPath string
}

// New builds the application. The terminal screen is initialized here;
// call Shutdown to release it.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	log := NewLogger(LoggerConfig{Level: ParseLogLevel(level), Prefix: "overkey"})

	quit, err := cfg.QuitSequence()
	if err != nil {
		return nil, err
	}
	end, err := cfg.MacroEndSequence()
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("app: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("app: init screen: %w", err)
	}

	term := source.NewTerminal(screen)
	guard := source.NewGuard(term, quit)

	engine, err := input.New(input.Options{
		Registry: overlay.NewRegistry(cfg.MaxOverlays),
		Reader:   guard,
		Logger:   log.WithComponent("engine"),
		MacroEnd: end,
		Chains:   cfg.ChainNames(),
	})
	if err != nil {
		screen.Fini()
		return nil, err
	}
	if err := engine.RegisterCommands(); err != nil {
		screen.Fini()
		return nil, err
	}

	a := &App{
		log:    log,
		cfg:    cfg,
		screen: screen,
		term:   term,
		guard:  guard,
		engine: engine,
	}
	a.resolver = dispatch.NewResolver(engine.Registry(), engine.Commands(), nil, a.play)

	a.light = lighter.New(lighter.Style(cfg.Lighter.Style))
	a.light.SetStatic(cfg.Lighter.Static)

	if err := engine.Commands().Register("quit", func() error { return ErrQuit }); err != nil {
		screen.Fini()
		return nil, err
	}

	a.macrosPath = cfg.MacrosPath
	if a.macrosPath == "" {
		if p, err := record.DefaultPath(); err == nil {
			a.macrosPath = p
		}
	}
	if a.macrosPath != "" {
		if err := record.Load(engine.Store(), a.macrosPath); err != nil {
			log.Warn("loading macros: %v", err)
		}
	}

	a.host = script.NewHost(engine.Commands())
	if opts.ScriptPath != "" {
		if err := a.host.DoFile(opts.ScriptPath); err != nil {
			a.Shutdown()
			return nil, err
		}
	}

	if opts.WatchConfig && opts.ConfigPath != "" {
		w, err := config.Watch(opts.ConfigPath, a.applyConfig, func(err error) {
			log.Error("config reload: %v", err)
		})
		if err != nil {
			log.Warn("config watch unavailable: %v", err)
		} else {
			a.watcher = w
		}
	}

	return a, nil
}

// applyConfig applies the live-reloadable parts of a changed config.
func (a *App) applyConfig(cfg config.Config) {
	a.log.Info("config reloaded")
	a.log.SetLevel(ParseLogLevel(cfg.LogLevel))

	if quit, err := cfg.QuitSequence(); err == nil {
		a.guard.SetQuit(quit)
	}
	a.light = lighter.New(lighter.Style(cfg.Lighter.Style))
	a.light.SetStatic(cfg.Lighter.Static)
	a.cfg = cfg
}

// Engine exposes the binding engine.
func (a *App) Engine() *input.Engine {
	return a.engine
}

// play replays a recorded sequence one keystroke at a time through the
// resolver. Unbound keystrokes are skipped rather than failing the
// whole playback.
func (a *App) play(seq *key.Sequence) error {
	for _, ev := range seq.Events {
		if err := a.resolver.Dispatch(key.From(ev)); err != nil {
			if errors.Is(err, dispatch.ErrUnbound) {
				continue
			}
			return err
		}
	}
	return nil
}

// step dispatches one read sequence and feeds the recorder. Recording
// is checked on both sides of the dispatch so neither the keystroke
// that starts a session nor the one that ends it lands in the macro,
// matching the end-marker stripping of nested capture.
func (a *App) step(seq *key.Sequence) error {
	wasRecording := a.engine.Recording()
	err := a.resolver.Dispatch(seq)
	if wasRecording && a.engine.Recording() {
		for _, ev := range seq.Events {
			a.engine.RecordEvent(ev)
		}
	}
	return err
}

// Run drives the interactive loop: read a sequence, step it through
// dispatch and the recorder, render the indicator. Returns nil on a
// clean quit.
func (a *App) Run() error {
	a.log.Info("ready, %d overlay slots", a.engine.Registry().MaxOverlays())

	for {
		seq, err := a.guard.ReadSequence(a.light.Render(a.engine.Registry()))
		if err != nil {
			if errors.Is(err, source.ErrUserAbort) {
				if qerr := a.engine.QuitAll(); qerr != nil && !errors.Is(qerr, source.ErrUserAbort) {
					a.log.Error("quit-all: %v", qerr)
				}
				continue
			}
			if errors.Is(err, source.ErrExhausted) {
				return nil
			}
			return err
		}

		if err := a.step(seq); err != nil {
			switch {
			case errors.Is(err, ErrQuit):
				return nil
			case errors.Is(err, dispatch.ErrUnbound):
				a.log.Debug("unbound: %s", seq.Describe())
			case errors.Is(err, source.ErrUserAbort):
				a.log.Debug("aborted: %s", seq.Describe())
			default:
				a.log.Error("dispatch %s: %v", seq.Describe(), err)
			}
		}
	}
}

// Shutdown persists macros and releases every component.
func (a *App) Shutdown() {
	if a.macrosPath != "" {
		if err := record.Save(a.engine.Store(), a.macrosPath); err != nil {
			a.log.Error("saving macros: %v", err)
		}
	}
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.host != nil {
		a.host.Close()
	}
	if a.term != nil {
		a.term.Close()
	}
	if a.screen != nil {
		a.screen.Fini()
	}
	a.log.Info("shut down")
}
