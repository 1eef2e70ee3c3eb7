package app

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tatememo/internal/config"
	"github.com/kobzarvs/tatememo/internal/logger"
	"github.com/kobzarvs/tatememo/internal/platform/keyboard"
	"github.com/kobzarvs/tatememo/internal/store"
	"github.com/kobzarvs/tatememo/internal/ui"
)

var ErrUsage = errors.New("usage: tatememo [--debug] [--store PATH]")

// Options are the command line settings.
type Options struct {
	Debug     bool
	StorePath string
}

// ParseArgs reads the command line after the program name.
func ParseArgs(args []string) (Options, error) {
	var opts Options
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--":
		case "--debug":
			opts.Debug = true
		case "--store":
			if i+1 >= len(args) || args[i+1] == "" {
				return opts, fmt.Errorf("%w: --store needs a path", ErrUsage)
			}
			i++
			opts.StorePath = args[i]
		default:
			return opts, fmt.Errorf("%w: unknown argument %q", ErrUsage, arg)
		}
	}
	return opts, nil
}

// App is the top-level runtime for tatememo.
type App struct {
	opts Options
}

func New(opts Options) *App {
	return &App{opts: opts}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Editor.Debug || a.opts.Debug); err != nil {
		return err
	}
	defer logger.Close()

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Stop(); err != nil {
			logger.Error("store flush failed", "path", st.Path(), "error", err)
		}
	}()
	logger.Info("started", "store", st.Path(), "memos", st.Len())

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	defer s.Fini()

	stopLayout := make(chan struct{})
	defer close(stopLayout)
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stopLayout:
				return
			case <-ticker.C:
				_ = s.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	ed := ui.New(cfg, st)
	lastLayoutRaw := keyboard.CurrentLayoutRaw()
	ed.SetKeyboardLayout(keyboard.CurrentLayout())

	ed.Render(s)
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			ed.HandleMouse(ev)
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventInterrupt:
			layoutRaw := keyboard.CurrentLayoutRaw()
			if layoutRaw == lastLayoutRaw {
				continue
			}
			lastLayoutRaw = layoutRaw
			ed.SetKeyboardLayout(keyboard.CurrentLayout())
		}
		ed.Render(s)
	}
}

func (a *App) openStore() (*store.Manager, error) {
	if a.opts.StorePath != "" {
		return store.Open(a.opts.StorePath)
	}
	return store.NewManager()
}
