// Package spinner shows a progress indicator for slow operations.
//
// The indicator is debounced: it only appears if the guarded operation is
// still running after Config.Debounce, so fast commands print nothing.
package spinner

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"
)

const (
	DefaultMessage  = "Collecting Data..."
	DefaultDebounce = 300 * time.Millisecond
)

// Indicator is a running progress display.
type Indicator interface {
	Start()
	Stop()
}

// Factory builds an indicator showing message on w.
type Factory func(message string, w io.Writer) Indicator

// Config controls a spinner.
type Config struct {
	Message  string
	Debounce time.Duration
	Writer   io.Writer
	Factory  Factory
}

// DefaultConfig returns a dots spinner on stderr after 300ms.
func DefaultConfig() Config {
	return Config{
		Message:  DefaultMessage,
		Debounce: DefaultDebounce,
		Writer:   os.Stderr,
		Factory:  Dots,
	}
}

// Dots is the terminal indicator.
func Dots(message string, w io.Writer) Indicator {
	return spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithWriter(w),
		spinner.WithSuffix(" "+message),
	)
}

// Guard owns a debounced spinner goroutine.
type Guard struct {
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	started atomic.Bool
}

// Start launches the debounce goroutine. Callers must call Stop.
func Start(cfg Config) *Guard {
	def := DefaultConfig()
	if cfg.Message == "" {
		cfg.Message = def.Message
	}
	if cfg.Writer == nil {
		cfg.Writer = def.Writer
	}
	if cfg.Factory == nil {
		cfg.Factory = def.Factory
	}

	g := &Guard{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go g.run(cfg)
	return g
}

func (g *Guard) run(cfg Config) {
	defer close(g.done)

	timer := time.NewTimer(cfg.Debounce)
	defer timer.Stop()

	select {
	case <-g.stop:
		return
	case <-timer.C:
	}

	ind := cfg.Factory(cfg.Message, cfg.Writer)
	ind.Start()
	g.started.Store(true)
	<-g.stop
	ind.Stop()
}

// Stop signals the goroutine and waits for it to exit. Safe to call more
// than once and on a nil Guard.
func (g *Guard) Stop() {
	if g == nil {
		return
	}
	g.once.Do(func() { close(g.stop) })
	<-g.done
}

// Started reports whether the indicator was shown.
func (g *Guard) Started() bool {
	return g != nil && g.started.Load()
}
