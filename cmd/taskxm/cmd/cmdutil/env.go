// Package cmdutil holds the state shared by every taskxm command: the
// resolved configuration, the logger, the standard streams and the helpers
// that open, render and save the task file.
package cmdutil

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/mensylisir/taskxm/pkg/config"
	"github.com/mensylisir/taskxm/pkg/logger"
	"github.com/mensylisir/taskxm/pkg/printer"
	"github.com/mensylisir/taskxm/pkg/store"
)

// GlobalOptions are the persistent flags of the root command.
type GlobalOptions struct {
	ConfigFile string
	DataFile   string
	Output     string
	Template   string
	Verbose    bool
	NoColor    bool
}

// Env is created once per process (or per test) and filled in by Init.
type Env struct {
	Options GlobalOptions

	In  io.Reader
	Out io.Writer
	Err io.Writer

	Config *config.Config
	Log    *logger.Logger

	// IsTerminal reports whether progress bars may be drawn on w.
	IsTerminal func(w io.Writer) bool
}

func NewEnv(in io.Reader, out, errOut io.Writer) *Env {
	return &Env{
		In:         in,
		Out:        out,
		Err:        errOut,
		IsTerminal: isTerminal,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Init resolves the configuration, applies the flag overrides and builds the logger.
func (e *Env) Init() error {
	cfg, err := config.Resolve(e.Options.ConfigFile)
	if err != nil {
		return err
	}

	if e.Options.DataFile != "" {
		cfg.DataFile = e.Options.DataFile
	}
	if e.Options.Output != "" {
		cfg.Output.Format = strings.ToLower(e.Options.Output)
	}
	if e.Options.Template != "" {
		cfg.Output.Template = e.Options.Template
	}
	if e.Options.NoColor {
		cfg.Output.Color = false
		cfg.Log.Color = false
	}
	if err := config.Validate(cfg); err != nil {
		return errors.Wrap(err, "invalid flags")
	}

	log, err := logger.NewLoggerWithCustomSink(cfg.LoggerOptions(e.Options.Verbose), e.Err)
	if err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	e.Config = cfg
	e.Log = log
	return nil
}

// Printer returns a printer for the configured output format.
func (e *Env) Printer() (*printer.Printer, error) {
	return printer.New(e.Out,
		printer.WithFormat(e.Config.Output.Format),
		printer.WithTemplate(e.Config.Output.Template),
		printer.WithColor(e.Config.Output.Color),
	)
}

// Picker returns the randomness for simulated ticks, seeded from tick.seed when set.
func (e *Env) Picker() store.Picker {
	seed := e.Config.Tick.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// OpenStore returns a store holding the data file, or an empty one if the file does not exist yet.
func (e *Env) OpenStore() (*store.Store, error) {
	st := store.New(store.WithLogger(e.Log))
	path := e.Config.DataFile
	if _, err := os.Stat(path); os.IsNotExist(err) {
		e.Log.Debugf("data file %s does not exist, starting empty", path)
		return st, nil
	}

	opt, done := e.progress("Loading tasks")
	defer done()
	if err := st.Load(path, opt); err != nil {
		return nil, err
	}
	return st, nil
}

// SaveStore writes st back to the data file, creating its directory if needed.
func (e *Env) SaveStore(st *store.Store) error {
	path := e.Config.DataFile
	if err := ensureDir(path); err != nil {
		return err
	}
	opt, done := e.progress("Saving tasks")
	defer done()
	return st.Save(path, opt)
}

// progress draws a bar on stderr for files of at least output.progressThreshold tasks.
func (e *Env) progress(desc string) (store.PersistOption, func()) {
	threshold := e.Config.Output.ProgressThreshold
	var bar *progressbar.ProgressBar

	opt := store.WithProgress(func(done, total int) {
		if threshold <= 0 || total < threshold || !e.IsTerminal(e.Err) {
			return
		}
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription(desc),
				progressbar.OptionSetWriter(e.Err),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionThrottle(65*time.Millisecond),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	})

	return opt, func() {
		if bar != nil {
			_ = bar.Finish()
		}
	}
}

// Successf prints a confirmation line on Out, in green when colored output is enabled.
func (e *Env) Successf(format string, args ...interface{}) {
	c := color.New(color.FgGreen)
	if !e.Config.Output.Color {
		c.DisableColor()
	}
	c.Fprintf(e.Out, format+"\n", args...)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}
	return nil
}

// ParseID converts a task id argument.
func ParseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
