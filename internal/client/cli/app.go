package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/farmily/farmily/internal/client/resolver"
	"github.com/farmily/farmily/internal/client/services"
	"github.com/farmily/farmily/internal/logging"
)

// GateResolver is the part of the resolver the shell reacts to.
type GateResolver interface {
	View() resolver.View
	PendingURL() string
	LanguagePromptDismissed(ctx context.Context) error
	Subscribe(fn func(resolver.State)) (cancel func())
	Done() <-chan struct{}
}

// BackupService exports and restores the herd.
type BackupService interface {
	Enabled() bool
	Export(ctx context.Context) (string, error)
	List(ctx context.Context) ([]string, error)
	Restore(ctx context.Context, key string) (int, error)
}

// Deps are the collaborators of the shell. In and Out are required.
type Deps struct {
	Resolver  GateResolver
	Animals   services.AnimalService
	Languages *services.LanguageManager
	Themes    *services.ThemeManager
	Settings  services.SettingsService
	Backup    BackupService
	Logger    logging.Logger

	In  io.Reader
	Out io.Writer
}

type App struct {
	gate      GateResolver
	animals   services.AnimalService
	languages *services.LanguageManager
	themes    *services.ThemeManager
	settings  services.SettingsService
	backup    BackupService
	log       logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// width reports the terminal width in columns.
	width func() int
	// hasDark reports whether the terminal background is dark.
	hasDark func() bool

	inREPL atomic.Bool
}

func NewApp(d Deps) *App {
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		gate:      d.Resolver,
		animals:   d.Animals,
		languages: d.Languages,
		themes:    d.Themes,
		settings:  d.Settings,
		backup:    d.Backup,
		log:       log.With("component", "shell"),
		reader:    bufio.NewReader(d.In),
		out:       &lockedWriter{mu: &sync.Mutex{}, w: d.Out},
		width:     terminalWidth,
		hasDark:   hasDarkBackground,
	}
}

// lockedWriter serialises writes from the REPL and resolver notifications.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail reports err to the user and the log file.
func (a *App) fail(ctx context.Context, op string, err error) error {
	a.log.Warn(ctx, "command failed", "command", op, "error", err)
	a.println(a.palette().danger.Render("error: " + err.Error()))
	return err
}

// remoteContent reports the content URL once the resolver has settled on it.
func (a *App) remoteContent() (string, bool) {
	v := a.gate.View()
	return v.ContentURL, v.ShowRemoteContent
}

// prompt is the REPL prompt, e.g. "farmily (en) > ".
func (a *App) prompt() string {
	return fmt.Sprintf("farmily (%s) > ", a.languages.Current())
}
