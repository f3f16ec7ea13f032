package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/farmily/farmily/internal/client/language"
	"github.com/farmily/farmily/internal/client/resolver"
)

// Run shows whatever the resolver decides and blocks until the user leaves.
func (a *App) Run(ctx context.Context) error {
	cancel := a.gate.Subscribe(func(s resolver.State) {
		a.log.Info(ctx, "gate state changed", "state", s.String())
		if s.Kind == resolver.ShowRemoteContent && a.inREPL.Load() {
			a.println()
			a.println(a.palette().muted.Render("Content is ready. Press Enter to open it."))
		}
	})
	defer cancel()

	stop := make(chan struct{})
	defer close(stop)
	go a.logSettled(ctx, stop)

	welcomed := false
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		v := a.gate.View()
		switch {
		case v.ShowRemoteContent:
			return a.showContent(ctx, v.ContentURL)

		case v.ShowLanguagePrompt:
			err := a.pickLanguage(ctx)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			a.log.Info(ctx, "language prompt dismissed", "has_pending_content", a.gate.PendingURL() != "")
			if err := a.gate.LanguagePromptDismissed(ctx); err != nil {
				a.log.Warn(ctx, "language prompt flag not saved", "error", err)
			}

		default:
			if !welcomed {
				a.println(a.palette().accent.Render("Welcome to Farmily") + " (type 'help' for commands)")
				welcomed = true
			}
			a.inREPL.Store(true)
			url := runREPL(ctx, a, a.reader, a.out)
			a.inREPL.Store(false)
			if url == "" {
				return nil
			}
			return a.showContent(ctx, url)
		}
	}
}

// logSettled records when the gate fetch has finished and what the shell
// would show at that moment.
func (a *App) logSettled(ctx context.Context, stop <-chan struct{}) {
	select {
	case <-a.gate.Done():
		v := a.gate.View()
		a.log.Info(ctx, "gate settled", "remote", v.ShowRemoteContent, "prompt", v.ShowLanguagePrompt)
	case <-stop:
	case <-ctx.Done():
	}
}

// showContent renders the content frame and waits for exit, quit or the end
// of input.
func (a *App) showContent(ctx context.Context, url string) error {
	a.log.Info(ctx, "showing remote content")
	a.println(renderContentFrame(url, a.width(), a.palette()))

	for ctx.Err() == nil {
		line, err := readLine(a.reader)
		if err != nil {
			return nil
		}
		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		}
	}
	return nil
}

// pickLanguage is the one-time language prompt. The system language is the
// default answer.
func (a *App) pickLanguage(ctx context.Context) error {
	tags := language.Supported()
	options := make([]string, len(tags))
	def := 0
	system := language.System()
	for i, tag := range tags {
		options[i] = language.NativeName(tag) + " (" + tag + ")"
		if tag == system {
			def = i
		}
	}

	a.println(a.palette().accent.Render("Choose your language"))
	i, err := GetChoice(a.reader, "Language", options, def, a.out)
	if err != nil {
		return err
	}
	if err := a.languages.SetLanguage(ctx, tags[i]); err != nil {
		_ = a.fail(ctx, "language", err)
	}
	return nil
}
