package cli

import (
	"context"
	"slices"

	"github.com/farmily/farmily/internal/client/language"
	"github.com/farmily/farmily/internal/client/models"
)

// secretSettings are shown masked by the settings command.
var secretSettings = map[string]bool{
	models.KeyToken: true,
	models.KeyLink:  true,
}

// Theme switches the colour scheme.
func (a *App) Theme(ctx context.Context) error {
	options := make([]string, len(models.Themes))
	def := 0
	for i, t := range models.Themes {
		options[i] = string(t)
		if t == a.themes.Current() {
			def = i
		}
	}

	i, err := GetChoice(a.reader, "Theme", options, def, a.out)
	if err != nil {
		return a.fail(ctx, "theme", err)
	}
	if err := a.themes.SetTheme(ctx, models.Themes[i]); err != nil {
		return a.fail(ctx, "theme", err)
	}
	a.printf("Theme set to %s\n", a.palette().accent.Render(string(models.Themes[i])))
	return nil
}

// Language switches the UI language.
func (a *App) Language(ctx context.Context) error {
	tags := language.Supported()
	options := make([]string, len(tags))
	def := 0
	for i, tag := range tags {
		options[i] = language.NativeName(tag) + " (" + tag + ")"
		if tag == a.languages.Current() {
			def = i
		}
	}

	i, err := GetChoice(a.reader, "Language", options, def, a.out)
	if err != nil {
		return a.fail(ctx, "language", err)
	}
	if err := a.languages.SetLanguage(ctx, tags[i]); err != nil {
		return a.fail(ctx, "language", err)
	}
	a.printf("Language set to %s\n", language.NativeName(tags[i]))
	return nil
}

// Settings prints every stored setting. Gate credentials are masked.
func (a *App) Settings(ctx context.Context) error {
	stored, err := a.settings.Stored(ctx)
	if err != nil {
		return a.fail(ctx, "settings", err)
	}
	if len(stored) == 0 {
		a.println("Nothing stored yet")
		return nil
	}

	keys := make([]string, 0, len(stored))
	for k := range stored {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	p := a.palette()
	for _, k := range keys {
		v := stored[k]
		if secretSettings[k] && v != "" {
			v = "********"
		}
		a.printf("%-26s %s\n", p.muted.Render(k), v)
	}
	return nil
}

// Reset forgets the language and theme preferences after confirmation.
func (a *App) Reset(ctx context.Context) error {
	i, err := GetChoice(a.reader, "Reset language and theme", []string{"no", "yes"}, 0, a.out)
	if err != nil {
		return a.fail(ctx, "reset", err)
	}
	if i == 0 {
		a.println("Nothing changed")
		return nil
	}

	if err := a.settings.ResetPreferences(ctx); err != nil {
		return a.fail(ctx, "reset", err)
	}
	if err := a.languages.Reload(ctx); err != nil {
		return a.fail(ctx, "reset", err)
	}
	if err := a.themes.Reload(ctx); err != nil {
		return a.fail(ctx, "reset", err)
	}
	a.log.Info(ctx, "preferences reset")
	a.printf("Preferences reset to %s, %s\n", a.languages.Current(), a.themes.Current())
	return nil
}
