// Package language knows the UI languages the app ships with and how to map
// an arbitrary locale onto one of them.
package language

import (
	"os"
	"strings"

	"github.com/farmily/farmily/internal/devicex"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Default is used when nothing better matches.
const Default = "en"

var supported = []string{
	"en", "en-US", "en-GB", "en-AU", "en-CA",
	"ru", "ar", "ca", "zh-Hans", "zh-Hant",
	"hr", "cs", "da", "nl", "fi",
	"fr", "fr-CA", "de", "el", "he",
	"hi", "hu", "id", "it", "ja",
	"ko", "ms", "no", "pl", "pt-BR",
	"pt-PT", "ro", "sk", "es", "es-MX",
	"sv", "th", "tr", "uk", "vi",
}

var matcher = xlanguage.NewMatcher(supportedTags())

func supportedTags() []xlanguage.Tag {
	tags := make([]xlanguage.Tag, len(supported))
	for i, s := range supported {
		tags[i] = xlanguage.MustParse(s)
	}
	return tags
}

// Supported returns the shipped languages in menu order.
func Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether tag names a shipped language exactly.
func IsSupported(tag string) bool {
	_, ok := lookup(tag)
	return ok
}

func lookup(tag string) (string, bool) {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	for _, s := range supported {
		if strings.EqualFold(s, tag) {
			return s, true
		}
	}
	return "", false
}

// Resolve maps any BCP 47 or POSIX style tag to a shipped language.
func Resolve(tag string) string {
	if s, ok := lookup(tag); ok {
		return s
	}

	t, err := xlanguage.Parse(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
	if err != nil || t == xlanguage.Und {
		return Default
	}

	base, _ := t.Base()
	region, regionConf := t.Region()
	explicitRegion := ""
	if regionConf == xlanguage.Exact {
		explicitRegion = region.String()
		if s, ok := lookup(base.String() + "-" + explicitRegion); ok {
			return s
		}
	}

	switch base.String() {
	case "zh":
		script, scriptConf := t.Script()
		if (scriptConf == xlanguage.Exact && script.String() == "Hans") ||
			explicitRegion == "CN" || explicitRegion == "SG" {
			return "zh-Hans"
		}
		return "zh-Hant"
	case "fr":
		return "fr"
	case "es":
		return "es"
	}

	if s, ok := lookup(base.String()); ok {
		return s
	}

	_, idx, conf := matcher.Match(t)
	if conf == xlanguage.No {
		return Default
	}
	return supported[idx]
}

// System resolves the language configured in the process environment.
func System() string {
	return systemFrom(os.Getenv)
}

func systemFrom(getenv func(string) string) string {
	tag, ok := devicex.LocaleTag(getenv)
	if !ok {
		return Default
	}
	return Resolve(tag.String())
}

// NativeName is the language's name written in that language.
func NativeName(tag string) string {
	t, err := xlanguage.Parse(tag)
	if err != nil {
		return tag
	}
	if name := display.Self.Name(t); name != "" {
		return name
	}
	return tag
}
