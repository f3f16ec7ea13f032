// Package devicex collects the host metadata sent with the gate request:
// OS release, machine identifier and the user's locale.
package devicex

import (
	"os"
	"runtime"
	"strings"

	"golang.org/x/text/language"
)

const (
	DefaultLanguage = "en"
	// UnknownRegion is reported when the locale carries no explicit region.
	UnknownRegion = "00"
)

// Info describes the running host.
type Info struct {
	OSVersion string
	Model     string
	Language  string
	Region    string
}

// Current inspects the host and the process environment.
func Current() Info {
	return current(os.Getenv, systemRelease)
}

func current(getenv func(string) string, release func() (string, string)) Info {
	osVersion, model := release()
	if osVersion == "" {
		osVersion = runtime.GOOS
	}
	if model == "" {
		model = runtime.GOARCH
	}

	info := Info{
		OSVersion: osVersion,
		Model:     model,
		Language:  DefaultLanguage,
		Region:    UnknownRegion,
	}

	tag, ok := LocaleTag(getenv)
	if !ok {
		return info
	}

	if base, conf := tag.Base(); conf != language.No && base.String() != "und" {
		info.Language = base.String()
	}
	if region, conf := tag.Region(); conf == language.Exact {
		info.Region = region.String()
	}
	return info
}

// LocaleTag returns the first parsable locale among LC_ALL, LC_MESSAGES and
// LANG. POSIX forms such as "pt_BR.UTF-8@euro" are accepted.
func LocaleTag(getenv func(string) string) (language.Tag, bool) {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		raw := getenv(key)
		if raw == "" {
			continue
		}
		tag, err := language.Parse(posixToBCP47(raw))
		if err != nil || tag == language.Und {
			continue
		}
		return tag, true
	}
	return language.Und, false
}

func posixToBCP47(s string) string {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}
