package devicex

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func fixedRelease(osVersion, model string) func() (string, string) {
	return func() (string, string) { return osVersion, model }
}

func TestCurrent_FromLocale(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantLang   string
		wantRegion string
	}{
		{"posix with region", map[string]string{"LANG": "ru_RU.UTF-8"}, "ru", "RU"},
		{"lc_all wins over lang", map[string]string{"LC_ALL": "de_AT", "LANG": "fr_FR"}, "de", "AT"},
		{"lc_messages before lang", map[string]string{"LC_MESSAGES": "pt_BR.UTF-8", "LANG": "en_US"}, "pt", "BR"},
		{"language only", map[string]string{"LANG": "sv"}, "sv", UnknownRegion},
		{"modifier stripped", map[string]string{"LANG": "ca_ES@valencia"}, "ca", "ES"},
		{"c locale falls back", map[string]string{"LANG": "C.UTF-8"}, DefaultLanguage, UnknownRegion},
		{"nothing set", map[string]string{}, DefaultLanguage, UnknownRegion},
		{"garbage skipped", map[string]string{"LC_ALL": "!!", "LANG": "ja_JP"}, "ja", "JP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := current(env(tt.env), fixedRelease("6.1.0", "x86_64"))
			assert.Equal(t, tt.wantLang, info.Language)
			assert.Equal(t, tt.wantRegion, info.Region)
			assert.Equal(t, "6.1.0", info.OSVersion)
			assert.Equal(t, "x86_64", info.Model)
		})
	}
}

func TestCurrent_ReleaseFallback(t *testing.T) {
	info := current(env(nil), fixedRelease("", ""))
	assert.Equal(t, runtime.GOOS, info.OSVersion)
	assert.Equal(t, runtime.GOARCH, info.Model)
}

func TestLocaleTag(t *testing.T) {
	tag, ok := LocaleTag(env(map[string]string{"LANG": "zh_TW.UTF-8"}))
	require.True(t, ok)
	assert.Equal(t, "zh-TW", tag.String())

	_, ok = LocaleTag(env(map[string]string{"LANG": "POSIX"}))
	assert.False(t, ok)
}

func TestCurrent_RealHost(t *testing.T) {
	info := Current()
	assert.NotEmpty(t, info.OSVersion)
	assert.NotEmpty(t, info.Model)
	assert.NotEmpty(t, info.Language)
	assert.NotEmpty(t, info.Region)
}
