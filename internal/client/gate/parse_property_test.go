package gate

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func withoutHash(s string) string { return strings.ReplaceAll(s, "#", "") }

func TestParseResponse_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("token and url round-trip through the first separator", prop.ForAll(
		func(token, link string) bool {
			cred, err := ParseResponse([]byte(token + "#" + link))
			return err == nil && cred.Token == token && cred.ContentURL == link
		},
		gen.AnyString().Map(withoutHash),
		gen.AnyString(),
	))

	properties.Property("a body without '#' is always malformed", prop.ForAll(
		func(body string) bool {
			_, err := ParseResponse([]byte(body))
			return errors.Is(err, ErrMalformedResponse)
		},
		gen.AnyString().Map(withoutHash),
	))

	properties.Property("the url keeps every later '#'", prop.ForAll(
		func(token string, parts []string) bool {
			link := strings.Join(parts, "#")
			cred, err := ParseResponse([]byte(token + "#" + link))
			return err == nil && cred.ContentURL == link && strings.Count(cred.ContentURL, "#") == strings.Count(link, "#")
		},
		gen.AlphaString(),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
