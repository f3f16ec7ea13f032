package racex

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFirstOf_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("a single op's outcome is returned unchanged", prop.ForAll(
		func(v string, fail bool) bool {
			var opErr error
			if fail {
				opErr = errors.New(v)
			}
			got, err := FirstOf(context.Background(), func(context.Context) (string, error) {
				return v, opErr
			})
			if fail {
				return err == opErr
			}
			return err == nil && got == v
		},
		gen.AnyString(),
		gen.Bool(),
	))

	properties.Property("an immediate op always beats a blocked one", prop.ForAll(
		func(v int) bool {
			blocked := func(ctx context.Context) (int, error) {
				<-ctx.Done()
				return 0, ctx.Err()
			}
			immediate := func(context.Context) (int, error) { return v, nil }

			got, err := FirstOf(context.Background(), blocked, immediate, blocked)
			return err == nil && got == v
		},
		gen.Int(),
	))

	properties.Property("an op that never settles times out", prop.ForAll(
		func(ms int) bool {
			_, err := WithTimeout(context.Background(), time.Duration(ms)*time.Millisecond,
				func(ctx context.Context) (int, error) {
					<-ctx.Done()
					return 0, ctx.Err()
				})
			return errors.Is(err, ErrTimeout)
		},
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}
