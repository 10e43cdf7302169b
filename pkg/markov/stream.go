package markov

import (
	"context"
	"log/slog"
)

// BabbleStream generates one sentence and returns a read-only channel of its
// tokens, excluding the boundary markers. This allows processing generated
// text token-by-token. The channel is closed once the end marker is drawn,
// the step bound is exceeded, the walk dead-ends, or the context is
// cancelled; error conditions are logged rather than returned, since the
// consumer only sees the channel.
func (b *Babbler) BabbleStream(ctx context.Context) <-chan Token {
	tokenChan := make(chan Token)

	go func() {
		defer close(tokenChan)

		if b.model.Len() == 0 {
			b.logger.ErrorContext(ctx, "stream aborted: empty model")
			return
		}

		current := StartToken
		for steps := 0; steps < b.opts.maxSteps; steps++ {
			select {
			case <-ctx.Done():
				b.logger.DebugContext(ctx, "stream cancelled by context")
				return
			default:
			}

			next, err := b.transition(current)
			if err != nil {
				b.logger.ErrorContext(ctx, "stream aborted",
					slog.String("token", string(current)),
					slog.Any("error", err),
				)
				return
			}
			if next == EndToken {
				return
			}

			select {
			case <-ctx.Done():
				b.logger.DebugContext(ctx, "stream cancelled by context")
				return
			case tokenChan <- next:
			}
			current = next
		}

		b.logger.DebugContext(ctx, "stream stopped at step bound",
			slog.Int("max_steps", b.opts.maxSteps),
		)
	}()

	return tokenChan
}
