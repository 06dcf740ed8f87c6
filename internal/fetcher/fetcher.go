package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/scenefetch/internal/utils"
)

const (
	DefaultMaxAttempts = 5
	DefaultBackoff     = 500 * time.Millisecond
	DefaultPause       = 200 * time.Millisecond
)

type Options struct {
	// MaxAttempts bounds the number of transfers tried for truncated responses.
	MaxAttempts int
	// Backoff is waited after a truncated attempt before the next one.
	Backoff time.Duration
	// Pause is waited after every successful transfer to stay under the
	// remote host's rate limiting.
	Pause time.Duration
	Sleep utils.Sleeper
}

func DefaultOptions() Options {
	return Options{
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultBackoff,
		Pause:       DefaultPause,
		Sleep:       utils.Sleep,
	}
}

// RetryingFetcher downloads one remote resource to one local path, retrying
// only truncated transfers.
type RetryingFetcher struct {
	transport utils.Transport
	opts      Options
}

func New(transport utils.Transport, opts Options) *RetryingFetcher {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.Sleep == nil {
		opts.Sleep = utils.Sleep
	}
	return &RetryingFetcher{transport: transport, opts: opts}
}

// Fetch returns nil once outputPath holds the complete resource, or a
// *utils.FetchError describing why it could not be obtained.
func (f *RetryingFetcher) Fetch(ctx context.Context, url, outputPath string) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return utils.NewFetchError(utils.KindTransport, url, err)
		}
		err := f.transport.Fetch(ctx, url, outputPath)
		if err == nil {
			f.opts.Sleep(ctx, f.opts.Pause)
			return nil
		}
		fe := asFetchError(url, err)
		if !fe.Retryable() {
			reportFatal(fe)
			return fe
		}
		log.Error().Str("op", "fetcher/fetcher").Int("attempt", attempt).Msgf("content too short for %s, the download was likely interrupted", url)
		if err := utils.RemoveIfExists(outputPath); err != nil {
			return utils.NewFetchError(utils.KindTransport, url, fmt.Errorf("error removing partial file: %w", err))
		}
		if attempt >= f.opts.MaxAttempts {
			log.Error().Str("op", "fetcher/fetcher").Msgf("failed to download %s after %d attempts", url, f.opts.MaxAttempts)
			return fe
		}
		f.opts.Sleep(ctx, f.opts.Backoff)
	}
}

func asFetchError(url string, err error) *utils.FetchError {
	var fe *utils.FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return utils.NewFetchError(utils.KindTransport, url, err)
}

func reportFatal(fe *utils.FetchError) {
	logger := log.Error().Str("op", "fetcher/fetcher").Str("kind", fe.Kind.String())
	switch fe.Kind {
	case utils.KindUnauthorized:
		logger.Msgf("error accessing %s: the token may be invalid or expired", fe.URL)
	case utils.KindNotFound:
		logger.Msgf("error accessing %s: not found", fe.URL)
	case utils.KindProtocolMismatch:
		logger.Int("status", fe.Status).Str("message", fe.Message).Msgf("error accessing %s: please update scenefetch and try again", fe.URL)
	default:
		logger.Int("status", fe.Status).Str("message", fe.Message).Err(fe.Err).Msgf("error accessing %s", fe.URL)
	}
}
