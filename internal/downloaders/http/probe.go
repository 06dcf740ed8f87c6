package fetchhttp

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Exists issues a HEAD request. Any status below 400 counts as present.
func (t *Transport) Exists(ctx context.Context, url string) bool {
	req, err := t.client.NewRequest(ctx, http.MethodHead, url)
	if err != nil {
		log.Warn().Str("op", "http/probe").Err(err).Msgf("invalid probe URL %s", url)
		return false
	}
	resp, err := t.client.Do(req)
	if err != nil {
		log.Warn().Str("op", "http/probe").Err(err).Msgf("probe failed for %s", url)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < http.StatusBadRequest
}
