package fetcher

import (
	"context"
	"strings"

	"github.com/tanq16/scenefetch/internal/utils"
)

// Router dispatches by URL scheme: s3:// goes to the object store backend,
// everything else to HTTP.
type Router struct {
	HTTP utils.Backend
	S3   utils.Backend
}

func (r *Router) pick(url string) (utils.Backend, error) {
	if strings.HasPrefix(url, "s3://") {
		if r.S3 == nil {
			return nil, &utils.FetchError{Kind: utils.KindConfig, URL: url, Message: "no S3 backend configured"}
		}
		return r.S3, nil
	}
	if r.HTTP == nil {
		return nil, &utils.FetchError{Kind: utils.KindConfig, URL: url, Message: "no HTTP backend configured"}
	}
	return r.HTTP, nil
}

func (r *Router) Fetch(ctx context.Context, url, outputPath string) error {
	b, err := r.pick(url)
	if err != nil {
		return err
	}
	return b.Fetch(ctx, url, outputPath)
}

func (r *Router) Exists(ctx context.Context, url string) bool {
	b, err := r.pick(url)
	if err != nil {
		return false
	}
	return b.Exists(ctx, url)
}
