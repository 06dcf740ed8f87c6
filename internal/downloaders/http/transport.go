package fetchhttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/scenefetch/internal/utils"
)

// maxDiagnosticBytes caps how much of an error body is kept for the error message.
const maxDiagnosticBytes = 4096

// Transport fetches plain HTTP(S) URLs, one attempt per call.
type Transport struct {
	client *utils.ScenefetchHTTPClient
}

func NewTransport(cfg utils.HTTPClientConfig) *Transport {
	return &Transport{client: utils.NewScenefetchHTTPClient(cfg)}
}

// Fetch streams url into a .part file next to outputPath and renames it into
// place once the declared length has been received. Any failure removes the
// .part file, so outputPath only ever appears complete.
func (t *Transport) Fetch(ctx context.Context, url, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return utils.NewFetchError(utils.KindTransport, url, fmt.Errorf("error creating output directory: %w", err))
	}
	req, err := t.client.NewRequest(ctx, http.MethodGet, url)
	if err != nil {
		return utils.NewFetchError(utils.KindTransport, url, fmt.Errorf("error creating GET request: %w", err))
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return utils.NewFetchError(utils.KindTransport, url, fmt.Errorf("error executing GET request: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(url, resp)
	}

	tempPath := outputPath + utils.PartSuffix
	written, err := writeBody(resp.Body, tempPath)
	if err != nil {
		utils.RemoveIfExists(tempPath)
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return &utils.FetchError{Kind: utils.KindTruncated, URL: url, Message: fmt.Sprintf("received %d of %d bytes", written, resp.ContentLength), Err: err}
		}
		return utils.NewFetchError(utils.KindTransport, url, err)
	}
	if resp.ContentLength >= 0 && written < resp.ContentLength {
		utils.RemoveIfExists(tempPath)
		return &utils.FetchError{Kind: utils.KindTruncated, URL: url, Message: fmt.Sprintf("received %d of %d bytes", written, resp.ContentLength)}
	}
	if err := os.Rename(tempPath, outputPath); err != nil {
		utils.RemoveIfExists(tempPath)
		return utils.NewFetchError(utils.KindTransport, url, fmt.Errorf("error renaming (finalizing) output file: %w", err))
	}
	log.Debug().Str("op", "http/transport").Str("size", utils.FormatBytes(uint64(written))).Msgf("fetched %s", outputPath)
	return nil
}

func writeBody(body io.Reader, path string) (int64, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("error creating output file: %w", err)
	}
	buffer := make([]byte, utils.DefaultBufferSize)
	written, copyErr := io.CopyBuffer(f, body, buffer)
	if err := f.Close(); err != nil && copyErr == nil {
		copyErr = fmt.Errorf("error closing output file: %w", err)
	}
	return written, copyErr
}

func classifyStatus(url string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxDiagnosticBytes))
	fe := &utils.FetchError{URL: url, Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		fe.Kind = utils.KindUnauthorized
	case http.StatusNotFound:
		fe.Kind = utils.KindNotFound
	case http.StatusNotAcceptable:
		fe.Kind = utils.KindProtocolMismatch
	default:
		fe.Kind = utils.KindTransport
	}
	return fe
}
