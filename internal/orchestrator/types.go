package orchestrator

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Outcome is the result of one checkAndFetch call.
type Outcome int

const (
	// OutcomeAlreadyPresent means the local file exists, or in dry-run the
	// remote one does.
	OutcomeAlreadyPresent Outcome = iota
	OutcomeFetched
	OutcomeMissingRemote
	OutcomeFatalError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAlreadyPresent:
		return "already-present"
	case OutcomeFetched:
		return "fetched"
	case OutcomeMissingRemote:
		return "missing-remote"
	default:
		return "fatal-error"
	}
}

// Ok is true for outcomes that leave the path usable.
func (o Outcome) Ok() bool {
	return o == OutcomeAlreadyPresent || o == OutcomeFetched
}

type Fetcher interface {
	Fetch(ctx context.Context, url, outputPath string) error
}

type Installer interface {
	Install(archivePath string) error
}

// SceneError is returned by Run when an asset of a scene could not be
// obtained; the run stops at that scene.
type SceneError struct {
	SceneID string
	Asset   string
	Err     error
}

func (e *SceneError) Error() string {
	return fmt.Sprintf("error downloading scene %s (asset %s): %v", e.SceneID, e.Asset, e.Err)
}

func (e *SceneError) Unwrap() error {
	return e.Err
}

// Report is the state accumulated over one invocation.
type Report struct {
	// Missing lists local paths that did not end up present, in the order they failed.
	Missing []string
	// SoftErrors collects meta-file failures; they do not stop the run.
	SoftErrors *multierror.Error

	Fetched   int
	Skipped   int
	Extracted int
	// Probed counts remote files confirmed by a dry-run check.
	Probed    int

	ScenesCompleted []string
	Assets          []string
	SceneCount      int
}

func (r *Report) addMissing(path string) {
	r.Missing = append(r.Missing, path)
}

func (r *Report) count(o Outcome) {
	switch o {
	case OutcomeFetched:
		r.Fetched++
	case OutcomeAlreadyPresent:
		r.Skipped++
	}
}

// Successful is true when nothing is missing.
func (r *Report) Successful() bool {
	return len(r.Missing) == 0
}
