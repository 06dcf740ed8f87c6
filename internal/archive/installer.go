// Package archive expands downloaded asset bundles in place.
package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/scenefetch/internal/utils"
)

// Installer extracts an archive into its parent directory and removes it.
// A failed extraction leaves whatever was already written in place.
type Installer struct {
	verbose bool
}

func NewInstaller(verbose bool) *Installer {
	return &Installer{verbose: verbose}
}

func (i *Installer) Install(archivePath string) error {
	extractor, err := NewExtractor(archivePath)
	if err != nil {
		return &utils.FetchError{Kind: utils.KindExtraction, URL: archivePath, Err: err}
	}
	targetDir := filepath.Dir(archivePath)
	i.logf("unzipping %s", archivePath)
	if err := extractor.Extract(archivePath, targetDir); err != nil {
		return &utils.FetchError{Kind: utils.KindExtraction, URL: archivePath, Err: fmt.Errorf("error extracting into %s: %w", targetDir, err)}
	}
	i.logf("deleting archive %s", archivePath)
	if err := os.Remove(archivePath); err != nil {
		return &utils.FetchError{Kind: utils.KindExtraction, URL: archivePath, Err: fmt.Errorf("error removing archive: %w", err)}
	}
	return nil
}

func (i *Installer) logf(format string, args ...any) {
	if i.verbose {
		log.Info().Str("op", "archive/installer").Msgf(format, args...)
		return
	}
	log.Debug().Str("op", "archive/installer").Msgf(format, args...)
}
