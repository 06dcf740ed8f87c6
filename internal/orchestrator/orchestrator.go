// Package orchestrator drives one fetch run: meta files, scene selection,
// then every requested asset of every selected scene, stopping at the first
// scene that cannot be completed.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tanq16/scenefetch/internal/config"
	"github.com/tanq16/scenefetch/internal/layout"
	"github.com/tanq16/scenefetch/internal/utils"
)

const (
	gsRemoteRoot = "scannetpp_gs"
	gsCheckpoint = "point_cloud_30000.ply"
)

type Deps struct {
	Fetcher   Fetcher
	Prober    utils.Prober
	Installer Installer
	Naming    layout.Naming
}

type Orchestrator struct {
	cfg       *config.Config
	locator   *layout.Locator
	fetcher   Fetcher
	prober    utils.Prober
	installer Installer
}

func New(cfg *config.Config, deps Deps) *Orchestrator {
	naming := deps.Naming
	if naming == nil {
		naming = layout.ReleaseTable.Merge(cfg.AssetPaths)
	}
	return &Orchestrator{
		cfg:       cfg,
		locator:   layout.NewLocator(naming, cfg.RemoteData, filepath.Join(cfg.DataRoot, "data"), cfg.ZippedAssets, cfg.ArchiveSuffix),
		fetcher:   deps.Fetcher,
		prober:    deps.Prober,
		installer: deps.Installer,
	}
}

// Run returns the report even when it also returns an error, so callers can
// always print what is missing. Meta-file failures end up in
// Report.SoftErrors; a failing scene aborts the run with a *SceneError.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	dataRoot := o.cfg.DataRoot
	if o.cfg.DryRun {
		log.Info().Str("op", "orchestrator/run").Msg("dry run: checking that remote files exist, nothing will be downloaded")
	} else if err := os.MkdirAll(dataRoot, 0755); err != nil {
		return report, fmt.Errorf("error creating data root: %w", err)
	}

	for _, metaPath := range o.cfg.MetaFiles {
		local := filepath.Join(dataRoot, filepath.FromSlash(metaPath))
		outcome, err := o.checkAndFetch(ctx, o.cfg.RootURL, metaPath, local)
		o.record(report, outcome)
		if !outcome.Ok() {
			report.addMissing(local)
			if err == nil {
				err = utils.NewFetchError(utils.KindNotFound, metaPath, nil)
			}
			report.SoftErrors = multierror.Append(report.SoftErrors, err)
		}
	}
	if o.cfg.MetadataOnly {
		log.Info().Str("op", "orchestrator/run").Msg("downloaded metadata, done")
		return report, nil
	}

	splits, err := loadSplits(dataRoot, o.cfg.Splits)
	if err != nil {
		return report, err
	}
	scenes, err := selectScenes(dataRoot, o.cfg.DownloadScenes, o.cfg.DownloadSplits, o.cfg.SceneLimit, splits)
	if err != nil {
		return report, err
	}
	report.SceneCount = len(scenes)

	if o.cfg.GSDir != "" {
		err := o.fetchGaussianSplats(ctx, scenes, report)
		log.Info().Str("op", "orchestrator/run").Msgf("downloaded ScanNet++GS data to %s, done", o.cfg.GSDir)
		return report, err
	}

	assets, err := o.cfg.AssetsToDownload()
	if err != nil {
		return report, err
	}
	report.Assets = assets
	log.Info().Str("op", "orchestrator/run").Strs("assets", assets).Int("scenes", len(scenes)).Msg("starting asset download")

	for i, sceneID := range scenes {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		split, err := splits.splitOf(sceneID, o.cfg.Splits)
		if err != nil {
			return report, err
		}
		log.Debug().Str("op", "orchestrator/run").Str("split", split).Msgf("scene %d/%d: %s", i+1, len(scenes), sceneID)
		if err := o.fetchScene(ctx, sceneID, split, assets, report); err != nil {
			log.Error().Str("op", "orchestrator/run").Err(err).Msgf("error downloading scene %s, aborting", sceneID)
			return report, err
		}
		report.ScenesCompleted = append(report.ScenesCompleted, sceneID)
	}
	return report, nil
}

// fetchScene processes the assets of one scene in order and returns at the
// first asset that fails.
func (o *Orchestrator) fetchScene(ctx context.Context, sceneID, split string, assets []string, report *Report) error {
	for _, asset := range assets {
		if o.cfg.IsExcluded(split, asset) {
			continue
		}
		if o.locator.IsArchived(asset) {
			if err := o.fetchArchived(ctx, sceneID, asset, report); err != nil {
				return &SceneError{SceneID: sceneID, Asset: asset, Err: err}
			}
			continue
		}
		remote, local, err := o.locator.Resolve(sceneID, asset)
		if err != nil {
			return &SceneError{SceneID: sceneID, Asset: asset, Err: err}
		}
		outcome, err := o.checkAndFetch(ctx, o.cfg.RootURL, remote, local)
		o.record(report, outcome)
		if !outcome.Ok() {
			report.addMissing(local)
			return &SceneError{SceneID: sceneID, Asset: asset, Err: missingErr(remote, err)}
		}
	}
	return nil
}

// fetchArchived skips when the extracted target exists, otherwise fetches the
// bundle and installs it. The bundle itself is never consulted for the skip.
func (o *Orchestrator) fetchArchived(ctx context.Context, sceneID, asset string, report *Report) error {
	_, target, err := o.locator.Resolve(sceneID, asset)
	if err != nil {
		return err
	}
	if utils.Exists(target) {
		o.skipf("file exists, skipping download: %s", target)
		report.Skipped++
		return nil
	}
	remoteArchive, localArchive, err := o.locator.ResolveArchive(sceneID, asset)
	if err != nil {
		return err
	}
	outcome, err := o.checkAndFetch(ctx, o.cfg.RootURL, remoteArchive, localArchive)
	o.record(report, outcome)
	if !outcome.Ok() {
		report.addMissing(localArchive)
		return missingErr(remoteArchive, err)
	}
	if o.cfg.DryRun {
		return nil
	}
	if err := o.installer.Install(localArchive); err != nil {
		report.addMissing(target)
		return err
	}
	report.Extracted++
	return nil
}

func (o *Orchestrator) fetchGaussianSplats(ctx context.Context, scenes []string, report *Report) error {
	log.Info().Str("op", "orchestrator/gs").Msg("downloading ScanNet++GS data")
	for _, sceneID := range scenes {
		remote := path.Join(gsRemoteRoot, sceneID, "ckpts", gsCheckpoint)
		local := filepath.Join(o.cfg.GSDir, sceneID, gsCheckpoint)
		outcome, err := o.checkAndFetch(ctx, o.cfg.GSURL, remote, local)
		o.record(report, outcome)
		if !outcome.Ok() {
			report.addMissing(local)
			return &SceneError{SceneID: sceneID, Asset: gsCheckpoint, Err: missingErr(remote, err)}
		}
		report.ScenesCompleted = append(report.ScenesCompleted, sceneID)
	}
	return nil
}

// checkAndFetch builds the concrete URL and either probes it (dry-run),
// skips an existing local file, or fetches it.
func (o *Orchestrator) checkAndFetch(ctx context.Context, template, remotePath, localPath string) (Outcome, error) {
	url := utils.BuildURL(template, o.cfg.Token, remotePath)
	if o.cfg.DryRun {
		if o.prober.Exists(ctx, url) {
			log.Info().Str("op", "orchestrator/check").Msgf("remote file exists: %s", url)
			return OutcomeAlreadyPresent, nil
		}
		log.Warn().Str("op", "orchestrator/check").Msgf("remote file missing: %s", url)
		return OutcomeMissingRemote, nil
	}
	if utils.IsFile(localPath) {
		o.skipf("file exists, skipping download: %s", localPath)
		return OutcomeAlreadyPresent, nil
	}
	o.event().Msgf("%s ==> %s", url, localPath)
	if err := o.fetcher.Fetch(ctx, url, localPath); err != nil {
		return OutcomeFatalError, err
	}
	return OutcomeFetched, nil
}

// record counts an outcome; in dry-run a present outcome only means the probe succeeded.
func (o *Orchestrator) record(report *Report, outcome Outcome) {
	if o.cfg.DryRun && outcome == OutcomeAlreadyPresent {
		report.Probed++
		return
	}
	report.count(outcome)
}

func (o *Orchestrator) event() *zerolog.Event {
	if o.cfg.Verbose {
		return log.Info().Str("op", "orchestrator/check")
	}
	return log.Debug().Str("op", "orchestrator/check")
}

func (o *Orchestrator) skipf(format string, args ...any) {
	o.event().Msgf(format, args...)
}

func missingErr(remote string, err error) error {
	if err != nil {
		return err
	}
	return utils.NewFetchError(utils.KindNotFound, remote, errors.New("remote file missing"))
}
