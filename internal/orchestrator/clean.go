package orchestrator

import (
	"github.com/rs/zerolog/log"
	"github.com/tanq16/scenefetch/internal/utils"
)

// Leftovers lists archive intermediates and .part files of the selected
// scenes that an interrupted run left behind.
func (o *Orchestrator) Leftovers() ([]string, error) {
	dataRoot := o.cfg.DataRoot
	splits, err := loadSplits(dataRoot, o.cfg.Splits)
	if err != nil {
		return nil, err
	}
	scenes, err := selectScenes(dataRoot, o.cfg.DownloadScenes, o.cfg.DownloadSplits, o.cfg.SceneLimit, splits)
	if err != nil {
		return nil, err
	}
	assets, err := o.cfg.AssetsToDownload()
	if err != nil {
		return nil, err
	}
	var found []string
	for _, sceneID := range scenes {
		for _, asset := range assets {
			_, local, err := o.locator.Resolve(sceneID, asset)
			if err != nil {
				return nil, err
			}
			candidates := []string{local + utils.PartSuffix}
			if o.locator.IsArchived(asset) {
				_, archive, err := o.locator.ResolveArchive(sceneID, asset)
				if err != nil {
					return nil, err
				}
				candidates = append(candidates, archive, archive+utils.PartSuffix)
			}
			for _, c := range candidates {
				if utils.IsFile(c) {
					found = append(found, c)
				}
			}
		}
	}
	return found, nil
}

// Clean removes every path Leftovers reports, unless the run is a dry run.
func (o *Orchestrator) Clean() ([]string, error) {
	leftovers, err := o.Leftovers()
	if err != nil {
		return nil, err
	}
	if o.cfg.DryRun {
		return leftovers, nil
	}
	for _, p := range leftovers {
		if err := utils.RemoveIfExists(p); err != nil {
			return nil, err
		}
		log.Info().Str("op", "orchestrator/clean").Msgf("removed %s", p)
	}
	return leftovers, nil
}
