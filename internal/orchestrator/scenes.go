package orchestrator

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tanq16/scenefetch/internal/utils"
)

// splitIndex maps split names to their scene membership.
type splitIndex struct {
	order   []string
	members map[string]map[string]bool
	lists   map[string][]string
}

func readSceneList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var scenes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			scenes = append(scenes, line)
		}
	}
	return scenes, scanner.Err()
}

func splitPath(dataRoot, split string) string {
	return filepath.Join(dataRoot, "splits", split+".txt")
}

func loadSplits(dataRoot string, splits []string) (*splitIndex, error) {
	idx := &splitIndex{
		members: make(map[string]map[string]bool, len(splits)),
		lists:   make(map[string][]string, len(splits)),
	}
	for _, split := range splits {
		if err := idx.add(dataRoot, split); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (s *splitIndex) add(dataRoot, split string) error {
	if _, ok := s.lists[split]; ok {
		return nil
	}
	scenes, err := readSceneList(splitPath(dataRoot, split))
	if err != nil {
		return &utils.FetchError{Kind: utils.KindConfig, URL: splitPath(dataRoot, split), Message: fmt.Sprintf("cannot read split %s", split), Err: err}
	}
	set := make(map[string]bool, len(scenes))
	for _, id := range scenes {
		set[id] = true
	}
	s.order = append(s.order, split)
	s.members[split] = set
	s.lists[split] = scenes
	return nil
}

// splitOf returns the first configured split containing sceneID.
func (s *splitIndex) splitOf(sceneID string, configured []string) (string, error) {
	for _, split := range configured {
		if s.members[split][sceneID] {
			return split, nil
		}
	}
	return "", utils.ConfigError("scene %s is not in any split", sceneID)
}

// selectScenes returns the explicit scene list, else the concatenation of the
// requested splits, truncated to limit when limit > 0.
func selectScenes(dataRoot string, explicit, requestedSplits []string, limit int, idx *splitIndex) ([]string, error) {
	var scenes []string
	if len(explicit) > 0 {
		scenes = append(scenes, explicit...)
	} else {
		for _, split := range requestedSplits {
			if err := idx.add(dataRoot, split); err != nil {
				return nil, err
			}
			scenes = append(scenes, idx.lists[split]...)
		}
	}
	if limit > 0 && len(scenes) > limit {
		scenes = scenes[:limit]
	}
	return scenes, nil
}
