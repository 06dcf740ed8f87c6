// Package layout maps (scene, asset) pairs to remote and local paths.
package layout

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tanq16/scenefetch/internal/utils"
)

// Naming resolves an asset name to a scene-relative path using forward slashes.
// It is the scene-layout collaborator; Table is the default implementation.
type Naming interface {
	ResolvePath(sceneID, asset string) (string, error)
}

// Table is an asset-name keyed table of scene-relative path templates.
// "{scene}" in a template is replaced with the scene id.
type Table map[string]string

func (t Table) ResolvePath(sceneID, asset string) (string, error) {
	tmpl, ok := t[asset]
	if !ok {
		return "", utils.ConfigError("unknown asset %q", asset)
	}
	return strings.ReplaceAll(utils.NormalizeRemotePath(tmpl), "{scene}", sceneID), nil
}

// Names returns the known asset names, sorted.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge returns a copy of t with overrides applied on top.
func (t Table) Merge(overrides map[string]string) Table {
	out := make(Table, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Locator resolves where an asset lives remotely and where it goes locally.
// Remote paths are rooted at RemoteRoot, local paths at LocalRoot, both
// followed by the scene id and the asset's scene-relative path.
type Locator struct {
	naming        Naming
	remoteRoot    string
	localRoot     string
	archived      map[string]bool
	archiveSuffix string
}

func NewLocator(naming Naming, remoteRoot, localRoot string, archived []string, archiveSuffix string) *Locator {
	set := make(map[string]bool, len(archived))
	for _, a := range archived {
		set[a] = true
	}
	if archiveSuffix == "" {
		archiveSuffix = ".zip"
	}
	return &Locator{
		naming:        naming,
		remoteRoot:    utils.NormalizeRemotePath(remoteRoot),
		localRoot:     localRoot,
		archived:      set,
		archiveSuffix: archiveSuffix,
	}
}

// Resolve returns the remote relative path (always forward slashes) and the
// absolute local path for asset in scene.
func (l *Locator) Resolve(sceneID, asset string) (string, string, error) {
	rel, err := l.naming.ResolvePath(sceneID, asset)
	if err != nil {
		return "", "", err
	}
	if rel == "" {
		return "", "", utils.ConfigError("asset %q resolves to an empty path", asset)
	}
	remote := path.Join(l.remoteRoot, sceneID, rel)
	local := filepath.Join(l.localRoot, sceneID, filepath.FromSlash(rel))
	if abs, err := filepath.Abs(local); err == nil {
		local = abs
	}
	return remote, local, nil
}

// ResolveArchive returns the paths of the bundle that expands into asset.
func (l *Locator) ResolveArchive(sceneID, asset string) (string, string, error) {
	remote, local, err := l.Resolve(sceneID, asset)
	if err != nil {
		return "", "", fmt.Errorf("resolving archive for %s: %w", asset, err)
	}
	return utils.WithSuffix(remote, l.archiveSuffix), utils.WithSuffix(local, l.archiveSuffix), nil
}

func (l *Locator) IsArchived(asset string) bool {
	return l.archived[asset]
}
