package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/fileutil"

	"github.com/krau/download-manager/common/console"
	"github.com/krau/download-manager/common/i18n"
	"github.com/krau/download-manager/common/i18n/i18nk"
	"github.com/krau/download-manager/config"
	"github.com/krau/download-manager/pkg/indexer"
)

var (
	ErrNoSaveDir = errors.New("no save directory given")
	ErrNotADir   = errors.New("save path exists and is not a directory")
)

// Workspace is where downloads and the index file go. Index is nil when the index file
// could not be created.
type Workspace struct {
	SaveDir string
	Index   *indexer.Indexer
}

// Setup asks for the save directory, creating it when missing, and prepares the index file
// inside it. Failing to create the directory is fatal, failing to create the index file only
// disables indexing.
func Setup(ctx context.Context, c *console.Console, s *config.Settings) (*Workspace, error) {
	logger := log.FromContext(ctx)
	dir, err := askSaveDir(ctx, c, s.DefaultSaveDir)
	if err != nil {
		return nil, err
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	switch {
	case !fileutil.IsExist(dir):
		c.Info(i18n.T(i18nk.SetupCreatingDir))
		if err := fileutil.CreateDir(dir); err != nil {
			c.Error(i18n.T(i18nk.SetupDirCreateFailed, map[string]any{"Error": err}))
			return nil, fmt.Errorf("create save directory %s: %w", dir, err)
		}
		c.Success(i18n.T(i18nk.SetupDirCreated))
	case !fileutil.IsDir(dir):
		c.Error(i18n.T(i18nk.SetupDirCreateFailed, map[string]any{"Error": ErrNotADir}))
		return nil, fmt.Errorf("%s: %w", dir, ErrNotADir)
	default:
		c.Info(i18n.T(i18nk.SetupDirExists))
	}
	c.Blank()

	ws := &Workspace{SaveDir: dir}
	path := filepath.Join(dir, s.IndexFileName)
	opts := []indexer.Option{indexer.WithLogger(logger)}
	if s.IndexDate != "" {
		opts = append(opts, indexer.WithDate(s.IndexDate))
	}
	idx := indexer.New(path, s.IndexTemplate, opts...)

	if fileutil.IsExist(path) {
		c.Info(i18n.T(i18nk.SetupIndexExists))
		ws.Index = idx
		return ws, nil
	}
	c.Info(i18n.T(i18nk.SetupCreatingIndex))
	if err := idx.Open(); err != nil {
		logger.Warn("Indexing disabled", "path", path, "error", err)
		c.Error(i18n.T(i18nk.SetupIndexFailed, map[string]any{"Error": err}))
		return ws, nil
	}
	if err := idx.Close(); err != nil {
		logger.Warn("Indexing disabled", "path", path, "error", err)
		c.Error(i18n.T(i18nk.SetupIndexFailed, map[string]any{"Error": err}))
		return ws, nil
	}
	c.Success(i18n.T(i18nk.SetupIndexCreated))
	ws.Index = idx
	return ws, nil
}

func askSaveDir(ctx context.Context, c *console.Console, def string) (string, error) {
	if def != "" {
		c.Info(i18n.T(i18nk.SetupDefaultDir, map[string]any{"Path": def}))
	}
	answer, err := c.PromptContext(ctx, i18n.T(i18nk.SetupPromptDir))
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if answer != "" {
		return answer, nil
	}
	if def == "" {
		c.Error(i18n.T(i18nk.SetupNoDir))
		return "", ErrNoSaveDir
	}
	c.Info(i18n.T(i18nk.SetupUseDefaultDir))
	return def, nil
}
