// Package cli runs the interactive part of a session on the terminal.
package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/krau/download-manager/common/console"
	"github.com/krau/download-manager/common/i18n"
	"github.com/krau/download-manager/common/i18n/i18nk"
	"github.com/krau/download-manager/core"
	"github.com/krau/download-manager/pkg/platform"
)

var ErrNoURLs = errors.New("no urls collected")

const cancelWord = "cancel"

// Collector reads URLs from the console until an empty line and queues the valid ones.
type Collector struct {
	console  *console.Console
	registry *platform.Registry
}

func NewCollector(c *console.Console, registry *platform.Registry) *Collector {
	return &Collector{console: c, registry: registry}
}

// PrintPlatforms lists every registered platform with its sample URLs.
func (c *Collector) PrintPlatforms() {
	c.console.Info(i18n.T(i18nk.CollectPlatformsHeader))
	for _, s := range c.registry.Sanitizers() {
		c.console.Info(i18n.T(i18nk.CollectPlatformSchemes, map[string]any{
			"Platform": s.Platform(),
			"Schemes":  strings.Join(s.SampleURLs(), "; "),
		}))
	}
	c.console.Info(i18n.T(i18nk.CollectPlatformsTotal, map[string]any{
		"Count": c.registry.Len(),
	}))
	c.console.Blank()
}

// Collect returns the queued URLs. ErrNoURLs is returned when the user finished without
// queuing anything.
func (c *Collector) Collect(ctx context.Context) (*core.Batch, error) {
	logger := log.FromContext(ctx)
	batch := core.NewBatch()
	c.console.Info(i18n.T(i18nk.CollectEnterUrls))
	for {
		raw, err := c.console.PromptContext(ctx, i18n.T(i18nk.CollectPromptUrl))
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if raw == "" {
			break
		}

		id, su, err := c.registry.Classify(raw)
		if err != nil {
			logger.Debug("Rejected url", "url", raw, "error", err)
			c.reject(id, err)
			continue
		}
		batch.Add(id, su)
		logger.Debug("Queued url", "platform", id, "url", su.CanonicalURL, "playlist", su.IsPlaylist)

		data := map[string]any{"Platform": id, "ID": su.DisplayID, "Count": batch.Len()}
		if !su.IsPlaylist {
			c.console.Success(i18n.T(i18nk.CollectVideoAdded, data))
			continue
		}
		c.console.Success(i18n.T(i18nk.CollectPlaylistAdded, data))
		c.console.Info(i18n.T(i18nk.CollectPlaylistNotice))
		answer, err := c.console.PromptContext(ctx, i18n.T(i18nk.CollectPlaylistConfirm))
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if strings.EqualFold(answer, cancelWord) {
			batch.RemoveLast()
			c.console.Info(i18n.T(i18nk.CollectPlaylistRemoved))
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}

	if batch.Len() == 0 {
		c.console.Error(i18n.T(i18nk.CollectNoUrls))
		return nil, ErrNoURLs
	}
	c.console.Success(i18n.T(i18nk.CollectDone, map[string]any{"Count": batch.Len()}))
	c.console.Blank()
	return batch, nil
}

func (c *Collector) reject(id platform.ID, err error) {
	switch {
	case errors.Is(err, platform.ErrNotRegistered):
		c.console.Error(i18n.T(i18nk.CollectNotRegistered, map[string]any{"Platform": id}))
	case errors.Is(err, platform.ErrMalformed):
		c.console.Error(i18n.T(i18nk.CollectMalformed, map[string]any{"Platform": id}))
	default:
		c.console.Error(i18n.T(i18nk.CollectNoMatch))
	}
}
