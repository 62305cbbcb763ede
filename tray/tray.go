// Package tray keeps a tray indicator in sync with the battery level.
package tray

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/esimov/batticon"
	"github.com/esimov/batticon/battery"
	"github.com/rs/zerolog"
)

// Indicator is the host tray icon.
type Indicator interface {
	// SetIcon shows a regular, untinted icon.
	SetIcon(icon []byte)
	// SetTemplateIcon shows an icon the host may re-tint. Hosts without
	// template support display the regular bytes instead.
	SetTemplateIcon(template, regular []byte)
	SetTooltip(tooltip string)
}

// IconRenderer produces encoded icons for a percentage.
type IconRenderer interface {
	Render(percentage uint8) ([]byte, error)
}

// Driver polls the battery and updates the indicator when the level changes.
type Driver struct {
	renderer  IconRenderer
	battery   battery.Reader
	indicator Indicator
	interval  time.Duration
	log       zerolog.Logger

	mu   sync.Mutex
	last int
}

// NewDriver creates a Driver. A non-positive interval selects batticon.DefaultInterval.
func NewDriver(r IconRenderer, b battery.Reader, ind Indicator, interval time.Duration, log zerolog.Logger) *Driver {
	if interval <= 0 {
		interval = batticon.DefaultInterval
	}
	return &Driver{
		renderer:  r,
		battery:   b,
		indicator: ind,
		interval:  interval,
		log:       log,
		last:      -1,
	}
}

// Update renders the icon for the percentage and hands it to the indicator,
// marking it as a template image when the percentage selects template mode.
// An unchanged percentage is a no-op. On failure the previous icon stays in place.
func (d *Driver) Update(ctx context.Context, percentage uint8) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := batticon.Clamp(percentage)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.last == int(p) {
		return nil
	}

	start := time.Now()
	icon, err := d.renderer.Render(p)
	if err != nil {
		d.log.Error().Err(err).Uint8("percentage", p).Msg("icon render failed, keeping previous icon")
		return err
	}

	mode := batticon.ModeFor(p)
	if mode == batticon.ModeTemplate {
		d.indicator.SetTemplateIcon(icon, icon)
	} else {
		d.indicator.SetIcon(icon)
	}
	d.indicator.SetTooltip(fmt.Sprintf("Battery: %d%%", p))
	d.last = int(p)

	d.log.Info().
		Uint8("percentage", p).
		Str("mode", mode.String()).
		Int("bytes", len(icon)).
		Dur("render", time.Since(start)).
		Msg("tray icon updated")

	return nil
}

// Poll reads the battery once and updates the indicator.
func (d *Driver) Poll(ctx context.Context) error {
	p, err := d.battery.Percentage(ctx)
	if err != nil {
		d.log.Warn().Err(err).Msg("battery read failed")
		return err
	}
	return d.Update(ctx, p)
}

// Run polls the battery on every interval until the context is cancelled.
// Failed polls are logged and retried on the next tick.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.log.Info().Dur("interval", d.interval).Msg("tray driver started")
	_ = d.Poll(ctx)

	for {
		select {
		case <-ctx.Done():
			d.log.Info().Msg("tray driver stopped")
			return ctx.Err()
		case <-ticker.C:
			_ = d.Poll(ctx)
		}
	}
}
