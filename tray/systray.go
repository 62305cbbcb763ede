package tray

import (
	"context"

	"github.com/getlantern/systray"
)

// SystrayIndicator is the Indicator backed by the platform tray.
type SystrayIndicator struct{}

// SetIcon implements Indicator.
func (SystrayIndicator) SetIcon(icon []byte) {
	systray.SetIcon(icon)
}

// SetTemplateIcon implements Indicator.
func (SystrayIndicator) SetTemplateIcon(template, regular []byte) {
	systray.SetTemplateIcon(template, regular)
}

// SetTooltip implements Indicator.
func (SystrayIndicator) SetTooltip(tooltip string) {
	systray.SetTooltip(tooltip)
}

// Run starts the platform tray event loop with the driver attached and
// blocks until the user quits or the context is cancelled. It must be
// called from the main goroutine.
func Run(ctx context.Context, d *Driver) {
	ctx, cancel := context.WithCancel(ctx)

	onReady := func() {
		systray.SetTitle("")
		systray.SetTooltip("Battery")

		mRefresh := systray.AddMenuItem("Refresh", "Read the battery level now")
		systray.AddSeparator()
		mQuit := systray.AddMenuItem("Quit", "Quit batticon")

		go d.Run(ctx)

		go func() {
			for {
				select {
				case <-mRefresh.ClickedCh:
					_ = d.Poll(ctx)
				case <-mQuit.ClickedCh:
					systray.Quit()
					return
				case <-ctx.Done():
					systray.Quit()
					return
				}
			}
		}()
	}

	systray.Run(onReady, cancel)
}
