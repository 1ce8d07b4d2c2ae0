package domain

import "time"

// Window is a lookback window label used by market and holder analytics.
type Window string

const (
	Window5m  Window = "5m"
	Window1h  Window = "1h"
	Window6h  Window = "6h"
	Window24h Window = "24h"
	Window3d  Window = "3d"
	Window7d  Window = "7d"
	Window30d Window = "30d"
)

var windowDurations = map[Window]time.Duration{
	Window5m:  5 * time.Minute,
	Window1h:  time.Hour,
	Window6h:  6 * time.Hour,
	Window24h: 24 * time.Hour,
	Window3d:  72 * time.Hour,
	Window7d:  7 * 24 * time.Hour,
	Window30d: 30 * 24 * time.Hour,
}

// Duration returns the window length, or 0 for an unrecognized label.
func (w Window) Duration() time.Duration {
	return windowDurations[w]
}

// IsValid checks if the window is a recognized label.
func (w Window) IsValid() bool {
	_, ok := windowDurations[w]
	return ok
}

// MarketWindows are the windows the market-data service reports.
var MarketWindows = []Window{Window5m, Window1h, Window6h, Window24h}
