// Package payment classifies payment outcomes from embedded-browser
// navigation events. There is no push channel from the payment provider,
// so the result page redirect is the only signal the client gets.
package payment

import (
	"net/url"
	"strings"
)

// Signal is the detector's verdict for one navigation event.
type Signal int

const (
	// SignalNone means the event carries no outcome; keep waiting.
	SignalNone Signal = iota
	SignalSucceeded
	SignalFailed
)

func (s Signal) String() string {
	switch s {
	case SignalSucceeded:
		return "succeeded"
	case SignalFailed:
		return "failed"
	default:
		return "none"
	}
}

// resultPathSuffix marks the provider's terminal result page. The earlier
// /payments/callback hop precedes the server-side redirect and carries no
// outcome, so it must not match.
const resultPathSuffix = "/payments/result"

// ResultDetector inspects navigation URLs for the payment result page.
type ResultDetector struct {
	suffix string
}

func NewResultDetector() *ResultDetector {
	return &ResultDetector{suffix: resultPathSuffix}
}

// OnNavigation classifies a single navigation event. Only URLs whose path
// ends exactly with the result suffix produce a signal; on a match, only
// an explicit success=true query flag counts as success — anything else
// (absent, false, malformed) fails closed.
func (d *ResultDetector) OnNavigation(rawURL string) Signal {
	u, err := url.Parse(rawURL)
	if err != nil {
		return SignalNone
	}
	if !strings.HasSuffix(u.Path, d.suffix) {
		return SignalNone
	}
	if u.Query().Get("success") == "true" {
		return SignalSucceeded
	}
	return SignalFailed
}
