// Package device classifies the host from its user-agent string and captures
// the session-start device snapshot attached to every flushed record.
package device

import (
	"strings"

	"proctorai.net/vigil/record"
	"proctorai.net/vigil/vigil/source"
)

var mobileTokens = []string{"mobi", "android", "iphone", "ipod", "opera mini", "iemobile", "windows phone"}

var tabletTokens = []string{"ipad", "tablet", "kindle", "silk", "playbook"}

// Classify matches user-agent substrings against mobile and tablet tokens.
// A tablet token wins over a mobile token; no match means desktop.
func Classify(userAgent string) record.DeviceType {
	ua := strings.ToLower(userAgent)
	for _, token := range tabletTokens {
		if strings.Contains(ua, token) {
			return record.DeviceTablet
		}
	}
	for _, token := range mobileTokens {
		if strings.Contains(ua, token) {
			return record.DeviceMobile
		}
	}
	return record.DeviceDesktop
}

// Snapshot freezes the host metrics into the immutable per-session DeviceInfo.
func Snapshot(m source.Metrics) record.DeviceInfo {
	return record.DeviceInfo{
		ScreenWidth:  m.ScreenWidth,
		ScreenHeight: m.ScreenHeight,
		WindowWidth:  m.WindowWidth,
		WindowHeight: m.WindowHeight,
		DeviceType:   Classify(m.UserAgent),
	}
}
