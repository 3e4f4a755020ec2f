// Package quality picks render settings for constrained and desktop devices.
package quality

import "math"

// NarrowWidth is the logical window width below which a touch device is
// treated as constrained.
const NarrowWidth = 768

type Profile struct {
	Constrained    bool
	ShadowMapSize  int
	MaxDeviceScale float64
}

var (
	Desktop = Profile{ShadowMapSize: 2048, MaxDeviceScale: 1.15}
	Mobile  = Profile{Constrained: true, ShadowMapSize: 1024, MaxDeviceScale: 1}
)

// Hints describe the environment. Only declared intent is used; there is no
// platform sniffing.
type Hints struct {
	Touch  bool
	Width  int
	Forced bool
}

func Detect(h Hints) Profile {
	if h.Forced || (h.Touch && h.Width > 0 && h.Width < NarrowWidth) {
		return Mobile
	}
	return Desktop
}

// DeviceScale caps the monitor scale factor.
func (p Profile) DeviceScale(monitor float64) float64 {
	if monitor <= 0 {
		return 1
	}
	return math.Min(monitor, p.MaxDeviceScale)
}

// ShadowSoftness is the blur radius in pixels used for the icon drop shadows,
// derived from the shadow map resolution.
func (p Profile) ShadowSoftness() float32 {
	if p.ShadowMapSize <= 0 {
		return 0
	}
	return float32(p.ShadowMapSize) / 512
}

func (p Profile) String() string {
	if p.Constrained {
		return "mobile"
	}
	return "desktop"
}
