package component

import (
	"image/color"

	"github.com/milk9111/folio/common"
)

// Icon is a grid entry whose click runs Script. Rest is the icon's position
// at full grid scale.
type Icon struct {
	Label  string
	Kind   string
	Script string
	Rest   common.Vec3
	// Accent colors the glyph; Disc icons sit on a white disc.
	Accent color.NRGBA
	Disc   bool
}

var IconComponent = NewComponent[Icon]()

// SocialLink is a home card button that opens URL in the browser.
type SocialLink struct {
	Label string
	URL   string
}

var SocialLinkComponent = NewComponent[SocialLink]()
