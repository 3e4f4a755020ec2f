package component

import (
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/scroll"
)

// PanelContent is one content card. Fields not used by a card stay empty.
type PanelContent struct {
	Label   string
	Title   string
	Role    string
	Company string
	Date    string
	Body    string
	Image   string
}

var PanelContentComponent = NewComponent[PanelContent]()

// StackItem positions a card inside a stacked panel. Anchor is the card's
// rest position before scroll offsets apply; Visible is false for cards more
// than one step away from the active card.
type StackItem struct {
	Label   string
	Index   int
	Anchor  common.Vec3
	Visible bool
}

var StackItemComponent = NewComponent[StackItem]()

// ScrollView owns the scroller of the open stacked panel. Center, Width and
// Height describe the scroll region in world space.
type ScrollView struct {
	Scroller *scroll.Scroller
	Label    string
	Center   common.Vec3
	Width    float64
	Height   float64
}

var ScrollViewComponent = NewComponent[ScrollView]()

// Indicator mirrors the active card as a row of dots.
type Indicator struct {
	Count  int
	Active int
}

// DotActive maps dots right to left: dot i lights for card Count-1-i.
func (ind Indicator) DotActive(i int) bool {
	return ind.Count > 0 && ind.Count-1-i == ind.Active
}

var IndicatorComponent = NewComponent[Indicator]()
