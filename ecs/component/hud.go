package component

import (
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/quality"
)

type Quality struct {
	Profile quality.Profile
}

var QualityComponent = NewComponent[Quality]()

// Toast is a transient status message shown by the HUD.
type Toast struct {
	Text   string
	Error  bool
	Expire common.Deadline
}

var ToastComponent = NewComponent[Toast]()
