package component

// ViewMode is the top-level navigation state.
type ViewMode int

const (
	ModeHome ViewMode = iota
	ModeGrid
	ModePanel
)

func (m ViewMode) String() string {
	switch m {
	case ModeHome:
		return "home"
	case ModeGrid:
		return "grid"
	case ModePanel:
		return "panel"
	default:
		return "unknown"
	}
}

// PanelKind selects how an open panel is presented.
type PanelKind string

const (
	PanelText    PanelKind = "text"
	PanelStacked PanelKind = "stacked"
	PanelContact PanelKind = "contact"
)

// View is the navigation singleton.
type View struct {
	Mode  ViewMode
	Label string
	Kind  PanelKind

	// GridScale animates the icon grid in when it is shown.
	GridScale    float64
	GridScaleVel float64
}

var ViewComponent = NewComponent[View]()

type ScopeKind int

const (
	ScopeAlways ScopeKind = iota
	ScopeHome
	ScopeGrid
	// ScopePanel matches an open panel with the same label.
	ScopePanel
	// ScopeAnyPanel matches any open panel.
	ScopeAnyPanel
	// ScopeStacked matches any open stacked panel.
	ScopeStacked
)

// Scope ties an entity to the views it appears in. Shown is maintained by
// the navigation system.
type Scope struct {
	Kind  ScopeKind
	Label string
	Shown bool
}

// Matches reports whether the scope is visible under v.
func (s Scope) Matches(v View) bool {
	switch s.Kind {
	case ScopeAlways:
		return true
	case ScopeHome:
		return v.Mode == ModeHome
	case ScopeGrid:
		return v.Mode == ModeGrid
	case ScopePanel:
		return v.Mode == ModePanel && v.Label == s.Label
	case ScopeAnyPanel:
		return v.Mode == ModePanel
	case ScopeStacked:
		return v.Mode == ModePanel && v.Kind == PanelStacked
	default:
		return false
	}
}

var ScopeComponent = NewComponent[Scope]()
