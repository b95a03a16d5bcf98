package state

// Pane holds ordered tabs; ActiveTabID always names one of them while the
// pane is non-empty.
type Pane struct {
	ID          string
	Tabs        []Tab
	ActiveTabID string
}

// NewPane creates a pane holding first as its active tab.
func NewPane(id string, first Tab) Pane {
	return Pane{ID: id, Tabs: []Tab{first}, ActiveTabID: first.ID}
}

func (p Pane) tabIndex(id string) int {
	for i, t := range p.Tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Tab looks up a tab by id.
func (p Pane) Tab(id string) (Tab, error) {
	idx := p.tabIndex(id)
	if idx < 0 {
		return Tab{}, notFound("tab", id)
	}
	return p.Tabs[idx], nil
}

// ActiveTab resolves ActiveTabID.
func (p Pane) ActiveTab() (Tab, error) {
	idx := p.tabIndex(p.ActiveTabID)
	if idx < 0 {
		return Tab{}, ErrNoActiveTab
	}
	return p.Tabs[idx], nil
}

// ReplaceTab swaps in t for the tab with the same id.
func (p Pane) ReplaceTab(t Tab) (Pane, error) {
	idx := p.tabIndex(t.ID)
	if idx < 0 {
		return p, notFound("tab", t.ID)
	}
	tabs := make([]Tab, len(p.Tabs))
	copy(tabs, p.Tabs)
	tabs[idx] = t
	p.Tabs = tabs
	return p, nil
}

// AddTab appends t and makes it active.
func (p Pane) AddTab(t Tab) Pane {
	tabs := make([]Tab, len(p.Tabs), len(p.Tabs)+1)
	copy(tabs, p.Tabs)
	p.Tabs = append(tabs, t)
	p.ActiveTabID = t.ID
	return p
}

// CloseTab removes a tab. Closing the active tab activates the first
// remaining tab. Closing the only tab is refused and reports closed=false.
func (p Pane) CloseTab(id string) (Pane, bool, error) {
	idx := p.tabIndex(id)
	if idx < 0 {
		return p, false, notFound("tab", id)
	}
	if len(p.Tabs) == 1 {
		return p, false, nil
	}
	tabs := make([]Tab, 0, len(p.Tabs)-1)
	tabs = append(tabs, p.Tabs[:idx]...)
	tabs = append(tabs, p.Tabs[idx+1:]...)
	p.Tabs = tabs
	if p.ActiveTabID == id {
		p.ActiveTabID = tabs[0].ID
	}
	return p, true, nil
}

// SelectTab makes id the active tab.
func (p Pane) SelectTab(id string) (Pane, error) {
	if p.tabIndex(id) < 0 {
		return p, notFound("tab", id)
	}
	p.ActiveTabID = id
	return p, nil
}

// CycleTab moves the active tab by delta, wrapping around.
func (p Pane) CycleTab(delta int) Pane {
	n := len(p.Tabs)
	if n == 0 {
		return p
	}
	idx := p.tabIndex(p.ActiveTabID)
	if idx < 0 {
		idx = 0
	}
	idx = ((idx+delta)%n + n) % n
	p.ActiveTabID = p.Tabs[idx].ID
	return p
}
