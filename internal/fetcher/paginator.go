package fetcher

// Paginator decides whether the load-more affordance is shown and whether
// it accepts clicks. It is the UI-level guard layered on top of the
// service's single-flight guard: while an append fetch runs, the
// affordance stays visible but disabled.
type Paginator struct {
	hasNext bool
	busy    bool
}

// SetHasNext records next-page availability from the latest fetch and
// clears the busy flag
func (p *Paginator) SetHasNext(hasNext bool) {
	p.hasNext = hasNext
	p.busy = false
}

// Hide removes the affordance entirely (new search, cleared view)
func (p *Paginator) Hide() {
	p.hasNext = false
	p.busy = false
}

// Visible reports whether the affordance is shown at all
func (p *Paginator) Visible() bool {
	return p.hasNext
}

// Busy reports whether an append fetch is running
func (p *Paginator) Busy() bool {
	return p.busy
}

// TryActivate marks the paginator busy for an append fetch. It reports
// false when the affordance is absent or already busy; exactly one
// activation succeeds per completed fetch.
func (p *Paginator) TryActivate() bool {
	if !p.hasNext || p.busy {
		return false
	}
	p.busy = true
	return true
}
