package projects

// Phase is where the gallery is in a sort transition.
type Phase int

const (
	Visible Phase = iota
	FadingOut
	FadingIn
)

// View sequences a sort change as fade-out, re-render, fade-in. The rendered
// order only changes in FadeOutDone, so cards are never swapped while still
// fading out. Each request bumps a generation and stale completions are
// dropped; the latest requested mode wins.
type View struct {
	catalog *Catalog
	shown   []Project
	phase   Phase
	pending SortMode
	gen     int
}

func NewView(catalog *Catalog) *View {
	return &View{catalog: catalog, shown: catalog.ViewOrder()}
}

// RequestSort starts the fade-out and returns the generation the caller
// passes back once the fade-out duration has elapsed.
func (v *View) RequestSort(mode SortMode) int {
	v.gen++
	v.pending = mode
	v.phase = FadingOut
	return v.gen
}

// FadeOutDone applies the pending mode and starts the fade-in.
func (v *View) FadeOutDone(gen int) bool {
	if gen != v.gen || v.phase != FadingOut {
		return false
	}
	v.catalog.SetSortMode(v.pending)
	v.shown = v.catalog.ViewOrder()
	v.phase = FadingIn
	return true
}

func (v *View) FadeInDone(gen int) bool {
	if gen != v.gen || v.phase != FadingIn {
		return false
	}
	v.phase = Visible
	return true
}

func (v *View) Phase() Phase {
	return v.phase
}

// Mode is the mode in effect, or the pending one during a fade-out.
func (v *View) Mode() SortMode {
	if v.phase == FadingOut {
		return v.pending
	}
	return v.catalog.Mode()
}

// Shown is the order currently on screen.
func (v *View) Shown() []Project {
	out := make([]Project, len(v.shown))
	copy(out, v.shown)
	return out
}
