package render

// HitKind says what a screen cell maps to.
type HitKind int

const (
	HitNone HitKind = iota
	HitTab
	HitCrumb
	HitRow
)

// Hit is the target of a mouse click. Index is the breadcrumb index for
// HitCrumb and the list index for HitRow.
type Hit struct {
	Kind   HitKind
	PaneID string
	TabID  string
	Index  int
}

type hitZone struct {
	x0, x1 int // half-open column range
	y      int
	hit    Hit
}

func (r *Renderer) addZone(x0, x1, y int, h Hit) {
	if x1 > x0 {
		r.zones = append(r.zones, hitZone{x0: x0, x1: x1, y: y, hit: h})
	}
}

// HitTest reports what was drawn at x, y in the last frame.
func (r *Renderer) HitTest(x, y int) (Hit, bool) {
	for _, z := range r.zones {
		if y == z.y && x >= z.x0 && x < z.x1 {
			return z.hit, true
		}
	}
	return Hit{}, false
}
