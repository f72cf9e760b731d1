package state

// Patch is the enumerated partial-update payload accepted by Scene.Update.
// Nil fields are left untouched. Using explicit pointer fields instead of an
// open map keeps the update contract checkable at compile time.
type Patch struct {
	X           *float64
	Y           *float64
	Width       *float64
	Height      *float64
	Stroke      *string
	StrokeWidth *float64
	Fill        *string
	Rotation    *float64
	Text        *string
	FontSize    *float64
	FontFamily  *string
	Points      []float64
}

// apply merges the patch into o. Width/height changes are re-clamped
// through SetSize so the minimum-size invariant survives edits.
func (p Patch) apply(o *CanvasObject) {
	if p.X != nil {
		o.X = *p.X
	}
	if p.Y != nil {
		o.Y = *p.Y
	}
	if p.Width != nil || p.Height != nil {
		w, h := o.Width, o.Height
		if p.Width != nil {
			w = *p.Width
		}
		if p.Height != nil {
			h = *p.Height
		}
		o.SetSize(w, h)
	}
	if p.Stroke != nil {
		o.Stroke = *p.Stroke
	}
	if p.StrokeWidth != nil {
		o.StrokeWidth = *p.StrokeWidth
	}
	if p.Fill != nil {
		o.Fill = *p.Fill
	}
	if p.Rotation != nil {
		o.Rotation = *p.Rotation
	}
	if p.Text != nil {
		o.Text = *p.Text
	}
	if p.FontSize != nil {
		o.FontSize = *p.FontSize
	}
	if p.FontFamily != nil {
		o.FontFamily = *p.FontFamily
	}
	if p.Points != nil {
		pts := make([]float64, len(p.Points))
		copy(pts, p.Points)
		o.Points = pts
	}
}

// Float returns a *float64 for building patches inline.
func Float(v float64) *float64 { return &v }

// Str returns a *string for building patches inline.
func Str(v string) *string { return &v }
