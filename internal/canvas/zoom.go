package canvas

// The permitted zoom levels, ordered. Zoom is purely a view transform: it
// never touches stored element coordinates.
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 2.0}

// fitZoomIndex is the index of the 1.0 level ZoomFit resets to.
const fitZoomIndex = 3

// ZoomLevels returns the permitted zoom levels in order.
func ZoomLevels() []float64 {
	return append([]float64(nil), zoomLevels...)
}

// Zoom returns the current zoom factor.
func (c *Controller) Zoom() float64 {
	return c.state.Zoom
}

// ZoomIn moves one step up the permitted zoom levels.
func (c *Controller) ZoomIn() {
	if c.zoomIdx < len(zoomLevels)-1 {
		c.zoomIdx++
		c.state.Zoom = zoomLevels[c.zoomIdx]
	}
}

// ZoomOut moves one step down the permitted zoom levels.
func (c *Controller) ZoomOut() {
	if c.zoomIdx > 0 {
		c.zoomIdx--
		c.state.Zoom = zoomLevels[c.zoomIdx]
	}
}

// ZoomFit resets zoom to the 1.0 level.
func (c *Controller) ZoomFit() {
	c.zoomIdx = fitZoomIndex
	c.state.Zoom = zoomLevels[c.zoomIdx]
}
