package mountaincar

import (
	"image"
	"math"

	"github.com/fogleman/gg"
)

const (
	ScreenWidth  int = 600
	ScreenHeight int = 400
)

// height returns the height of the hill at position x
func height(x float64) float64 {
	return math.Sin(3*x)*0.45 + 0.55
}

// Render draws the hill, the goal flag, and the car at the current
// state
func (m *MountainCar) Render() (image.Image, error) {
	worldWidth := m.positionBounds.Max - m.positionBounds.Min
	scale := float64(ScreenWidth) / worldWidth
	screen := func(x float64) (float64, float64) {
		return (x - m.positionBounds.Min) * scale,
			float64(ScreenHeight) - height(x)*scale - 20
	}

	dc := gg.NewContext(ScreenWidth, ScreenHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Hill
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	for i := 0; i <= 100; i++ {
		x := m.positionBounds.Min + worldWidth*float64(i)/100
		sx, sy := screen(x)
		if i == 0 {
			dc.MoveTo(sx, sy)
		} else {
			dc.LineTo(sx, sy)
		}
	}
	dc.Stroke()

	// Flag
	fx, fy := screen(GoalPosition)
	dc.DrawLine(fx, fy, fx, fy-40)
	dc.Stroke()
	dc.SetRGB(0.8, 0.8, 0)
	dc.DrawRectangle(fx, fy-40, 25, 10)
	dc.Fill()

	// Car, tilted along the slope
	x := m.lastStep.Observation.AtVec(0)
	cx, cy := screen(x)
	dc.Push()
	dc.RotateAbout(-math.Atan(math.Cos(3*x)*0.45*3), cx, cy)
	dc.SetRGB(0.2, 0.4, 0.8)
	dc.DrawRectangle(cx-20, cy-20, 40, 15)
	dc.Fill()
	dc.Pop()

	return dc.Image(), nil
}
