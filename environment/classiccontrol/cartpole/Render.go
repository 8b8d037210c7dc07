package cartpole

import (
	"image"
	"math"

	"github.com/fogleman/gg"
)

const (
	ScreenWidth  int = 600
	ScreenHeight int = 400
)

// Render draws the cart and pole at the current state
func (c *Cartpole) Render() (image.Image, error) {
	worldWidth := 2 * FailPosition
	scale := float64(ScreenWidth) / worldWidth
	poleWidth := 10.0
	poleLen := scale * 2 * c.halfPoleLength
	cartWidth, cartHeight := 50.0, 30.0
	trackY := float64(ScreenHeight) * 0.75

	state := c.lastStep.Observation
	x, th := state.AtVec(0), state.AtVec(2)
	cartX := x*scale + float64(ScreenWidth)/2

	dc := gg.NewContext(ScreenWidth, ScreenHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Track
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(0, trackY, float64(ScreenWidth), trackY)
	dc.Stroke()

	// Cart
	dc.DrawRectangle(cartX-cartWidth/2, trackY-cartHeight/2, cartWidth,
		cartHeight)
	dc.Fill()

	// Pole, rotated about the axle
	axleY := trackY - cartHeight/4
	dc.Push()
	dc.RotateAbout(th, cartX, axleY)
	dc.SetRGB(0.8, 0.6, 0.4)
	dc.DrawRectangle(cartX-poleWidth/2, axleY-poleLen, poleWidth, poleLen)
	dc.Fill()
	dc.Pop()

	// Axle
	dc.SetRGB(0.5, 0.5, 0.8)
	dc.DrawCircle(cartX, axleY, poleWidth/2)
	dc.Fill()

	// Fail angle markers
	dc.SetRGB(0.9, 0.2, 0.2)
	dc.SetLineWidth(1)
	for _, sign := range []float64{-1, 1} {
		angle := sign*FailAngle - math.Pi/2
		dc.DrawLine(cartX, axleY, cartX+poleLen*math.Cos(angle),
			axleY+poleLen*math.Sin(angle))
	}
	dc.Stroke()

	return dc.Image(), nil
}
