package sensor

import (
	"image"

	"github.com/fogleman/gg"
)

const (
	ScreenWidth  int = 600
	ScreenHeight int = 200
)

// Render draws the robot, the wall, the target distance, and the
// current sensor reading
func (s *Sensor) Render() (image.Image, error) {
	margin := 20.0
	wallX := margin
	scale := (float64(ScreenWidth) - 2*margin) / MaxRange
	groundY := float64(ScreenHeight) * 0.7
	robotW, robotH := 40.0, 30.0

	dc := gg.NewContext(ScreenWidth, ScreenHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Ground and wall
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	dc.DrawLine(0, groundY, float64(ScreenWidth), groundY)
	dc.Stroke()
	dc.DrawRectangle(0, groundY-120, wallX, 120)
	dc.Fill()

	// Target distance
	if t, ok := s.Task.(interface{ Target() float64 }); ok {
		targetX := wallX + t.Target()*scale
		dc.SetRGB(0.2, 0.7, 0.2)
		dc.SetLineWidth(1)
		dc.DrawLine(targetX, groundY-60, targetX, groundY)
		dc.Stroke()
	}

	// Sensor beam to the measured distance
	robotX := wallX + s.distance*scale
	beamY := groundY - robotH/2
	reading := s.lastStep.Observation.AtVec(0)
	dc.SetRGB(0.9, 0.2, 0.2)
	dc.SetLineWidth(1)
	dc.DrawLine(robotX, beamY, robotX-reading*scale, beamY)
	dc.Stroke()

	// Robot
	dc.SetRGB(0.3, 0.3, 0.8)
	dc.DrawRectangle(robotX, groundY-robotH, robotW, robotH)
	dc.Fill()

	return dc.Image(), nil
}
