package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/cannon/internal/dynamo"
)

var palette = []string{"#00ff00", "#00bfff", "#ff8c00", "#ff4fd8", "#ffd700", "#7fffd4"}

// TrajectoryToSVG draws the planet at the origin and one path per
// projectile handle. The view is square and centered on the planet so the
// geometry is not distorted.
func TrajectoryToSVG(samples []dynamo.Sample, planetRadius float64, size int) string {
	if size <= 0 {
		return ""
	}

	extent := planetRadius
	for _, s := range samples {
		extent = math.Max(extent, math.Max(math.Abs(s.Pos.X), math.Abs(s.Pos.Y)))
	}
	extent *= 1.1

	scale := float64(size) / (2 * extent)
	half := float64(size) / 2
	toScreen := func(p dynamo.Vec2) (float64, float64) {
		return half + p.X*scale, half - p.Y*scale
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#1e3a5f" stroke="#4682b4" stroke-width="1"/>
`, size, size, size, size, half, half, planetRadius*scale))

	paths := groupByHandle(samples)
	handles := make([]int, 0, len(paths))
	for h := range paths {
		handles = append(handles, h)
	}
	sort.Ints(handles)

	for i, h := range handles {
		pts := paths[h]
		if len(pts) < 2 {
			continue
		}
		color := palette[i%len(palette)]
		sb.WriteString(fmt.Sprintf(`<path data-handle="%d" fill="none" stroke="%s" stroke-width="1.5" d="M`, h, color))
		for j, p := range pts {
			x, y := toScreen(p)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString(`"/>` + "\n")

		x, y := toScreen(pts[len(pts)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x, y, color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func groupByHandle(samples []dynamo.Sample) map[int][]dynamo.Vec2 {
	out := make(map[int][]dynamo.Vec2)
	for _, s := range samples {
		out[s.Handle] = append(out[s.Handle], s.Pos)
	}
	return out
}
