package radar

import "math"

// overlappingStations returns every other station whose coverage
// circle overlaps self's, the set the render loop needs to consult
// when deciding pixel ownership inside the overlap.
func overlappingStations(self station, all []station) []station {
	out := make([]station, 0, len(all))
	for _, other := range all {
		if other.code == self.code {
			continue
		}
		if !circlesOverlap(self, other) {
			continue
		}
		out = append(out, other)
	}
	return out
}

func circlesOverlap(a, b station) bool {
	dlon := a.lon - b.lon
	dlat := a.lat - b.lat
	dist := math.Sqrt(dlon*dlon + dlat*dlat)
	return dist < a.radiusDeg+b.radiusDeg
}
