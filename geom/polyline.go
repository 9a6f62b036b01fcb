package geom

// Polyline is an ordered list of corner points. Motion along it is
// parameterised by arc length so that a marker moves at constant speed
// across segments of different lengths.
type Polyline []Point

// Length returns the total arc length
func (l Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(l); i++ {
		total += l[i-1].Dist(l[i])
	}
	return total
}

// Start returns the first point
func (l Polyline) Start() Point {
	if len(l) == 0 {
		return Origin
	}
	return l[0]
}

// End returns the last point
func (l Polyline) End() Point {
	if len(l) == 0 {
		return Origin
	}
	return l[len(l)-1]
}

// PointAt returns the point at fraction alpha of the arc length.
// alpha is clamped to [0, 1].
func (l Polyline) PointAt(alpha float64) Point {
	if len(l) == 0 {
		return Origin
	}
	if alpha <= 0 || len(l) == 1 {
		return l[0]
	}
	if alpha >= 1 {
		return l[len(l)-1]
	}

	target := alpha * l.Length()
	walked := 0.0
	for i := 1; i < len(l); i++ {
		seg := l[i-1].Dist(l[i])
		if seg == 0 {
			continue
		}
		if walked+seg >= target {
			return l[i-1].Lerp(l[i], (target-walked)/seg)
		}
		walked += seg
	}
	return l[len(l)-1]
}

// Sub returns the part of the polyline between fractions a and b of the
// arc length, including the interpolated end points. Returns nil when the
// range is empty.
func (l Polyline) Sub(a, b float64) Polyline {
	a = clamp01(a)
	b = clamp01(b)
	if len(l) < 2 || b <= a {
		return nil
	}

	total := l.Length()
	from, to := a*total, b*total

	out := Polyline{l.PointAt(a)}
	walked := 0.0
	for i := 1; i < len(l); i++ {
		walked += l[i-1].Dist(l[i])
		if walked > from && walked < to {
			out = append(out, l[i])
		}
	}
	out = append(out, l.PointAt(b))
	return out
}

// Translate returns a copy moved by d
func (l Polyline) Translate(d Point) Polyline {
	out := make(Polyline, len(l))
	for i, p := range l {
		out[i] = p.Add(d)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
