package logic

// AxisMap linearly maps a normalized stick value onto a joint angle range.
// MinDeg may exceed MaxDeg to reverse the joint direction.
type AxisMap struct {
	MinDeg float64
	MaxDeg float64
}

// FullTravel maps [0, 1] onto the whole servo range.
var FullTravel = AxisMap{MinDeg: MinAngle, MaxDeg: MaxAngle}

// Angle returns the joint angle for v, which is clamped to [0, 1] first.
func (m AxisMap) Angle(v float64) float64 {
	return m.MinDeg + Clamp01(v)*(m.MaxDeg-m.MinDeg)
}
