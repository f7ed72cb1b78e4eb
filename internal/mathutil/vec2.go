package mathutil

// Vec2 is a 2-component vector, used for texture coordinates.
type Vec2 [2]float64
