package evaluator

// Context carries the normalized coordinates for one evaluation: the position
// of the pixel within the frame (X, Y) and of the frame within the animation
// (T), each in [-1, 1].
//
// A Context is an ephemeral value: the renderer builds a fresh one per pixel
// per frame, and it is never mutated or shared between evaluations.
type Context struct {
	X float64
	Y float64
	T float64
}
