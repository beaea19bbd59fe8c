// Package graph samples two scalar series every tick into a simplified
// polyline.
//
// A [Graph] reads its x and y values through [Source]s. Each new point is
// compared against the last two: when the three are nearly collinear the
// middle point carries no information and is dropped, so straight runs keep
// only their endpoints and curves accumulate points.
package graph
