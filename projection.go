package glf

import "github.com/go-gl/mathgl/mgl32"

// Ortho returns the orthographic projection mapping the view box
// [left,right]×[bottom,top]×[near,far] onto the clip cube. The matrix is
// column-major and returned by value, so successive calls never share storage.
//
// Note the depth scale is 2/(far-near), not the negated form used by
// glOrtho: depth increases toward far.
func Ortho(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	var m mgl32.Mat4
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = 2 / (far - near)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = -(far + near) / (far - near)
	m[15] = 1
	return m
}

// ScreenOrtho is the usual 2D projection for a width×height window with the
// origin at the top-left and Y increasing downward.
func ScreenOrtho(width, height float32) mgl32.Mat4 {
	return Ortho(0, width, height, 0, -1, 1)
}
