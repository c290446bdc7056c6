// Package kernel computes radial-basis-function kernel values shared by all
// three solver families. The kernel width gamma is always derived from the
// bandwidth sigma as 1/(2*sigma^2).
package kernel
