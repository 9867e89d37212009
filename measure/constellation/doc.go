// Package constellation measures the quality of decoded QAM points.
//
// [Analyze] reports error vector magnitude, the distance of each point to
// its nearest alphabet point, per-axis statistics and, when the transmitted
// sequence is known, symbol errors. [BestLag] finds the alignment between
// decoded points and transmitted symbols.
package constellation
