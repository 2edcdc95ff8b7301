// Package logo downloads NHL team logos from assets.nhle.com.
//
// Each team name is mapped to its three-letter code and a fixed, ordered list
// of candidate URLs is probed until one answers 200 OK: vector variants first
// (light, dark, plain; upper-case code, then lower-case), raster last. The
// first hit is written to <Sanitized_Team_Name>.svg or .png. A team whose
// candidates all miss is reported as failed without stopping the run.
package logo
