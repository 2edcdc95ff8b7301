// Package storage writes the tool's output files.
//
// A Storage is rooted at one directory, created with its parents on demand.
// Files are written to a temporary file in that directory and renamed into
// place, so readers never observe a half-written CSV, logo or calendar.
// Paths starting with ~/ are expanded to the user's home directory.
package storage
