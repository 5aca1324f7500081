// Package storage declares the plan catalog contracts read by the web host.
//
// The catalog owns plan display data only. Plan selection is per-session
// view state and is never written here.
package storage
