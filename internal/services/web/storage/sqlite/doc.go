// Package sqlite provides the plan catalog backed by SQLite.
package sqlite
