// Package core holds the data model shared by the guided-filter packages:
// the Plane sample grid, numeric helpers, slice helpers and the sentinel
// errors every entry point reports.
package core
