// Package types implements the type-relation oracle used by the listener
// checks: a subtype graph over source declarations, java.lang and an external
// table of event types.
package types
