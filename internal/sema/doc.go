// Package sema holds the event bus listener checks.
//
// A type opts in to automatic listener registration with a subscriber
// marker; Classify derives its bus from the marker. ValidateListener then
// checks every marked listener method of that type: visibility, a single
// parameter, an event parameter type, and that the event belongs on the
// chosen bus. EventProcessor runs the checks as a processor.Processor.
package sema
