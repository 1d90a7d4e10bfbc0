// Package processor hosts declaration passes the way an annotation
// processing environment does: processors declare the annotations they care
// about, receive an Env once, and are invoked per round over the declarations
// of that round.
package processor
