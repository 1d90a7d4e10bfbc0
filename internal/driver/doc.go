// Package driver runs busguard over a set of Java sources: it discovers
// files, parses them in parallel, builds the symbol table and type graph,
// and drives the listener processor through its rounds.
package driver
