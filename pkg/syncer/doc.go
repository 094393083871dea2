// Package syncer drives repeated resolution and synchronization passes over
// a library root until no pass introduces a new library.
//
// The first pass updates every library that is already present (unless
// pulls are disabled) and clones the missing ones. Later passes only clone
// libraries that were discovered in the declaration files of freshly
// cloned libraries. The loop ends at the first pass that clones nothing,
// so a declaration graph of depth d finishes in at most d+1 passes.
//
// Synchronizer failures never abort the loop. They are logged and
// collected in the [Report] so callers can decide how strict to be.
package syncer
