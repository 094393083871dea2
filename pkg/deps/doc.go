// Package deps discovers, parses, and merges dependency declaration files.
//
// # Overview
//
// A declaration file is a small line-oriented text file that lists the git
// repositories a project or library depends on:
//
//	#DEPENDENCIES
//	https://github.com/org/math.git main
//	https://github.com/org/render.git v2.1   "pinned for the new API"
//
// The first line is the [Header] sentinel. Every following line holds a
// source location and a ref separated by whitespace. Anything from one of
// the comment markers (<, >, " or |) onward is discarded.
//
// # Resolution Pass
//
// [Resolve] runs one complete pass over a library root:
//
//  1. The [Locator] finds every valid declaration file in the immediate
//     subdirectories of the root, then (optionally) in the work directory.
//  2. The [Builder] reads each file with a [Reader], parses lines with
//     [ParseRecord], and merges the results into a [Set] where the first
//     occurrence of a record wins.
//  3. [NewLibrary] maps each record onto its deterministic directory below
//     the root.
//
// A pass has no persistent state. The synchronization driver in
// [github.com/matzehuels/gitdeps/pkg/syncer] runs passes repeatedly until
// no new library appears.
//
// # Errors
//
// Problems with individual files are logged and skipped. Only an unusable
// library root ([errors.ErrCodeInvalidLibraryRoot]) or an empty result
// ([errors.ErrCodeNoDependencies]) are returned from [Resolve].
package deps
