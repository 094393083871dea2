// Package pkg provides the core libraries for gitdeps, a loader for
// git-hosted library dependencies.
//
// # Overview
//
// A project lists the libraries it needs in a declaration file
// (dependency.txt by default). Every line names a git source location and a
// ref. gitdeps clones each library below a library root, reads the
// declaration files the clones bring along, and keeps going until no new
// library appears.
//
// # Architecture
//
// The typical data flow through gitdeps:
//
//	dependency.txt files
//	         ↓
//	    [deps] package (locate, validate, parse, merge)
//	         ↓
//	    [syncer] package (clone/pull/reset until fixed point)
//	         ↓
//	    [dag] + [render/nodelink] + [io] (graph and listings)
//
// # Quick Start
//
// Synchronize the libraries declared in the current directory:
//
//	import (
//	    "context"
//
//	    "github.com/matzehuels/gitdeps/pkg/deps"
//	    "github.com/matzehuels/gitdeps/pkg/git"
//	    "github.com/matzehuels/gitdeps/pkg/syncer"
//	)
//
//	d := syncer.New(git.New(nil), nil)
//	report, err := d.Run(context.Background(), syncer.Options{
//	    Resolve: deps.Options{
//	        LibraryDir:     "./libraries",
//	        Filename:       "dependency.txt",
//	        WorkDir:        ".",
//	        IncludeWorkDir: true,
//	    },
//	})
//
// # Main Packages
//
//   - [deps]: declaration file reader, header check, locator, record set and
//     library path mapping
//   - [syncer]: the fixed-point synchronization driver and its [syncer.Report]
//   - [git]: the git command-line synchronizer
//   - [config]: TOML configuration with XDG lookup
//   - [dag]: declaration graph with row assignment and cycle detection
//   - [render/nodelink]: DOT and SVG output of the declaration graph
//   - [io]: JSON and YAML listings
//   - [errors]: coded errors shared by every package
//   - [observability]: hooks for scan and sync events
//   - [buildinfo]: version information set at link time
//
// [deps]: https://pkg.go.dev/github.com/matzehuels/gitdeps/pkg/deps
// [syncer]: https://pkg.go.dev/github.com/matzehuels/gitdeps/pkg/syncer
// [syncer.Report]: https://pkg.go.dev/github.com/matzehuels/gitdeps/pkg/syncer#Report
// [git]: https://pkg.go.dev/github.com/matzehuels/gitdeps/pkg/git
// [config]: https://pkg.go.dev/github.com/matzehuels/gitdeps/pkg/config
// [dag]: https://pkg.go.dev/github.com/matzehuels/gitdeps/pkg/dag
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/gitdeps/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/gitdeps/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/gitdeps/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gitdeps/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gitdeps/pkg/buildinfo
package pkg
