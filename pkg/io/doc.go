// Package io exports resolutions and declaration graphs as JSON or YAML.
//
// # Listing Format
//
// [WriteListing] encodes the result of a resolution pass:
//
//	{
//	  "root": "/work/libraries",
//	  "files": [
//	    {"path": "/work/libraries/http-main/dependency.txt", "library": "http-main"},
//	    {"path": "/work/dependency.txt"}
//	  ],
//	  "libraries": [
//	    {
//	      "name": "http-main",
//	      "path": "/work/libraries/http-main",
//	      "url": "https://example.com/org/http",
//	      "ref": "main",
//	      "present": true,
//	      "declared_by": ["/work/dependency.txt"]
//	    }
//	  ]
//	}
//
// Libraries appear in discovery order. "declared_by" lists the declaration
// files that named the library, in reading order.
//
// # Graph Format
//
// [WriteGraphJSON] encodes a declaration graph as two arrays:
//
//	{
//	  "nodes": [{"id": "(project)", "kind": "project"}, {"id": "http-main", "row": 1}],
//	  "edges": [{"from": "(project)", "to": "http-main"}]
//	}
package io
