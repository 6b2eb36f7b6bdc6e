// Package files provides file-related functionality organized into sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS, in-memory and embedded)
//   - filter: Predicates deciding which files appear in a listing
//   - scanner: Directory listing and metadata extraction
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/scriptfs/internal/files/filesystem"
//	    "github.com/vvka-141/scriptfs/internal/files/filter"
//	    "github.com/vvka-141/scriptfs/internal/files/scanner"
//	)
//
//	fileScanner := scanner.NewScannerWithFS(filesystem.NewOSFileSystem())
//	entries, err := fileScanner.ScanDirectory("/home/me/Scripts", filter.ScriptFilter())
package files
