// Package scriptfs defines the public types shared by the scriptfs listing
// cache, its observers and the file operations that keep it coherent.
//
// Key types:
//   - Entry: one file or directory as tracked by a directory listing
//   - ChangeEvent: a create/remove/change/refresh notification for a directory
//   - Observer: receives ChangeEvents published by a provider
//   - Logger: pluggable logging used across the module
package scriptfs
