// Package scanner lists the immediate children of a directory through a
// filesystem provider, applying a FileFilter.
package scanner
