// Package download fetches scripts over HTTP into a WritableFileSystem.
//
// Transient failures are retried through package retry. Every running
// download can be cancelled by URL, and progress is reported as the body
// streams in.
package download
