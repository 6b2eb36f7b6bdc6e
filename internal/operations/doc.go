// Package operations performs user-facing file actions (create, import,
// rename, delete, download) and reports each successful outcome to the
// directory listing provider so every open view stays coherent.
//
// Failed actions never notify. Errors wrap the sentinels in pkg/scriptfs so
// callers can map them to messages or exit codes.
package operations
