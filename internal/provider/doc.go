// Package provider implements the storage file provider: the single entry
// point through which readers list directories and mutators report the
// outcome of file operations.
//
// Listing is cache-or-scan. A miss scans storage, stores the result and
// returns it; scan failures degrade to an empty listing. Mutators perform
// I/O themselves and then call one of the Notify methods, which patch only
// the affected cached listing and publish a scriptfs.ChangeEvent to every
// subscribed observer.
//
// Notifications about directories that are not cached are dropped: no
// observer can be showing them, so there is nothing to keep coherent.
package provider
