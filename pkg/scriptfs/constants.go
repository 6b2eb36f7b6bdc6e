package scriptfs

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitFileExists      = 11 // Target name already taken
	ExitOperationFailed = 12 // Create/import/rename/delete failed
	ExitDownloadFailed  = 13 // Download failed or was cancelled
)

const (
	// DefaultCacheCapacity is the number of directory listings kept by the
	// default script provider.
	DefaultCacheCapacity = 10

	// ExternalStorageCacheCapacity is the number of listings kept by the
	// provider rooted at the storage root.
	ExternalStorageCacheCapacity = 5

	// DefaultScriptExtension is appended to names given to new scripts.
	DefaultScriptExtension = ".js"

	// ConfigFileName is the name of the optional configuration file in the
	// script home directory.
	ConfigFileName = "scriptfs.yaml"
)

// ScriptExtensions lists the file extensions recognised as scripts.
var ScriptExtensions = []string{".js", ".auto"}
