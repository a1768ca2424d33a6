package fsutil

// File and directory permission constants used for everything hymod writes.
const (
	FileModeDefault = 0o644 // -rw-r--r--: mod packages
	FileModeSecure  = 0o600 // -rw-------: settings, which hold the api key

	DirModeDefault = 0o755 // drwxr-xr-x: install root
	DirModeSecure  = 0o700 // drwx------: config directory
)
