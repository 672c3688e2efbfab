package fsutil

// File and directory permission constants, used consistently throughout the
// application.
const (
	// FileModeDefault is the default mode for regular files (-rw-r--r--).
	FileModeDefault = 0o644
	// FileModePrivate is for credential material (-rw-------): owner read/write only.
	FileModePrivate = 0o600

	// DirModeDefault is the default mode for directories (drwxr-xr-x).
	DirModeDefault = 0o755
	// DirModePrivate is for scratch credential directories (drwx------).
	DirModePrivate = 0o700
)
