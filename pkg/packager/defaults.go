package packager

// =================================
// Timeouts (seconds)
// =================================
const (
	JPackageTimeout = 600
	JdepsTimeout    = 120
)

// =================================
// Disk space
// =================================
const (
	// DiskSpaceMultiplier is applied to the size of the input directory.
	DiskSpaceMultiplier = 2
	// MinFreeSpace is required on top of the input estimate; the bundled
	// runtime dominates the size of an application image.
	MinFreeSpace = 512 * 1024 * 1024
)

const (
	// ImageKind is the jpackage --type of an application image.
	ImageKind = "app-image"
	// macBundleSuffix is appended to the image name on macOS.
	macBundleSuffix = ".app"
)
