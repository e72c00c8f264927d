//go:build windows

package packager

import "golang.org/x/sys/windows"

// getAvailableDiskSpace returns the bytes available to the caller on the
// volume holding path.
func getAvailableDiskSpace(path string) (int64, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	var available, total, free uint64
	if err := windows.GetDiskFreeSpaceEx(pathPtr, &available, &total, &free); err != nil {
		return 0, err
	}
	return int64(available), nil
}
