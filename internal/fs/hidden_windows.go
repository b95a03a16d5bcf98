//go:build windows

package fs

// IsHidden honours the Windows hidden attribute and falls back to the
// dot-file convention when attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return isDotHidden(name)
	}
	return attrs&fileAttributeHidden != 0 || isDotHidden(name)
}
