//go:build windows

package fs

import (
	"fmt"
	"os"

	"github.com/kk-code-lab/rpane/internal/location"
)

// hostDrives checks drive letters A-Z and returns those that respond.
func hostDrives() []Drive {
	drives := make([]Drive, 0, 4)
	for letter := 'A'; letter <= 'Z'; letter++ {
		root := fmt.Sprintf(`%c:\`, letter)
		if _, err := os.Stat(root); err != nil {
			continue
		}
		drives = append(drives, Drive{
			Name:     fmt.Sprintf("Local Disk (%c:)", letter),
			Location: location.Normalize(root),
		})
	}
	return drives
}
