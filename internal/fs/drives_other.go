//go:build !windows

package fs

import "github.com/kk-code-lab/rpane/internal/location"

func hostDrives() []Drive {
	return []Drive{{Name: "Root", Location: location.Location("/")}}
}
