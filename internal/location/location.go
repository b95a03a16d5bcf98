// Package location models normalized filesystem positions: POSIX paths,
// drive roots, UNC shares and virtual namespaces such as "gdrive:".
package location

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Location is a normalized, '/'-separated path. Two locations are equal
// when their strings are equal.
type Location string

const posixRoot = "/"

// Crumb is one navigable breadcrumb segment.
type Crumb struct {
	Label    string
	Location Location
}

// Normalize canonicalizes raw into a Location. Backslashes become '/',
// duplicate separators and "." segments are dropped, ".." is resolved
// lexically and trailing separators are stripped except for roots.
func Normalize(raw string) Location {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	raw = norm.NFC.String(raw)
	raw = strings.ReplaceAll(raw, `\`, "/")

	root, rest := splitRoot(raw)
	segs := cleanSegments(rest, root != "")
	if root == "" && len(segs) == 0 {
		return ""
	}
	if root != "" {
		segs = append([]string{root}, segs...)
	}
	return join(segs)
}

// splitRoot separates the root segment from the remainder of a slash path.
func splitRoot(p string) (string, string) {
	switch {
	case strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "///"):
		parts := strings.SplitN(strings.TrimPrefix(p, "//"), "/", 3)
		server := parts[0]
		if server == "" {
			return posixRoot, ""
		}
		root := "//" + server
		rest := ""
		if len(parts) > 1 && parts[1] != "" {
			root += "/" + parts[1]
		}
		if len(parts) > 2 {
			rest = parts[2]
		}
		return root, rest
	case strings.HasPrefix(p, "/"):
		return posixRoot, p
	}

	first, rest, _ := strings.Cut(p, "/")
	if isVolume(first) {
		return canonicalVolume(first), rest
	}
	return "", p
}

func isVolume(seg string) bool {
	if len(seg) < 2 || !strings.HasSuffix(seg, ":") {
		return false
	}
	return !strings.ContainsAny(seg[:len(seg)-1], ":/")
}

func canonicalVolume(seg string) string {
	if len(seg) == 2 {
		return strings.ToUpper(seg)
	}
	return seg
}

func cleanSegments(p string, rooted bool) []string {
	parts := strings.Split(p, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
				continue
			}
			if rooted {
				continue
			}
		}
		out = append(out, part)
	}
	return out
}

func join(segs []string) Location {
	if len(segs) == 0 {
		return ""
	}
	if segs[0] == posixRoot {
		return Location(posixRoot + strings.Join(segs[1:], "/"))
	}
	return Location(strings.Join(segs, "/"))
}

func (l Location) String() string {
	return string(l)
}

// IsZero reports whether l is the empty location.
func (l Location) IsZero() bool {
	return l == ""
}

// Segments splits l into its path segments. The root ("/", "C:",
// "//server/share", "gdrive:") is always a single segment.
func (l Location) Segments() []string {
	if l == "" {
		return nil
	}
	root, rest := splitRoot(string(l))
	segs := make([]string, 0, strings.Count(rest, "/")+2)
	if root != "" {
		segs = append(segs, root)
	}
	for _, part := range strings.Split(rest, "/") {
		if part != "" {
			segs = append(segs, part)
		}
	}
	return segs
}

// IsRoot reports whether l consists of exactly one segment.
func (l Location) IsRoot() bool {
	return len(l.Segments()) == 1
}

// HasParent reports whether l has more than one segment.
func (l Location) HasParent() bool {
	return len(l.Segments()) > 1
}

// Parent strips the last segment. ok is false for roots and the zero value.
func (l Location) Parent() (Location, bool) {
	segs := l.Segments()
	if len(segs) <= 1 {
		return l, false
	}
	return join(segs[:len(segs)-1]), true
}

// Base returns the last segment, or the root label for a root.
func (l Location) Base() string {
	segs := l.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Join appends name (which may itself contain separators) to l.
func (l Location) Join(name string) Location {
	if l == "" {
		return Normalize(name)
	}
	return Normalize(string(l) + "/" + name)
}

// Contains reports whether other equals l or lies beneath it.
func (l Location) Contains(other Location) bool {
	if l == "" || other == "" {
		return false
	}
	if l == other {
		return true
	}
	prefix := string(l)
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(string(other), prefix)
}

// Breadcrumbs derives one crumb per segment; crumb i navigates to the join
// of segments [0..i].
func (l Location) Breadcrumbs() []Crumb {
	segs := l.Segments()
	crumbs := make([]Crumb, len(segs))
	for i, seg := range segs {
		crumbs[i] = Crumb{Label: seg, Location: join(segs[:i+1])}
	}
	return crumbs
}

// Native renders l for the host OS. Drive roots gain a trailing separator
// on Windows so they refer to the drive root rather than its working dir.
func (l Location) Native(goos string) string {
	if goos != "windows" {
		return string(l)
	}
	s := strings.ReplaceAll(string(l), "/", `\`)
	if len(s) == 2 && s[1] == ':' {
		s += `\`
	}
	return s
}
