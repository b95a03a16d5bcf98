package fs

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortItems orders directories before files, then by name using a
// case-insensitive numeric collation ("file2" sorts before "file10").
func SortItems(items []Item) {
	col := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.Name < b.Name
	})
}
