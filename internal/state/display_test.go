package state

import (
	"testing"

	"github.com/kk-code-lab/rpane/internal/location"
)

func TestGetDisplayStateBrowsing(t *testing.T) {
	s := CreateDefaultSession("C:/Users/Public", WithIDSource(SequentialIDs("tab")))
	ds, err := GetDisplayState(s)
	if err != nil {
		t.Fatalf("GetDisplayState: %v", err)
	}
	if ds.PaneID != "pane-1" || ds.Searching || !ds.Loading {
		t.Fatalf("display = %+v", ds)
	}
	want := []location.Crumb{
		{Label: "C:", Location: "C:"},
		{Label: "Users", Location: "C:/Users"},
		{Label: "Public", Location: "C:/Users/Public"},
	}
	if len(ds.Breadcrumbs) != len(want) {
		t.Fatalf("breadcrumbs = %v", ds.Breadcrumbs)
	}
	for i := range want {
		if ds.Breadcrumbs[i] != want[i] {
			t.Fatalf("crumb %d = %+v, want %+v", i, ds.Breadcrumbs[i], want[i])
		}
	}
	if ds.CanGoBack || ds.CanGoForward || !ds.CanGoUp {
		t.Fatalf("controls back=%v forward=%v up=%v", ds.CanGoBack, ds.CanGoForward, ds.CanGoUp)
	}
	if len(ds.Tabs) != 1 || ds.Tabs[0].Title != "Public" || !ds.Tabs[0].Active {
		t.Fatalf("tabs = %+v", ds.Tabs)
	}
}

func TestGetDisplayStateSearching(t *testing.T) {
	s := CreateDefaultSession("C:/Users", WithIDSource(SequentialIDs("tab")))
	s, err := s.DispatchToActiveTab(func(tab Tab) (Tab, error) {
		tab = tab.BeginSearch("rep", "C:/Users")
		tab, _ = tab.ApplySearchResult(tab.Search.Seq, hits("report.txt"), nil)
		return tab, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	ds, err := GetDisplayState(s)
	if err != nil {
		t.Fatal(err)
	}
	if !ds.Searching || ds.Query != "rep" || len(ds.Results) != 1 || ds.CanGoUp || ds.Loading {
		t.Fatalf("display = %+v", ds)
	}
	if ds.Mode != ModeSearching || ds.Tabs[0].Title != "Search: rep" {
		t.Fatalf("mode %v title %q", ds.Mode, ds.Tabs[0].Title)
	}

	all, err := PaneDisplays(s)
	if err != nil || len(all) != 2 {
		t.Fatalf("PaneDisplays = %d, %v", len(all), err)
	}
	if !all[0].PaneActive || all[1].PaneActive || all[1].Searching {
		t.Fatal("only the first pane should be active and searching")
	}
}

func TestDisplayRootCannotGoUp(t *testing.T) {
	s := CreateDefaultSession("C:")
	ds, err := GetDisplayState(s)
	if err != nil {
		t.Fatal(err)
	}
	if ds.CanGoUp || len(ds.Breadcrumbs) != 1 {
		t.Fatalf("display = %+v", ds)
	}
}
