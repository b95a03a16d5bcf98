package location

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want Location
	}{
		{"", ""},
		{"   ", ""},
		{"/", "/"},
		{"/home/u/", "/home/u"},
		{"//home//u", "//home/u"},
		{"///home//u", "/home/u"},
		{"/home/./u/../v", "/home/v"},
		{"/..", "/"},
		{`C:\Users\Public\`, "C:/Users/Public"},
		{"c:/", "C:"},
		{`C:\`, "C:"},
		{"C:", "C:"},
		{"gdrive:", "gdrive:"},
		{"gdrive:/Shared/", "gdrive:/Shared"},
		{`\\server\share\docs`, "//server/share/docs"},
		{"docs/notes", "docs/notes"},
		{"Cafe\u0301", "Caf\u00e9"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSegments(t *testing.T) {
	cases := []struct {
		in   Location
		want []string
	}{
		{"C:/Users/Public", []string{"C:", "Users", "Public"}},
		{"/home/u", []string{"/", "home", "u"}},
		{"/", []string{"/"}},
		{"C:", []string{"C:"}},
		{"//server/share/docs", []string{"//server/share", "docs"}},
		{"gdrive:/a", []string{"gdrive:", "a"}},
		{"", nil},
	}

	for _, tc := range cases {
		if got := tc.in.Segments(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Segments(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestParent(t *testing.T) {
	cases := []struct {
		in     Location
		want   Location
		wantOK bool
	}{
		{"C:/Users/Public", "C:/Users", true},
		{"C:/Users", "C:", true},
		{"C:", "C:", false},
		{"/home", "/", true},
		{"/", "/", false},
		{"//server/share/docs", "//server/share", true},
		{"//server/share", "//server/share", false},
		{"gdrive:", "gdrive:", false},
	}

	for _, tc := range cases {
		got, ok := tc.in.Parent()
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("Parent(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
		if tc.in.HasParent() != tc.wantOK {
			t.Errorf("HasParent(%q) = %v, want %v", tc.in, !tc.wantOK, tc.wantOK)
		}
	}
}

func TestBreadcrumbsDriveLocation(t *testing.T) {
	crumbs := Location("C:/Users/Public").Breadcrumbs()
	want := []Crumb{
		{Label: "C:", Location: "C:"},
		{Label: "Users", Location: "C:/Users"},
		{Label: "Public", Location: "C:/Users/Public"},
	}
	if !reflect.DeepEqual(crumbs, want) {
		t.Fatalf("unexpected crumbs: %#v", crumbs)
	}
}

func TestBreadcrumbsPosixLocation(t *testing.T) {
	crumbs := Location("/home/u").Breadcrumbs()
	want := []Crumb{
		{Label: "/", Location: "/"},
		{Label: "home", Location: "/home"},
		{Label: "u", Location: "/home/u"},
	}
	if !reflect.DeepEqual(crumbs, want) {
		t.Fatalf("unexpected crumbs: %#v", crumbs)
	}
}

func TestBreadcrumbsNativeSeparators(t *testing.T) {
	crumbs := Normalize(`D:\Projects\rpane`).Breadcrumbs()
	if len(crumbs) != 3 {
		t.Fatalf("expected 3 crumbs, got %d", len(crumbs))
	}
	if crumbs[1].Location != "D:/Projects" {
		t.Fatalf("middle crumb = %q", crumbs[1].Location)
	}
}

func TestJoin(t *testing.T) {
	if got := Location("/").Join("etc"); got != "/etc" {
		t.Fatalf("join root = %q", got)
	}
	if got := Location("C:").Join("Windows"); got != "C:/Windows" {
		t.Fatalf("join drive = %q", got)
	}
	if got := Location("/home/u").Join("a/b"); got != "/home/u/a/b" {
		t.Fatalf("join nested = %q", got)
	}
}

func TestContains(t *testing.T) {
	if !Location("/home").Contains("/home/u/x") {
		t.Fatal("expected /home to contain /home/u/x")
	}
	if Location("/home").Contains("/homework") {
		t.Fatal("prefix match must respect segment boundaries")
	}
	if !Location("/").Contains("/etc") {
		t.Fatal("root should contain everything")
	}
}

func TestNative(t *testing.T) {
	if got := Location("C:").Native("windows"); got != `C:\` {
		t.Fatalf("drive root native = %q", got)
	}
	if got := Location("C:/Users").Native("windows"); got != `C:\Users` {
		t.Fatalf("native = %q", got)
	}
	if got := Location("/home/u").Native("linux"); got != "/home/u" {
		t.Fatalf("posix native = %q", got)
	}
}

func TestBase(t *testing.T) {
	if got := Location("/home/u").Base(); got != "u" {
		t.Fatalf("base = %q", got)
	}
	if got := Location("C:").Base(); got != "C:" {
		t.Fatalf("root base = %q", got)
	}
}
