package viewdex

import "testing"

func TestIsDirectory(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/views/", true},
		{"/views/home.xhtml", false},
		{"/", true},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsDirectory(tc.path); got != tc.want {
			t.Errorf("IsDirectory(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestStripPrefixPath(t *testing.T) {
	cases := []struct {
		prefix string
		path   string
		want   string
	}{
		{"/WEB-INF/faces-views/", "/WEB-INF/faces-views/foo.xhtml", "foo.xhtml"},
		{"/views/", "/views/admin/list.xhtml", "admin/list.xhtml"},
		{"/", "/index.xhtml", "index.xhtml"},
		{"/views/", "/other/foo.xhtml", "/other/foo.xhtml"},
		{"/views/", "", ""},
	}

	for _, tc := range cases {
		if got := StripPrefixPath(tc.prefix, tc.path); got != tc.want {
			t.Errorf("StripPrefixPath(%q, %q) = %q, want %q", tc.prefix, tc.path, got, tc.want)
		}
	}
}

func TestStripExtension(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"foo.xhtml", "foo"},
		{"admin/list.xhtml", "admin/list"},
		{"foo", "foo"},
		{"admin.v2/list", "admin.v2/list"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := StripExtension(tc.path); got != tc.want {
			t.Errorf("StripExtension(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestExtension(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"foo.xhtml", ".xhtml"},
		{"/views/admin/list.jsp", ".jsp"},
		{"foo", ""},
		{"admin.v2/list", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Extension(tc.path); got != tc.want {
			t.Errorf("Extension(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestStartsWithOneOf(t *testing.T) {
	if !StartsWithOneOf("/WEB-INF/views/", "/WEB-INF/", "/META-INF/") {
		t.Error("expected /WEB-INF/views/ to match /WEB-INF/")
	}
	if StartsWithOneOf("/views/", "/WEB-INF/", "/META-INF/") {
		t.Error("expected /views/ to match nothing")
	}
	if StartsWithOneOf("/views/") {
		t.Error("expected no prefixes to match nothing")
	}
}
