package viewdex

import "testing"

func TestValidateAcceptsPlainAndFilteredRoots(t *testing.T) {
	cfg := Config{ScanPaths: "/views/,/templates/*.xhtml,/*.jsp"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsMultipleDelimiters(t *testing.T) {
	cfg := Config{ScanPaths: "/templates/*.x*html"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a root with two delimiters")
	}
}

func TestValidateRejectsDanglingDelimiter(t *testing.T) {
	for _, scanPaths := range []string{"/templates/*", "/templates/*xhtml"} {
		cfg := Config{ScanPaths: scanPaths}
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected an error for %q", scanPaths)
		}
	}
}

func TestSplitRootPath(t *testing.T) {
	cases := []struct {
		root    string
		path    string
		ext     string
	}{
		{"/templates/*.xhtml", "/templates/", ".xhtml"},
		{"/*.jsp", "/", ".jsp"},
		{"/views/", "/views/", ""},
	}

	for _, tc := range cases {
		path, ext := splitRootPath(tc.root)
		if path != tc.path || ext != tc.ext {
			t.Errorf("splitRootPath(%q) = (%q, %q), want (%q, %q)", tc.root, path, ext, tc.path, tc.ext)
		}
	}
}

func TestConfigRootPathsDropsBlanks(t *testing.T) {
	cfg := Config{ScanPaths: " , /views/ ,,"}
	roots := cfg.RootPaths()

	want := []string{"/views/", DefaultViewsRoot}
	if len(roots) != len(want) {
		t.Fatalf("RootPaths() = %v, want %v", roots, want)
	}
	for i := range want {
		if roots[i] != want[i] {
			t.Fatalf("RootPaths() = %v, want %v", roots, want)
		}
	}
}

func TestConfigRootPathsDefaultOnly(t *testing.T) {
	roots := Config{}.RootPaths()
	if len(roots) != 1 || roots[0] != DefaultViewsRoot {
		t.Fatalf("RootPaths() = %v, want just the default root", roots)
	}
}
