package core

import (
	"testing"

	"github.com/pkg/errors"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "staff_management", want: "staff-management"},
		{in: "  Staff Management ", want: "staff-management"},
		{in: "Report -- Cards!", want: "report-cards"},
		{in: "__a__b__", want: "a-b"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		root string
		segs []string
		want string
	}{
		{root: "/school", want: "/school"},
		{root: "/school", segs: []string{"setup"}, want: "/school/setup"},
		{root: "/school/", segs: []string{"/features/", "", "f1"}, want: "/school/features/f1"},
		{root: "/", segs: []string{"setup"}, want: "/setup"},
		{root: "/", want: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := JoinPath(tt.root, tt.segs...); got != tt.want {
				t.Errorf("JoinPath(%q, %v) = %q; want %q", tt.root, tt.segs, got, tt.want)
			}
		})
	}
}

func TestCatalogError(t *testing.T) {
	if CatalogError(nil, "fetching") != nil {
		t.Error("CatalogError(nil) should be nil")
	}

	err := errors.Wrap(CatalogError(errors.New("timeout"), "fetching"), "building menu")
	if !IsCatalogUnavailable(err) {
		t.Errorf("IsCatalogUnavailable(%v) = false; want true", err)
	}
	if want := "building menu: feature catalog unavailable: fetching: timeout"; err.Error() != want {
		t.Errorf("err.Error() = %q; want %q", err.Error(), want)
	}
	if IsCatalogUnavailable(errors.New("other")) {
		t.Error("IsCatalogUnavailable(other) = true; want false")
	}
}
