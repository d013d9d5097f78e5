package category

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/lookup/internal/domain"
)

func TestIsValid(t *testing.T) {
	for _, c := range All() {
		if !c.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", c)
		}
	}

	invalid := []Category{"", "people", "PERSON", "ticket"}
	for _, c := range invalid {
		if c.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", c)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"person", Person},
		{" People ", Person},
		{"employees", Person},
		{"organization", Organization},
		{"organizations", Organization},
		{"group", Group},
		{"departments", Group},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("tickets")
	if !errors.Is(err, domain.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList([]string{"group", "person", "groups", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != Group || got[1] != Person {
		t.Errorf("ParseList = %v, want [group person]", got)
	}

	got, err = ParseList(nil)
	if err != nil || got != nil {
		t.Errorf("ParseList(nil) = %v, %v; want nil, nil", got, err)
	}

	if _, err := ParseList([]string{"person", "nope"}); !errors.Is(err, domain.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestTargetAndIcon(t *testing.T) {
	if got := Person.Target("e-1"); got != "/people/e-1" {
		t.Errorf("Person.Target = %q", got)
	}
	if got := Organization.Target("acme"); got != "/organizations/acme" {
		t.Errorf("Organization.Target = %q", got)
	}
	if got := Category("x").Target("1"); got != "" {
		t.Errorf("unknown Target = %q, want empty", got)
	}
	if Group.Icon() != "users" || Person.Icon() != "user" || Organization.Icon() != "building" {
		t.Error("unexpected icons")
	}
}
