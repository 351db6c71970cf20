package bind

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    *Tag
		wantErr bool
	}{
		{
			name: "empty",
			tag:  "",
			want: &Tag{},
		},
		{
			name: "skip",
			tag:  "-",
			want: nil,
		},
		{
			name: "name only",
			tag:  "name=retries",
			want: &Tag{Name: "retries"},
		},
		{
			name: "all keys",
			tag:  "name=build,desc='Build identifier',readonly",
			want: &Tag{Name: "build", Description: "Build identifier", ReadOnly: true},
		},
		{
			name: "comma in description",
			tag:  `name=mode, desc="fast, slow, or off"`,
			want: &Tag{Name: "mode", Description: "fast, slow, or off"},
		},
		{
			name: "escaped quote",
			tag:  `desc='it\'s fine'`,
			want: &Tag{Description: "it's fine"},
		},
		{
			name:    "unknown key",
			tag:     "name=x,setter=custom",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTag(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTag(%q) error = %v, wantErr %v", tt.tag, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseTag(%q) mismatch (-want +got):\n%s", tt.tag, diff)
			}
		})
	}
}

func TestSplitTagParts(t *testing.T) {
	got := splitTagParts(`a=1, b='x,y' ,,c`)
	want := []string{"a=1", "b='x,y'", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("splitTagParts mismatch (-want +got):\n%s", diff)
	}
}

func TestUnquoteValue(t *testing.T) {
	tests := map[string]string{
		`'single'`:    "single",
		`"double"`:    "double",
		`'mixed"`:     `'mixed"`,
		`bare`:        "bare",
		`'`:           "'",
		`"say \"hi\""`: `say "hi"`,
	}
	for in, want := range tests {
		if got := unquoteValue(in); got != want {
			t.Errorf("unquoteValue(%q) = %q, want %q", in, got, want)
		}
	}
}
