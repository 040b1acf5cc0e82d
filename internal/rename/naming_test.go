package rename

import (
	"testing"

	"github.com/rs/xid"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.jpg", "a.jpg"},
		{"01_a.jpg", "a.jpg"},
		{"3_c.jpg", "c.jpg"},
		{"99_z.png", "z.png"},
		{"01_02_a.jpg", "02_a.jpg"}, // stripped once
		{"123_a.jpg", "123_a.jpg"},  // three digits is not a rank
		{"01_", "01_"},              // nothing left after the prefix
		{"_tmp_a.jpg", "_tmp_a.jpg"},
		{"IMG_0001.jpg", "IMG_0001.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanName(tt.name); got != tt.want {
				t.Errorf("CleanName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestFinalName(t *testing.T) {
	tests := []struct {
		rank     int
		original string
		want     string
	}{
		{1, "a.jpg", "01_a.jpg"},
		{1, "3_c.jpg", "01_c.jpg"},
		{12, "05_b.webp", "12_b.webp"},
		{100, "a.jpg", "100_a.jpg"},
	}

	for _, tt := range tests {
		if got := FinalName(tt.rank, tt.original); got != tt.want {
			t.Errorf("FinalName(%d, %q) = %q, want %q", tt.rank, tt.original, got, tt.want)
		}
	}
}

func TestParseTempName(t *testing.T) {
	runID := xid.New().String()

	t.Run("round trip", func(t *testing.T) {
		for _, original := range []string{"a.jpg", "01_photo.jpg", "with_underscores_1.png", "space name.webp"} {
			name := TempName(DefaultTempPrefix, runID, 7, original)
			got, ok := ParseTempName(DefaultTempPrefix, name)
			if !ok {
				t.Fatalf("ParseTempName(%q) did not match", name)
			}
			want := TempEntry{RunID: runID, Index: 7, Original: original}
			if got != want {
				t.Errorf("ParseTempName(%q) = %+v, want %+v", name, got, want)
			}
			if got.Rank() != 8 {
				t.Errorf("Rank() = %d, want 8", got.Rank())
			}
		}
	})

	t.Run("not a quarantine name", func(t *testing.T) {
		for _, name := range []string{
			"a.jpg",
			"01_a.jpg",
			"_tmp_a.jpg",
			"_tmp_" + runID + "_x_a.jpg",
			"_tmp_" + runID + "_3_",
			"_other_" + runID + "_3_a.jpg",
		} {
			if got, ok := ParseTempName(DefaultTempPrefix, name); ok {
				t.Errorf("ParseTempName(%q) = %+v, want no match", name, got)
			}
		}
	})

	t.Run("custom prefix", func(t *testing.T) {
		name := TempName(".q+", runID, 0, "a.jpg")
		if _, ok := ParseTempName(".q+", name); !ok {
			t.Errorf("ParseTempName(%q) did not match", name)
		}
		if _, ok := ParseTempName(DefaultTempPrefix, name); ok {
			t.Errorf("ParseTempName(%q) matched the default prefix", name)
		}
	})
}
