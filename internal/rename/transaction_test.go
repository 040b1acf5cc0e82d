package rename

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/babarot/imgsort/internal/core/types"
)

// fixture creates one file per name in dir, with the name as content, and
// returns the items in the given order with ids 1..N.
func fixture(t *testing.T, dir string, names ...string) []types.Item {
	t.Helper()
	items := make([]types.Item, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(name), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		items[i] = types.Item{ID: types.ItemID(i + 1), FullPath: path}
	}
	return items
}

// withThumbs creates a thumbnail for every item in thumbDir
func withThumbs(t *testing.T, thumbDir string, items []types.Item) []types.Item {
	t.Helper()
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		t.Fatal(err)
	}
	out := slices.Clone(items)
	for i, item := range out {
		path := filepath.Join(thumbDir, item.Name())
		if err := os.WriteFile(path, []byte("thumb:"+item.Name()), 0644); err != nil {
			t.Fatalf("Failed to create thumbnail: %v", err)
		}
		out[i].ThumbPath = path
	}
	return out
}

// files lists the regular files in dir
func files(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// content maps each file in dir to its content
func content(t *testing.T, dir string) map[string]string {
	t.Helper()
	m := make(map[string]string)
	for _, name := range files(t, dir) {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		m[name] = string(b)
	}
	return m
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(b)
}

func assertContent(t *testing.T, dir string, want map[string]string) {
	t.Helper()
	got := content(t, dir)
	if len(got) != len(want) {
		t.Errorf("%s holds %v, want %v", dir, files(t, dir), want)
	}
	for name, w := range want {
		if g, ok := got[name]; !ok {
			t.Errorf("%s is missing", name)
		} else if g != w {
			t.Errorf("%s content = %q, want %q", name, g, w)
		}
	}
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	thumbs := filepath.Join(dir, "thumbs")
	items := withThumbs(t, thumbs, fixture(t, dir, "1_a.jpg", "2_b.jpg", "3_c.jpg"))

	// "3_c.jpg" dragged before "1_a.jpg"
	seq := []types.Item{items[2], items[0], items[1]}

	tx := New(Options{TargetDir: dir, ThumbDir: thumbs})
	res := tx.Execute(context.Background(), seq)
	if !res.Success {
		t.Fatalf("Execute() failed: %v", res.Err)
	}
	if res.Count != 3 || res.Renamed != 3 {
		t.Errorf("Count, Renamed = %d, %d, want 3, 3", res.Count, res.Renamed)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
	if res.Phase != PhaseCommitted {
		t.Errorf("Phase = %s, want %s", res.Phase, PhaseCommitted)
	}

	assertContent(t, dir, map[string]string{
		"01_c.jpg": "3_c.jpg",
		"02_a.jpg": "1_a.jpg",
		"03_b.jpg": "2_b.jpg",
	})
	assertContent(t, thumbs, map[string]string{
		"01_c.jpg": "thumb:3_c.jpg",
		"02_a.jpg": "thumb:1_a.jpg",
		"03_b.jpg": "thumb:2_b.jpg",
	})

	want := "1. 3_c.jpg\n2. 1_a.jpg\n3. 2_b.jpg\n"
	if got := readFile(t, res.ManifestPath); got != want {
		t.Errorf("manifest = %q, want %q", got, want)
	}
	if res.ManifestPath != filepath.Join(dir, DefaultBackupDir, DefaultManifestName) {
		t.Errorf("ManifestPath = %s", res.ManifestPath)
	}
	// Only the manifest is left in the backup directory
	if got := files(t, filepath.Join(dir, DefaultBackupDir)); !slices.Equal(got, []string{DefaultManifestName}) {
		t.Errorf("backup directory holds %v", got)
	}
}

func TestExecuteReversal(t *testing.T) {
	dir := t.TempDir()
	items := fixture(t, dir, "A.png", "B.png", "C.png")

	res := New(Options{TargetDir: dir}).Execute(context.Background(), []types.Item{items[2], items[1], items[0]})
	if !res.Success {
		t.Fatalf("Execute() failed: %v", res.Err)
	}
	assertContent(t, dir, map[string]string{
		"01_C.png": "C.png",
		"02_B.png": "B.png",
		"03_A.png": "A.png",
	})
}

func TestExecuteRoundTrip(t *testing.T) {
	const n = 25
	dir := t.TempDir()

	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("IMG_%04d.jpg", i)
	}
	items := fixture(t, dir, names...)

	// Deterministic permutation: stride through the items
	seq := make([]types.Item, 0, n)
	for i := 0; i < n; i++ {
		seq = append(seq, items[(i*7)%n])
	}

	res := New(Options{TargetDir: dir}).Execute(context.Background(), seq)
	if !res.Success {
		t.Fatalf("Execute() failed: %v", res.Err)
	}

	entries, err := ReadManifest(res.ManifestPath)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if len(entries) != n {
		t.Fatalf("manifest has %d entries, want %d", len(entries), n)
	}

	got := content(t, dir)
	if len(got) != n {
		t.Fatalf("directory holds %d files, want %d", len(got), n)
	}
	for i, item := range seq {
		name := fmt.Sprintf("%02d_%s", i+1, item.Name())
		if got[name] != item.Name() {
			t.Errorf("%s content = %q, want %q", name, got[name], item.Name())
		}
		if entries[i].Rank != i+1 || entries[i].Original != item.Name() {
			t.Errorf("manifest entry %d = %+v, want {%d %s}", i, entries[i], i+1, item.Name())
		}
	}
}

func TestExecuteCleanedNames(t *testing.T) {
	dir := t.TempDir()
	items := fixture(t, dir, "01_photo.jpg", "02_photo.jpg")

	// Each final name is currently held by the other file
	res := New(Options{TargetDir: dir}).Execute(context.Background(), []types.Item{items[1], items[0]})
	if !res.Success {
		t.Fatalf("Execute() failed: %v", res.Err)
	}
	assertContent(t, dir, map[string]string{
		"01_photo.jpg": "02_photo.jpg",
		"02_photo.jpg": "01_photo.jpg",
	})
}

func TestExecuteWithoutThumbnail(t *testing.T) {
	dir := t.TempDir()
	thumbs := filepath.Join(dir, "thumbs")
	items := fixture(t, dir, "a.jpg", "b.jpg")
	withThumb := withThumbs(t, thumbs, items[:1])

	seq := []types.Item{items[1], withThumb[0]}
	res := New(Options{TargetDir: dir, ThumbDir: thumbs}).Execute(context.Background(), seq)
	if !res.Success {
		t.Fatalf("Execute() failed: %v", res.Err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none for an item without thumbnail", res.Warnings)
	}
	assertContent(t, dir, map[string]string{"01_b.jpg": "b.jpg", "02_a.jpg": "a.jpg"})
	assertContent(t, thumbs, map[string]string{"02_a.jpg": "thumb:a.jpg"})
}

func TestExecuteMissingFile(t *testing.T) {
	dir := t.TempDir()
	items := fixture(t, dir, "a.jpg", "b.jpg", "c.jpg")
	if err := os.Remove(items[1].FullPath); err != nil {
		t.Fatal(err)
	}

	res := New(Options{TargetDir: dir}).Execute(context.Background(), items)
	if !res.Success {
		t.Fatalf("Execute() failed: %v", res.Err)
	}
	if res.Renamed != 2 {
		t.Errorf("Renamed = %d, want 2", res.Renamed)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", res.Warnings)
	}
	if !errors.Is(res.Warnings[0].Err, ErrMissingSource) {
		t.Errorf("warning error = %v, want ErrMissingSource", res.Warnings[0].Err)
	}
	byID := res.WarningsByID()
	if _, ok := byID[items[1].ID]; !ok || len(byID) != 1 {
		t.Errorf("WarningsByID() = %v, want a single entry for item %d", byID, items[1].ID)
	}

	// The missing item keeps its rank
	assertContent(t, dir, map[string]string{"01_a.jpg": "a.jpg", "03_c.jpg": "c.jpg"})
}

func TestExecuteMissingThumbnail(t *testing.T) {
	dir := t.TempDir()
	thumbs := filepath.Join(dir, "thumbs")
	items := withThumbs(t, thumbs, fixture(t, dir, "a.jpg", "b.jpg"))
	if err := os.Remove(items[0].ThumbPath); err != nil {
		t.Fatal(err)
	}

	res := New(Options{TargetDir: dir, ThumbDir: thumbs}).Execute(context.Background(), items)
	if !res.Success {
		t.Fatalf("Execute() failed: %v", res.Err)
	}
	if res.Renamed != 2 {
		t.Errorf("Renamed = %d, want 2", res.Renamed)
	}
	if got := res.WarningsByID(); len(got) != 1 || got[items[0].ID] == "" {
		t.Errorf("WarningsByID() = %v, want one warning for item %d", got, items[0].ID)
	}
	assertContent(t, thumbs, map[string]string{"02_b.jpg": "thumb:b.jpg"})
}

func TestExecuteCanceled(t *testing.T) {
	dir := t.TempDir()
	items := fixture(t, dir, "a.jpg", "b.jpg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New(Options{TargetDir: dir}).Execute(ctx, []types.Item{items[1], items[0]})
	if res.Success {
		t.Fatal("Execute() succeeded with a canceled context")
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", res.Err)
	}
	if res.Phase != PhaseInitial {
		t.Errorf("Phase = %s, want %s", res.Phase, PhaseInitial)
	}
	if res.Partial() {
		t.Error("Partial() = true, want false")
	}
	if _, err := os.Stat(filepath.Join(dir, DefaultBackupDir)); !os.IsNotExist(err) {
		t.Error("backup directory was created")
	}
	assertContent(t, dir, map[string]string{"a.jpg": "a.jpg", "b.jpg": "b.jpg"})
}

func TestExecuteTooManyItems(t *testing.T) {
	dir := t.TempDir()
	items := fixture(t, dir, "a.jpg", "b.jpg", "c.jpg")

	res := New(Options{TargetDir: dir, MaxItems: 2}).Execute(context.Background(), items)
	if !errors.Is(res.Err, ErrTooManyItems) {
		t.Fatalf("Err = %v, want ErrTooManyItems", res.Err)
	}
	if res.Success || res.Partial() {
		t.Errorf("Success, Partial = %v, %v, want false, false", res.Success, res.Partial())
	}
	assertContent(t, dir, map[string]string{"a.jpg": "a.jpg", "b.jpg": "b.jpg", "c.jpg": "c.jpg"})
}

func TestExecuteForeignOccupant(t *testing.T) {
	tests := []struct {
		name    string
		foreign string // relative to the target directory
		thumbs  bool
	}{
		{name: "full-resolution name", foreign: "02_b.jpg"},
		{name: "thumbnail name", foreign: filepath.Join("thumbs", "01_a.jpg"), thumbs: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			thumbs := filepath.Join(dir, "thumbs")
			items := fixture(t, dir, "a.jpg", "b.jpg")
			if tt.thumbs {
				items = withThumbs(t, thumbs, items)
			}

			// An excluded image already holds a final name
			foreign := filepath.Join(dir, tt.foreign)
			if err := os.WriteFile(foreign, []byte("foreign"), 0644); err != nil {
				t.Fatal(err)
			}
			before := content(t, dir)
			beforeThumbs := map[string]string{}
			if tt.thumbs {
				beforeThumbs = content(t, thumbs)
			}

			tx := New(Options{TargetDir: dir, ThumbDir: thumbs})
			if _, err := tx.Plan(items); !errors.Is(err, ErrNameCollision) {
				t.Errorf("Plan() error = %v, want ErrNameCollision", err)
			}

			res := tx.Execute(context.Background(), items)
			if res.Success || res.Partial() {
				t.Errorf("Success, Partial = %v, %v, want false, false", res.Success, res.Partial())
			}
			if !errors.Is(res.Err, ErrNameCollision) {
				t.Errorf("Err = %v, want ErrNameCollision", res.Err)
			}
			if res.Phase.Touched() {
				t.Errorf("Phase = %s, want a phase before any rename", res.Phase)
			}
			assertContent(t, dir, before)
			if tt.thumbs {
				assertContent(t, thumbs, beforeThumbs)
			}
			if readFile(t, foreign) != "foreign" {
				t.Error("foreign file was overwritten")
			}
			if _, err := os.Stat(res.ManifestPath); !os.IsNotExist(err) {
				t.Errorf("manifest written for a refused commit: %v", err)
			}
		})
	}
}

func TestExecuteOwnNamesAreNotOccupants(t *testing.T) {
	dir := t.TempDir()
	// 02_b.jpg is taken, but by an item of the sequence that moves away
	items := fixture(t, dir, "02_b.jpg", "a.jpg")

	res := New(Options{TargetDir: dir}).Execute(context.Background(), []types.Item{items[1], items[0]})
	if !res.Success {
		t.Fatalf("Execute() failed: %v", res.Err)
	}
	assertContent(t, dir, map[string]string{"01_a.jpg": "a.jpg", "02_b.jpg": "02_b.jpg"})
}

func TestFinalizeCollision(t *testing.T) {
	dir := t.TempDir()
	items := fixture(t, dir, "_tmp_x_0_a.jpg", "01_a.jpg")

	tx := New(Options{TargetDir: dir})
	var res Result
	moved, err := tx.rename(&res, PhaseFinalize, items[0], items[0].FullPath, items[1].FullPath)
	if moved {
		t.Error("rename() moved onto an existing file")
	}
	if !errors.Is(err, ErrNameCollision) {
		t.Errorf("rename() error = %v, want ErrNameCollision", err)
	}
	var txErr *TxError
	if !errors.As(err, &txErr) || txErr.Phase != PhaseFinalize || txErr.ItemID != items[0].ID {
		t.Errorf("rename() error = %#v, want a finalize *TxError for item %d", err, items[0].ID)
	}
	assertContent(t, dir, map[string]string{"_tmp_x_0_a.jpg": "_tmp_x_0_a.jpg", "01_a.jpg": "01_a.jpg"})
	if len(res.Moves) != 0 {
		t.Errorf("Moves = %v, want none", res.Moves)
	}
}

func TestExecuteDuplicateItems(t *testing.T) {
	dir := t.TempDir()
	items := fixture(t, dir, "a.jpg", "b.jpg")

	tests := []struct {
		name string
		seq  []types.Item
	}{
		{
			name: "same id",
			seq:  []types.Item{items[0], {ID: items[0].ID, FullPath: items[1].FullPath}},
		},
		{
			name: "same path",
			seq:  []types.Item{items[0], {ID: 9, FullPath: items[0].FullPath}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(Options{TargetDir: dir}).Execute(context.Background(), tt.seq)
			if !errors.Is(res.Err, ErrDuplicateItem) {
				t.Errorf("Err = %v, want ErrDuplicateItem", res.Err)
			}
			assertContent(t, dir, map[string]string{"a.jpg": "a.jpg", "b.jpg": "b.jpg"})
		})
	}
}

func TestExecuteEmpty(t *testing.T) {
	dir := t.TempDir()
	res := New(Options{TargetDir: dir}).Execute(context.Background(), nil)
	if !res.Success {
		t.Fatalf("Execute() failed: %v", res.Err)
	}
	if got := readFile(t, res.ManifestPath); got != "" {
		t.Errorf("manifest = %q, want empty", got)
	}
}

func TestPlan(t *testing.T) {
	dir := t.TempDir()
	thumbs := filepath.Join(dir, "thumbs")
	items := fixture(t, dir, "01_x.jpg", "y.jpg")
	items[1].ThumbPath = filepath.Join(thumbs, "y.jpg")

	steps, err := New(Options{TargetDir: dir}).Plan(items)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	want := []Step{
		{Rank: 1, Item: items[0], Dst: filepath.Join(dir, "01_x.jpg")},
		{Rank: 2, Item: items[1], Dst: filepath.Join(dir, "02_y.jpg"), ThumbDst: filepath.Join(thumbs, "02_y.jpg")},
	}
	if !slices.Equal(steps, want) {
		t.Errorf("Plan() = %+v, want %+v", steps, want)
	}
	if !steps[0].Unchanged() || steps[1].Unchanged() {
		t.Errorf("Unchanged() = %v, %v, want true, false", steps[0].Unchanged(), steps[1].Unchanged())
	}
	// Planning touches nothing
	assertContent(t, dir, map[string]string{"01_x.jpg": "01_x.jpg", "y.jpg": "y.jpg"})
}
