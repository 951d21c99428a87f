package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/dendrascience/huffarc/archive"
	"github.com/dendrascience/huffarc/parallel"
)

func TestCompressedPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"file.txt", "file.txt.huff"},
		{"dir/", "dir.huff"},
		{"/tmp/data", "/tmp/data.huff"},
	}
	for _, tt := range tests {
		if got := compressedPath(tt.in); got != tt.want {
			t.Errorf("compressedPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRestoredPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"file.txt.huff", "file.txt"},
		{"/tmp/data.huff", "/tmp/data"},
		{"data.huff/", "data"},
		{"plain", "plain_restored"},
		{".huff", ".huff_restored"},
		{"dir/.huff", "dir/.huff_restored"},
	}
	for _, tt := range tests {
		if got := restoredPath(tt.in); got != tt.want {
			t.Errorf("restoredPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSameDir(t *testing.T) {
	tests := []struct {
		name     string
		path1    string
		path2    string
		expected bool
	}{
		{"identical paths", "/tmp/storage", "/tmp/storage", true},
		{"trailing slash", "/tmp/storage/", "/tmp/storage", true},
		{"parent and child", "/tmp/storage", "/tmp/storage/data", false},
		{"sibling directories", "/tmp/storage", "/tmp/mount", false},
		{"relative paths - same", "storage", "./storage", true},
		{"relative paths - separate", "storage", "mount", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sameDir(tt.path1, tt.path2)
			if result != tt.expected {
				t.Errorf("sameDir(%q, %q) = %v, expected %v", tt.path1, tt.path2, result, tt.expected)
			}
		})
	}
}

func TestRootCmdSubcommands(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
		if c.Name() == "worker" && !c.Hidden {
			t.Error("worker subcommand is not hidden")
		}
	}
	for _, want := range []string{"compress", "decompress", "pack", "unpack", "list", "verify", "seed", "version", "worker"} {
		if !slices.Contains(names, want) {
			t.Errorf("root command is missing %q (have %v)", want, names)
		}
	}
}

func writeSource(t *testing.T) (string, map[string]string) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"alpha.txt": "alpha alpha alpha beta",
		"empty":     "",
		"one":       "1",
		"prose.md":  strings.Repeat("it was the best of times, it was the worst of times\n", 40),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir, files
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCompressDecompressCommands(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(src, []byte("hello hello hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "compress", src)
	if err != nil {
		t.Fatalf("compress error = %v", err)
	}
	if !strings.Contains(out, "note.txt.huff") {
		t.Errorf("compress output = %q, want it to name the output file", out)
	}

	restored := filepath.Join(dir, "restored.txt")
	if _, err := execute(t, "decompress", src+".huff", "-o", restored); err != nil {
		t.Fatalf("decompress error = %v", err)
	}
	got, err := os.ReadFile(restored)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello hello hello" {
		t.Errorf("decompressed = %q, want %q", got, "hello hello hello")
	}
}

func TestPackListVerifyUnpack(t *testing.T) {
	src, files := writeSource(t)
	arc := filepath.Join(t.TempDir(), "src.huff")

	out, err := execute(t, "pack", src, "-o", arc, "--strategy", "serial", "--tmp", t.TempDir())
	if err != nil {
		t.Fatalf("pack error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Packed 4 files") {
		t.Errorf("pack output = %q, want %q", out, "Packed 4 files")
	}

	out, err = execute(t, "list", arc, "--json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var infos []archive.Info
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("list --json output is not JSON: %v\n%s", err, out)
	}
	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
		if want := int64(len(files[info.Name])); info.Symbols != want {
			t.Errorf("list: %s declares %d symbols, want %d", info.Name, info.Symbols, want)
		}
	}
	if want := []string{"alpha.txt", "empty", "one", "prose.md"}; !slices.Equal(names, want) {
		t.Errorf("list names = %v, want %v", names, want)
	}

	report := filepath.Join(t.TempDir(), "report.json")
	if out, err := execute(t, "verify", arc, "--source", src, "--report", report); err != nil {
		t.Fatalf("verify error = %v\n%s", err, out)
	}
	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("verify did not write its report: %v", err)
	}
	var res verifyResult
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if len(res.Entries) != 4 || len(res.Problems) != 0 {
		t.Errorf("report = %d entries and problems %v, want 4 entries and none", len(res.Entries), res.Problems)
	}

	dst := filepath.Join(t.TempDir(), "out")
	if out, err := execute(t, "unpack", arc, "-o", dst, "--strategy", "threads", "--workers", "2"); err != nil {
		t.Fatalf("unpack error = %v\n%s", err, out)
	}
	for name, content := range files {
		got, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Errorf("unpack did not restore %s: %v", name, err)
			continue
		}
		if string(got) != content {
			t.Errorf("%s restored as %d bytes, want %d", name, len(got), len(content))
		}
	}
}

func TestVerifyDetectsSourceDrift(t *testing.T) {
	src, _ := writeSource(t)
	arc := filepath.Join(t.TempDir(), "src.huff")
	if err := runPack(&bytes.Buffer{}, src, arc, parallel.Options{Strategy: parallel.Serial}); err != nil {
		t.Fatal(err)
	}

	os.WriteFile(filepath.Join(src, "one"), []byte("2"), 0o644)
	os.WriteFile(filepath.Join(src, "new"), []byte("added later"), 0o644)

	var out bytes.Buffer
	err := runVerify(&out, arc, verifyOptions{source: src})
	if !errors.Is(err, ErrVerifyFailed) {
		t.Fatalf("runVerify() error = %v, want ErrVerifyFailed", err)
	}
	for _, want := range []string{"one: content differs", "new: missing from archive"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("runVerify() output missing %q:\n%s", want, out.String())
		}
	}
}

func TestVerifyCorruptArchive(t *testing.T) {
	src, _ := writeSource(t)
	arc := filepath.Join(t.TempDir(), "src.huff")
	if err := runPack(&bytes.Buffer{}, src, arc, parallel.Options{Strategy: parallel.Serial}); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(arc)
	os.WriteFile(arc, data[:len(data)-3], 0o644)

	err := runVerify(&bytes.Buffer{}, arc, verifyOptions{})
	if !errors.Is(err, archive.ErrCorruptArchive) {
		t.Errorf("runVerify() error = %v, want ErrCorruptArchive", err)
	}
}

func TestPackUnknownStrategy(t *testing.T) {
	src, _ := writeSource(t)
	_, err := execute(t, "pack", src, "-o", filepath.Join(t.TempDir(), "a.huff"), "--strategy", "forks")
	if !errors.Is(err, parallel.ErrUnknownStrategy) {
		t.Errorf("pack --strategy forks error = %v, want ErrUnknownStrategy", err)
	}
}

func TestRunSeed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "corpus")
	if err := runSeed(&bytes.Buffer{}, dir, 25, 2048, false); err != nil {
		t.Fatalf("runSeed() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 25 {
		t.Fatalf("runSeed() created %d files, want 25", len(entries))
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() > 2048 {
			t.Errorf("%s is %d bytes, want at most 2048", e.Name(), info.Size())
		}
	}

	arc := filepath.Join(t.TempDir(), "corpus.huff")
	if err := runPack(&bytes.Buffer{}, dir, arc, parallel.Options{Strategy: parallel.Threads}); err != nil {
		t.Fatalf("runPack() over seeded corpus error = %v", err)
	}
	if err := runVerify(&bytes.Buffer{}, arc, verifyOptions{source: dir}); err != nil {
		t.Errorf("runVerify() over seeded corpus error = %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	var out bytes.Buffer
	if err := runVersion(&out, true); err != nil {
		t.Fatal(err)
	}
	var info struct {
		Package string `json:"package"`
	}
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("version --json output is not JSON: %v", err)
	}
	if info.Package != "huffarc" {
		t.Errorf("package = %q, want %q", info.Package, "huffarc")
	}
}
