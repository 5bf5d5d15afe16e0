package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/samcharles93/pngme/internal/sealed"
	"github.com/samcharles93/pngme/internal/stego"
	"github.com/samcharles93/pngme/pkg/png"
)

const testMessage = "This is where your secret message will be!"

func TestMain(m *testing.M) {
	sealed.WorkFactor = 10
	stdinIsTTY = func() bool { return false }
	os.Exit(m.Run())
}

// runApp runs the CLI with an isolated config path and returns stdout.
func runApp(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	if cfgPath == "" {
		cfgPath = filepath.Join(t.TempDir(), "missing.yaml")
	}
	var stdout, stderr bytes.Buffer
	argv := append([]string{"pngme", "--config", cfgPath}, args...)
	err := newApp(&stdout, &stderr).Run(context.Background(), argv)
	return stdout.String(), err
}

func writeTestPNG(t *testing.T) string {
	t.Helper()
	p := png.FromChunks([]*png.Chunk{
		png.NewChunk(png.ChunkTypeFromBytes([4]byte{'I', 'H', 'D', 'R'}), make([]byte, 13)),
		png.NewChunk(png.ChunkTypeFromBytes([4]byte{'I', 'E', 'N', 'D'}), nil),
	})
	path := filepath.Join(t.TempDir(), "in.png")
	if err := os.WriteFile(path, p.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
	return path
}

func TestEncodeDecodeRemove(t *testing.T) {
	t.Parallel()

	path := writeTestPNG(t)
	out, err := runApp(t, "", "encode", path, "RuSt", testMessage)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if out != "Chunk written successfully.\n" {
		t.Fatalf("encode output: got %q", out)
	}

	out, err = runApp(t, "", "decode", path, "RuSt")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, want := range []string{"Chunk : Chunk {", "Length: 42", "Crc: 2882656334", "Chunk data : " + testMessage} {
		if !strings.Contains(out, want) {
			t.Fatalf("decode output missing %q:\n%s", want, out)
		}
	}

	out, err = runApp(t, "", "remove", path, "RuSt")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !strings.HasPrefix(out, "Removed chunk: Chunk {") {
		t.Fatalf("remove output: got %q", out)
	}

	if _, err := runApp(t, "", "decode", path, "RuSt"); !errors.Is(err, png.ErrChunkNotFound) {
		t.Fatalf("decode after remove: expected ErrChunkNotFound, got %v", err)
	}
}

func TestEncodeToOutputPath(t *testing.T) {
	t.Parallel()

	in := writeTestPNG(t)
	before, err := os.ReadFile(in)
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	outPath := filepath.Join(t.TempDir(), "out.png")
	if _, err := runApp(t, "", "encode", in, "RuSt", "hi", outPath); err != nil {
		t.Fatalf("encode: %v", err)
	}

	after, err := os.ReadFile(in)
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("input file must be untouched when an output path is given")
	}
	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	p, err := png.Parse(raw)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if c := p.ChunkByType("RuSt"); c == nil || string(c.Data()) != "hi" {
		t.Fatalf("expected RuSt chunk in output")
	}
}

func TestChunkTypeCheckedBeforeIO(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.png")
	tests := []struct {
		args []string
		want error
	}{
		{[]string{"encode", missing, "Ru", "msg"}, png.ErrChunkTypeLength},
		{[]string{"encode", missing, "Ru1t", "msg"}, png.ErrIllegalCharacter},
		{[]string{"decode", missing, "Rust"}, png.ErrInvalidChunkType},
		{[]string{"remove", missing, "RuStX"}, png.ErrChunkTypeLength},
		{[]string{"decode", missing}, errNoChunkType},
	}
	for _, tc := range tests {
		_, err := runApp(t, "", tc.args...)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%v: expected %v, got %v", tc.args, tc.want, err)
		}
	}
}

func TestArgumentCount(t *testing.T) {
	t.Parallel()

	path := writeTestPNG(t)
	for _, args := range [][]string{
		{"encode", path, "RuSt"},
		{"encode", path, "RuSt", "m", "out", "extra"},
		{"decode"},
		{"print"},
		{"print", path, path},
	} {
		if _, err := runApp(t, "", args...); err == nil {
			t.Fatalf("%v: expected usage error", args)
		}
	}
}

func TestDecodeUsesConfigChunkType(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("chunk_type: ruSt\nlog_level: error\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	path := writeTestPNG(t)
	if _, err := runApp(t, cfgPath, "encode", path, "ruSt", "from config"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := runApp(t, cfgPath, "decode", path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, "Chunk data : from config") {
		t.Fatalf("decode output: %s", out)
	}
	if _, err := runApp(t, cfgPath, "remove", path); err != nil {
		t.Fatalf("remove: %v", err)
	}
}

func TestDecodeNonUTF8(t *testing.T) {
	t.Parallel()

	path := writeTestPNG(t)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	p, err := png.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p.AppendChunk(png.NewChunk(png.ChunkTypeFromBytes([4]byte{'R', 'u', 'S', 't'}), []byte{0xff, 0xfe}))
	if err := os.WriteFile(path, p.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := runApp(t, "", "decode", path, "RuSt")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, "Chunk data : "+stego.NonUTF8Text) {
		t.Fatalf("expected placeholder text, got:\n%s", out)
	}
}

func TestDecodeAllJSON(t *testing.T) {
	t.Parallel()

	path := writeTestPNG(t)
	for _, msg := range []string{"one", "two"} {
		if _, err := runApp(t, "", "encode", path, "RuSt", msg); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	out, err := runApp(t, "", "decode", "--all", "--json", path, "RuSt")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var msgs []stego.Message
	if err := json.Unmarshal([]byte(out), &msgs); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if len(msgs) != 2 || msgs[0].Text != "one" || msgs[1].Text != "two" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()

	path := writeTestPNG(t)
	out, err := runApp(t, "", "print", path)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if strings.Count(out, "Chunk {") != 2 || !strings.Contains(out, "Type: IHDR") || !strings.Contains(out, "Type: IEND") {
		t.Fatalf("unexpected print output:\n%s", out)
	}

	out, err = runApp(t, "", "print", "--json", path)
	if err != nil {
		t.Fatalf("print --json: %v", err)
	}
	var s stego.Summary
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(s.Chunks) != 2 || s.Chunks[0].Type != "IHDR" || s.Size != 8+25+12 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestPrintCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := runApp(t, "", "print", path); !errors.Is(err, png.ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "version:") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestUnknownLogFormat(t *testing.T) {
	t.Parallel()

	if _, err := runApp(t, "", "--log-format", "xml", "version"); err == nil {
		t.Fatalf("expected error for unknown log format")
	}
}

// Sealing reads PNGME_PASSPHRASE, so this test cannot run in parallel.
func TestEncodeSealed(t *testing.T) {
	path := writeTestPNG(t)

	t.Setenv(envPassphrase, "")
	if _, err := runApp(t, "", "encode", "--seal", path, "RuSt", "secret"); err == nil {
		t.Fatalf("expected error sealing without a passphrase")
	}

	t.Setenv(envPassphrase, "hunter2")
	if _, err := runApp(t, "", "encode", "--seal", path, "RuSt", "secret"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if bytes.Contains(raw, []byte("secret")) {
		t.Fatalf("sealed file leaks plaintext")
	}

	out, err := runApp(t, "", "decode", path, "RuSt")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, "Chunk data : secret") {
		t.Fatalf("decode output: %s", out)
	}

	t.Setenv(envPassphrase, "wrong")
	if _, err := runApp(t, "", "decode", path, "RuSt"); !errors.Is(err, sealed.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}

	t.Setenv(envPassphrase, "")
	if _, err := runApp(t, "", "decode", path, "RuSt"); !errors.Is(err, stego.ErrSealed) {
		t.Fatalf("expected ErrSealed, got %v", err)
	}
}
