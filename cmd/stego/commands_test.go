package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/logicossoftware/go-stego"
)

func makeBMP(width, height int) []byte {
	rowSize := (width*3 + 3) &^ 3
	buf := make([]byte, 54+rowSize*height)
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[10:14], 54)
	binary.LittleEndian.PutUint32(buf[18:22], uint32(width))
	binary.LittleEndian.PutUint32(buf[22:26], uint32(height))
	return buf
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeDecodeCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.bmp")
	if err := os.WriteFile(path, makeBMP(8, 8), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "encode", path, "-m", "hello", "-k", "pw"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "decode", path, "-k", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Fatalf("got %q", out)
	}
	out, err = run(t, "dims", path)
	if err != nil || strings.TrimSpace(out) != "8 x 8" {
		t.Fatalf("dims %q, %v", out, err)
	}
}

func TestCheckCommandCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.bmp")
	if err := os.WriteFile(path, makeBMP(4, 6), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "check", path, "-m", "12345"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "check", path, "-m", "123456"); !errors.Is(err, stego.ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
}

func TestConfigAndCompressionFlags(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "stego.yaml")
	if err := os.WriteFile(cfg, []byte("key: from-config\ncompression: zstd\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "cover.bmp")
	if err := os.WriteFile(path, makeBMP(32, 32), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "encode", path, "-c", cfg, "-m", "compressed"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "decode", path, "-c", cfg)
	if err != nil || strings.TrimSpace(out) != "compressed" {
		t.Fatalf("got %q, %v", out, err)
	}
	if _, err := run(t, "decode", path, "-c", cfg, "--compression", "lz4"); !errors.Is(err, stego.ErrCorruption) {
		t.Fatalf("expected ErrCorruption for codec mismatch, got %v", err)
	}
}

func TestInfoCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.bmp")
	if err := os.WriteFile(path, makeBMP(4, 6), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "info", path)
	if err != nil {
		t.Fatal(err)
	}
	var r infoReport
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("%v: %s", err, out)
	}
	if r.Format != "BMP" || r.Width != 4 || r.Height != 6 || r.CapacityBits != 40 {
		t.Fatalf("got %+v", r)
	}
}

func TestReadMessage(t *testing.T) {
	if _, err := readMessage("a", "b"); err == nil {
		t.Fatal("expected error")
	}
	if m, err := readMessage("x", ""); err != nil || string(m) != "x" {
		t.Fatalf("got %q, %v", m, err)
	}
}
