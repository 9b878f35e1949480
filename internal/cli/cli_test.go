package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugorji/go/codec"
)

// resetFlags restores every flag to its default so commands can run
// repeatedly within one test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "binkit version 0.1.0-dev")
	assert.Contains(t, out, "zstd")
}

// eocdData has the end of central directory signature at 0x10 and 0x30.
func eocdData() []byte {
	data := make([]byte, 0x40)
	copy(data[0x10:], []byte{'P', 'K', 0x05, 0x06})
	copy(data[0x30:], []byte{'P', 'K', 0x05, 0x06})
	return data
}

func TestScan(t *testing.T) {
	path := writeTemp(t, "a.zip", eocdData())
	empty := writeTemp(t, "empty.bin", make([]byte, 32))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"first", []string{"scan", "0x06054b50", path}, path + "\t0x10\n"},
		{"all", []string{"scan", "--all", "0x06054b50", path}, path + "\t0x10\n" + path + "\t0x30\n"},
		{"big endian", []string{"scan", "-e", "be", "0x504b0506", path}, path + "\t0x10\n"},
		{"skip", []string{"scan", "--skip", "0x11", "0x06054b50", path}, path + "\t0x30\n"},
		{"limit", []string{"scan", "--limit", "0x10", "0x06054b50", path}, path + "\tnot found\n"},
		{"several files", []string{"scan", "0x06054b50", empty, path}, empty + "\tnot found\n" + path + "\t0x10\n"},
		{"64 bit", []string{"scan", "--width", "64", "-e", "be", "0x504b050600000000", path}, path + "\t0x10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestScanErrors(t *testing.T) {
	path := writeTemp(t, "a.zip", eocdData())

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"width", []string{"scan", "--width", "16", "0x4b50", path}, "width must be 32 or 64"},
		{"too wide", []string{"scan", "0x1_0000_0000", path}, "does not fit in 32 bits"},
		{"bad signature", []string{"scan", "zip", path}, "invalid signature"},
		{"missing file", []string{"scan", "0x06054b50", filepath.Join(t.TempDir(), "nope")}, "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

const headerLayout = `
endian = "le"

[[fields]]
name = "magic"
type = "predicate"
width = 4
predicate = { kind = "equals", value = 0x464C457F }

[[fields]]
name = "class"
type = "u8"

[[fields]]
name = "flagged"
type = "predicate"
width = 1
predicate = { kind = "func", name = "nonzero" }

[[fields]]
type = "padding"
len = 2

[[fields]]
name = "kind"
type = "u16"
`

func headerRecord(class, flag, kind byte) []byte {
	return []byte{0x7f, 'E', 'L', 'F', class, flag, 0, 0, kind, 0}
}

func TestDecode(t *testing.T) {
	layout := writeTemp(t, "header.toml", []byte(headerLayout))
	data := append(headerRecord(2, 0, 3), headerRecord(1, 9, 2)...)
	path := writeTemp(t, "data.bin", data)

	out, err := execute(t, "decode", "--layout", layout, path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"magic":true,"class":2,"flagged":false,"kind":3}`, strings.TrimSpace(out))
	assert.Less(t, strings.Index(out, "magic"), strings.Index(out, "class"))
	assert.Less(t, strings.Index(out, "flagged"), strings.Index(out, "kind"))

	out, err = execute(t, "decode", "--layout", layout, "--offset", "10", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"magic":true,"class":1,"flagged":true,"kind":2}`, strings.TrimSpace(out))

	out, err = execute(t, "decode", "--layout", layout, "--count", "0", path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestDecodeMsgpack(t *testing.T) {
	layout := writeTemp(t, "header.toml", []byte(headerLayout))
	path := writeTemp(t, "data.bin", headerRecord(2, 1, 3))

	out, err := execute(t, "decode", "-l", layout, "-f", "msgpack", path)
	require.NoError(t, err)

	var records []map[string]any
	var h codec.MsgpackHandle
	require.NoError(t, codec.NewDecoderBytes([]byte(out), &h).Decode(&records))
	require.Len(t, records, 1)
	assert.EqualValues(t, 2, records[0]["class"])
	assert.Equal(t, true, records[0]["flagged"])
}

func TestDecodeErrors(t *testing.T) {
	layout := writeTemp(t, "header.toml", []byte(headerLayout))
	short := writeTemp(t, "short.bin", []byte{0x7f, 'E'})

	_, err := execute(t, "decode", "--layout", layout, short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 0")

	_, err = execute(t, "decode", short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout")

	unknownFunc := writeTemp(t, "bad.toml", []byte(strings.ReplaceAll(headerLayout, "nonzero", "prime")))
	_, err = execute(t, "decode", "--layout", unknownFunc, short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prime")
}

func TestDescribe(t *testing.T) {
	layout := writeTemp(t, "header.toml", []byte(headerLayout))

	out, err := execute(t, "describe", layout)
	require.NoError(t, err)
	assert.Contains(t, out, `"endian"`)
	assert.Contains(t, out, `"nonzero"`)
	assert.Contains(t, out, "required bytes: 10")
}

func TestVarint(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"varint", "encode", "300"}, "ac02\n"},
		{[]string{"varint", "encode", "0"}, "00\n"},
		{[]string{"varint", "encode", "--width", "16", "0xffff"}, "ffff03\n"},
		{[]string{"varint", "encode", "--width", "128", "128"}, "8001\n"},
		{[]string{"varint", "decode", "ac02"}, "300 (2 bytes)\n"},
		{[]string{"varint", "decode", "--width", "8", "0xff01"}, "255 (2 bytes)\n"},
		{[]string{"varint", "decode", "--width", "128", strings.Repeat("ff", 18) + "03"}, "340282366920938463463374607431768211455 (19 bytes)\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestVarintErrors(t *testing.T) {
	_, err := execute(t, "varint", "encode", "--width", "8", "256")
	assert.Error(t, err)

	_, err = execute(t, "varint", "encode", "--width", "24", "1")
	assert.Error(t, err)

	_, err = execute(t, "varint", "decode", "80")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad varint")

	_, err = execute(t, "varint", "decode", "--width", "8", "ff03")
	assert.Error(t, err)

	_, err = execute(t, "varint", "decode", "zz")
	assert.Error(t, err)
}

func TestFrameRoundTrip(t *testing.T) {
	text := bytes.Repeat([]byte("binary formats all the way down\n"), 64)
	tiny := []byte{1, 2, 3}
	a := writeTemp(t, "a.txt", text)
	b := writeTemp(t, "b.bin", tiny)
	bundle := filepath.Join(t.TempDir(), "bundle.bin")

	for _, algo := range []string{"none", "lz4", "zstd"} {
		t.Run(algo, func(t *testing.T) {
			out, err := execute(t, "frame", "pack", "-o", bundle, "--compress", algo, "--width", "16", a, b)
			require.NoError(t, err)
			assert.Contains(t, out, "wrote 2 frames")

			out, err = execute(t, "frame", "unpack", "--width", "16", bundle)
			require.NoError(t, err)
			assert.Equal(t, "0\t2048\n1\t3\n", out)

			dir := filepath.Join(t.TempDir(), "out")
			_, err = execute(t, "frame", "unpack", "--width", "16", "-o", dir, bundle)
			require.NoError(t, err)

			got, err := os.ReadFile(filepath.Join(dir, "frame-000.bin"))
			require.NoError(t, err)
			assert.Equal(t, text, got)
			got, err = os.ReadFile(filepath.Join(dir, "frame-001.bin"))
			require.NoError(t, err)
			assert.Equal(t, tiny, got)
		})
	}
}

func TestFrameErrors(t *testing.T) {
	a := writeTemp(t, "a.txt", []byte("payload"))
	bundle := filepath.Join(t.TempDir(), "bundle.bin")

	_, err := execute(t, "frame", "pack", "-o", bundle, "--compress", "brotli", a)
	assert.Error(t, err)

	_, err = execute(t, "frame", "pack", "-o", bundle, "--width", "12", a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width must be")

	big := writeTemp(t, "big.bin", make([]byte, 300))
	_, err = execute(t, "frame", "pack", "-o", bundle, "--width", "8", big)
	assert.Error(t, err)

	truncated := writeTemp(t, "truncated.bin", []byte{0, 10, 0, 0, 0})
	_, err = execute(t, "frame", "unpack", truncated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame 0")
}

func TestMapWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bin")

	out, err := execute(t, "map", "write", path, "zeta=1", "alpha=0x10", "neg=-2")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 entries")

	out, err = execute(t, "map", "read", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zeta":1,"alpha":16,"neg":18446744073709551614}`, strings.TrimSpace(out))
	assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"))

	_, err = execute(t, "map", "write", path, "novalue")
	assert.Error(t, err)

	_, err = execute(t, "map", "write", path, strings.Repeat("k", 257)+"=1")
	assert.Error(t, err)
}

func TestCString(t *testing.T) {
	path := writeTemp(t, "strings.bin", []byte("xxhello\x00world\x00"))

	out, err := execute(t, "cstr", "--offset", "2", "--count", "2", path)
	require.NoError(t, err)
	assert.Equal(t, "\"hello\"\n\"world\"\n", out)

	_, err = execute(t, "cstr", "--offset", "2", "--max-len", "3", path)
	assert.Error(t, err)
}

func TestConfigFileDefaults(t *testing.T) {
	conf := writeTemp(t, "binkit.toml", []byte("endian = \"be\"\n[scan]\nwidth = 64\n"))
	data := make([]byte, 24)
	copy(data[8:], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	path := writeTemp(t, "img.png", data)

	out, err := execute(t, "--conf", conf, "scan", "0x89504e470d0a1a0a", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\t0x8\n", out)

	bad := writeTemp(t, "bad.toml", []byte("[scan]\nwidth = 7\n"))
	_, err = execute(t, "--conf", bad, "version")
	assert.Error(t, err)
}

func TestScanCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	path := writeTemp(t, "a.zip", eocdData())

	out, err := execute(t, "scan", "--cache", dir, "--all", "0x06054b50", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\t0x10\n"+path+"\t0x30\n", out)

	// Served from the cache the second time.
	out, err = execute(t, "--debug", "scan", "--cache", dir, "--all", "0x06054b50", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\t0x10\n"+path+"\t0x30\n", out)

	out, err = execute(t, "scan", "--cache", dir, "0x06054b50", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\t0x10\n", out)

	out, err = execute(t, "cache", "forget", "--cache", dir, path)
	require.NoError(t, err)
	assert.Equal(t, path+"\t2 entries removed\n", out)

	_, err = execute(t, "cache", "forget", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cache directory")
}
