package outwriter

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(1)
	assert.Equal(t, "85.2", fmtFloat(85.23))
	assert.Equal(t, "%d", intFmt)

	fmtFloat, _ = createFormatters(2)
	assert.Equal(t, "85.23", fmtFloat(85.23))
}

func TestFmtSigned(t *testing.T) {
	assert.Equal(t, "+0.7", fmtSigned(0.7, 1))
	assert.Equal(t, "-5.0", fmtSigned(-5.0, 1))
	assert.Equal(t, "+0.0", fmtSigned(0.0, 1))
}

func TestStatusDisplay(t *testing.T) {
	cfg := &contract.Config{}

	// Plain output without emojis or colors
	assert.Equal(t, "Pass", statusDisplay(schema.PassStatus, cfg))
	assert.Equal(t, "Warn", statusDisplay(schema.WarnStatus, cfg))
	assert.Equal(t, "Fail", statusDisplay(schema.FailStatus, cfg))

	// Emojis prefix the label
	cfg.UseEmojis = true
	assert.Contains(t, statusDisplay(schema.PassStatus, cfg), "✅")
	assert.Contains(t, statusDisplay(schema.WarnStatus, cfg), "⚠️")
	assert.Contains(t, statusDisplay(schema.FailStatus, cfg), "❌")
}

func TestModeDisplay(t *testing.T) {
	assert.Equal(t, "FULL", modeDisplay(schema.FullMode))
	assert.Equal(t, "SKIP", modeDisplay(schema.SkipMode))
	assert.Equal(t, "INFORMATIONAL", modeDisplay(schema.InformationalMode))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a": 1}`, buf.String())
}

func TestWriteWithFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "out.txt")

	err := writeWithFile(outputFile, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}, "Wrote test")
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestGetMaxTablePathWidth(t *testing.T) {
	// Narrow terminal clamps to the minimum
	cfg := &contract.Config{Width: 20}
	assert.Equal(t, 15, getMaxTablePathWidth(cfg))

	// Wide terminal clamps to the maximum
	cfg = &contract.Config{Width: 300}
	assert.Equal(t, 70, getMaxTablePathWidth(cfg))

	// Mid-range terminal uses available space
	cfg = &contract.Config{Width: 80}
	assert.Equal(t, 50, getMaxTablePathWidth(cfg))
}
