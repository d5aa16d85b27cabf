package sevenseg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/spi/spitest"
)

func openTestMAX7219(t *testing.T, cascaded int) (Device, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	c, err := NewSPIConn(spitest.NewRecordRaw(&buf), nil)
	require.NoError(t, err)
	d, err := MAX7219(c, &Config{Cascaded: cascaded})
	require.NoError(t, err)
	return d, &buf
}

// repeat returns the register pair repeated for every unit.
func repeat(cascaded int, register, value byte) []byte {
	return bytes.Repeat([]byte{register, value}, cascaded)
}

func expectedInit(cascaded int) []byte {
	var want []byte
	want = append(want, repeat(cascaded, 0x0b, 0x07)...)
	want = append(want, repeat(cascaded, 0x09, 0x00)...)
	want = append(want, repeat(cascaded, 0x0f, 0x00)...)
	for digit := byte(1); digit <= 8; digit++ {
		want = append(want, repeat(cascaded, digit, 0x00)...)
	}
	want = append(want, repeat(cascaded, 0x0a, 0x07)...)
	want = append(want, repeat(cascaded, 0x0c, 0x01)...)
	return want
}

func TestMAX7219Init(t *testing.T) {
	for _, cascaded := range []int{1, 2, 4} {
		t.Run("", func(it *testing.T) {
			d, buf := openTestMAX7219(it, cascaded)
			assert.Equal(it, expectedInit(cascaded), buf.Bytes())
			assert.Equal(it, cascaded*8, d.Width())
			assert.Equal(it, cascaded*8, d.Bounds().Dx())
			assert.Equal(it, 8, d.Bounds().Dy())
		})
	}
}

func TestMAX7219InvalidCascaded(t *testing.T) {
	var buf bytes.Buffer
	c, err := NewSPIConn(spitest.NewRecordRaw(&buf), nil)
	require.NoError(t, err)
	_, err = MAX7219(c, &Config{Cascaded: 0})
	assert.ErrorIs(t, err, ErrCascaded)
	assert.Zero(t, buf.Len())
}

func TestMAX7219Refresh(t *testing.T) {
	d, buf := openTestMAX7219(t, 1)
	buf.Reset()

	require.NoError(t, NewSevenSegment(d).SetText("AB"))
	want := []byte{
		0x01, 0x00,
		0x02, 0x00,
		0x03, 0x00,
		0x04, 0x00,
		0x05, 0x00,
		0x06, 0x00,
		0x07, 0x1f, // B
		0x08, 0x77, // A, leftmost cell
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestMAX7219RefreshCascaded(t *testing.T) {
	d, buf := openTestMAX7219(t, 2)
	buf.Reset()

	// Cell 0 on the left unit, cell 15 on the right unit.
	require.NoError(t, NewSevenSegment(d).SetText("1              2"))
	got := buf.Bytes()
	require.Len(t, got, 8*4)

	// Digit register 1 carries the rightmost cell of each unit.
	assert.Equal(t, []byte{0x01, 0x00, 0x01, 0x6d}, got[0:4])
	// Digit register 8 carries the leftmost cell of each unit.
	assert.Equal(t, []byte{0x08, 0x30, 0x08, 0x00}, got[28:32])
}

func TestMAX7219Contrast(t *testing.T) {
	tests := []struct {
		Level uint8
		Want  byte
	}{
		{0x00, 0x00},
		{0x0f, 0x00},
		{0x10, 0x01},
		{0x80, 0x08},
		{0xf0, 0x0f},
		{0xff, 0x0f},
	}
	for _, test := range tests {
		t.Run("", func(it *testing.T) {
			d, buf := openTestMAX7219(it, 1)
			buf.Reset()
			require.NoError(it, d.SetContrast(test.Level))
			assert.Equal(it, []byte{0x0a, test.Want}, buf.Bytes())
		})
	}
}

func TestMAX7219Close(t *testing.T) {
	d, buf := openTestMAX7219(t, 2)
	buf.Reset()

	require.NoError(t, d.Close())
	assert.Equal(t, repeat(2, 0x0c, 0x00), buf.Bytes())

	// Closing twice is harmless, writing after close is not.
	require.NoError(t, d.Close())
	assert.ErrorIs(t, d.Refresh(), ErrClosed)
}

func TestMAX7219Show(t *testing.T) {
	d, buf := openTestMAX7219(t, 1)
	buf.Reset()

	require.NoError(t, d.Show(false))
	require.NoError(t, d.Show(true))
	assert.Equal(t, []byte{0x0c, 0x00, 0x0c, 0x01}, buf.Bytes())
}

func TestMAX7219DebugLog(t *testing.T) {
	var (
		tx  bytes.Buffer
		out bytes.Buffer
	)
	logger := zerolog.New(&out)
	c, err := NewSPIConn(spitest.NewRecordRaw(&tx), nil)
	require.NoError(t, err)
	d, err := MAX7219(c, &Config{Cascaded: 2, Debug: true, Logger: &logger})
	require.NoError(t, err)

	// One line per frame sent during setup.
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, len(expectedInit(2))/4)
	assert.Contains(t, lines[0], `"message":"max7219: write"`)
	assert.Contains(t, lines[0], `"frame":"0b070b07"`)

	out.Reset()
	require.NoError(t, d.Show(false))
	assert.Contains(t, out.String(), `"frame":"0c000c00"`)
}

func TestMAX7219DebugLogOff(t *testing.T) {
	var (
		tx  bytes.Buffer
		out bytes.Buffer
	)
	logger := zerolog.New(&out)
	c, err := NewSPIConn(spitest.NewRecordRaw(&tx), nil)
	require.NoError(t, err)
	d, err := MAX7219(c, &Config{Cascaded: 1, Logger: &logger})
	require.NoError(t, err)
	require.NoError(t, d.Refresh())
	assert.NotZero(t, tx.Len())
	assert.Empty(t, out.String())
}
