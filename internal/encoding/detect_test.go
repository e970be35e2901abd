package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/aapnaincom/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader(t *testing.T) {
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("Narration,Amount\nचाय,₹20\n")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "UTF8Passthrough",
			input: []byte("Narration,Amount\nचाय,₹20\n"),
			want:  "Narration,Amount\nचाय,₹20\n",
		},
		{
			name:  "UTF8BOMStripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, "Date,Amount\n"...),
			want:  "Date,Amount\n",
		},
		{
			name:  "UTF16LE",
			input: []byte(utf16),
			want:  "Narration,Amount\nचाय,₹20\n",
		},
		{
			// Windows-1252 "Café;12\n": é is 0xE9.
			name:  "Windows1252",
			input: []byte{'C', 'a', 'f', 0xE9, ';', '1', '2', '\n'},
			want:  "Café;12\n",
		},
		{
			name:  "Empty",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decode(t, tt.input))
		})
	}
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	line := "01/03/24,UPI-SWIGGY,1250.00\n"
	input := bytes.Repeat([]byte(line), 500)

	assert.Equal(t, string(input), decode(t, input))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, encoding.UTF8, encoding.Detect([]byte("plain ascii")))
	assert.Equal(t, encoding.UTF8BOM, encoding.Detect([]byte{0xEF, 0xBB, 0xBF, 'a'}))
	assert.Equal(t, encoding.UTF16LE, encoding.Detect([]byte{0xFF, 0xFE, 'a', 0}))
	assert.Equal(t, encoding.UTF16BE, encoding.Detect([]byte{0xFE, 0xFF, 0, 'a'}))
}
