package validation

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFileExtension(t *testing.T) {
	assert.NoError(t, ValidateFileExtension("statement.xlsx"))
	assert.NoError(t, ValidateFileExtension("STATEMENT.XLS"))
	assert.Error(t, ValidateFileExtension("statement.csv"))
	assert.Error(t, ValidateFileExtension("statement"))
	assert.Error(t, ValidateFileExtension("statement.xlsx.exe"))
}

func TestValidateFileSize(t *testing.T) {
	const max = 10 * 1024 * 1024
	assert.NoError(t, ValidateFileSize(1024, max))
	assert.NoError(t, ValidateFileSize(max, max))
	assert.Error(t, ValidateFileSize(max+1, max))
	assert.Error(t, ValidateFileSize(0, max))
}

func TestValidateClientContentType(t *testing.T) {
	assert.NoError(t, ValidateClientContentType(MimeXLSX))
	assert.NoError(t, ValidateClientContentType(MimeXLS))
	assert.NoError(t, ValidateClientContentType("application/octet-stream"))
	assert.NoError(t, ValidateClientContentType(""))
	assert.Error(t, ValidateClientContentType("text/html"))
}

func TestValidateFileContentByMagicBytes(t *testing.T) {
	t.Run("zip container is xlsx", func(t *testing.T) {
		r := bytes.NewReader(append([]byte{0x50, 0x4B, 0x03, 0x04}, make([]byte, 16)...))
		mime, err := ValidateFileContentByMagicBytes(r)
		require.NoError(t, err)
		assert.Equal(t, MimeXLSX, mime)

		// The reader must be rewound for the parser.
		head := make([]byte, 2)
		_, readErr := r.Read(head)
		require.NoError(t, readErr)
		assert.Equal(t, []byte{0x50, 0x4B}, head)
	})

	t.Run("ole2 document is xls", func(t *testing.T) {
		r := bytes.NewReader(append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 16)...))
		mime, err := ValidateFileContentByMagicBytes(r)
		require.NoError(t, err)
		assert.Equal(t, MimeXLS, mime)
	})

	t.Run("plain text rejected", func(t *testing.T) {
		_, err := ValidateFileContentByMagicBytes(bytes.NewReader([]byte("date,amount\n")))
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("empty file rejected", func(t *testing.T) {
		_, err := ValidateFileContentByMagicBytes(bytes.NewReader(nil))
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}

func TestValidateDateString(t *testing.T) {
	got, err := ValidateDateString("15/03/2024", "from")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ValidateDateString("2024-03-15", "from")
	assert.Error(t, err)

	_, err = ValidateDateString("31/02/2024", "from")
	assert.Error(t, err)
}

func TestValidateFloatString(t *testing.T) {
	got, err := ValidateFloatString("12.5", "min_amount", false, 0, 1e9)
	require.NoError(t, err)
	assert.Equal(t, 12.5, got)

	got, err = ValidateFloatString("", "min_amount", false, 0, 1e9)
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = ValidateFloatString("-1", "min_amount", false, 0, 1e9)
	assert.Error(t, err)

	_, err = ValidateFloatString("abc", "min_amount", false, 0, 1e9)
	assert.Error(t, err)
}

func TestValidateISIN(t *testing.T) {
	assert.NoError(t, ValidateISIN("US1667641005"))
	assert.NoError(t, ValidateISIN(""))
	assert.Error(t, ValidateISIN("1234"))
	assert.Error(t, ValidateISIN("us1667641005"))
}

func TestCleanCellText(t *testing.T) {
	assert.Equal(t, "Chevron", CleanCellText("  Chevron\x00 "))
	assert.Equal(t, "AT&T Inc", CleanCellText("AT&T Inc"))
	assert.Equal(t, "", CleanCellText("\x01\x02"))
}
