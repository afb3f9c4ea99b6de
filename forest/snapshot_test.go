package forest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skdict/skdict/dict"
	"github.com/skdict/skdict/errs"
	"github.com/skdict/skdict/format"
)

func snapshotTestForest(t *testing.T) *Forest[string] {
	t.Helper()

	return buildStringForest(t, [][]string{
		{"alpha", "beta", "gamma"},
		{"kappa", "lambda"},
		{"omega", "sigma", "tau", "zeta"},
	}, 5)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	original := snapshotTestForest(t)

	for _, compression := range compressions {
		t.Run(compression.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, original.WriteSnapshot(&buf, compression))

			restored, err := ReadSnapshot[string](&buf)
			require.NoError(t, err)

			require.True(t, original.Equal(restored))
			for id := original.MinID(); id <= original.MaxID(); id++ {
				want, err := original.ValueOf(id)
				require.NoError(t, err)

				got, err := restored.ValueOf(id)
				require.NoError(t, err)
				require.Equal(t, want, got)

				gotID, err := restored.IDOf(want, dict.RoundNone)
				require.NoError(t, err)
				require.Equal(t, id, gotID)
			}
		})
	}
}

func TestSnapshot_Errors(t *testing.T) {
	original := snapshotTestForest(t)

	var buf bytes.Buffer
	require.NoError(t, original.WriteSnapshot(&buf, format.CompressionS2))
	data := buf.Bytes()

	t.Run("Bad magic", func(t *testing.T) {
		corrupted := bytes.Clone(data)
		corrupted[0] = 0x00
		corrupted[1] = 0x00

		_, err := ReadSnapshot[string](bytes.NewReader(corrupted))

		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("Invalid compression byte", func(t *testing.T) {
		corrupted := bytes.Clone(data)
		corrupted[2] = 0x7f

		_, err := ReadSnapshot[string](bytes.NewReader(corrupted))

		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("Truncated payload", func(t *testing.T) {
		_, err := ReadSnapshot[string](bytes.NewReader(data[:len(data)-3]))

		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("Truncated header", func(t *testing.T) {
		_, err := ReadSnapshot[string](bytes.NewReader(data[:6]))

		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("Corrupted payload", func(t *testing.T) {
		corrupted := bytes.Clone(data)
		// Flip bytes inside the compressed payload.
		for i := snapshotHeaderSize; i < len(corrupted); i++ {
			corrupted[i] ^= 0xa5
		}

		_, err := ReadSnapshot[string](bytes.NewReader(corrupted))

		require.Error(t, err)
	})

	t.Run("Unsupported compression on write", func(t *testing.T) {
		var out bytes.Buffer
		err := original.WriteSnapshot(&out, format.CompressionType(0x7f))

		require.Error(t, err)
	})
}
