package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum64(t *testing.T) {
	require.Equal(t, Sum64([]byte("dictionary")), Sum64([]byte("dictionary")))
	require.NotEqual(t, Sum64([]byte("a")), Sum64([]byte("b")))
}

func TestDigestMatchesSum64(t *testing.T) {
	data := []byte("surrogate-key dictionary")

	digest := NewDigest()
	_, err := digest.Write(data)
	require.NoError(t, err)

	require.Equal(t, Sum64(data), digest.Sum64())
}
