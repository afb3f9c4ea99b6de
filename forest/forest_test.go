package forest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skdict/skdict/converter"
	"github.com/skdict/skdict/dict"
	"github.com/skdict/skdict/errs"
)

// buildStringForest assembles a forest from pre-partitioned sorted values,
// deriving divides (each partition's minimum) and accumulated offsets the
// way an external builder would.
func buildStringForest(t *testing.T, parts [][]string, baseID int) *Forest[string] {
	t.Helper()

	trees := make([]dict.Codec, 0, len(parts))
	divides := make([][]byte, 0, len(parts))
	offsets := make([]int, 0, len(parts))
	accu := 0
	for _, values := range parts {
		block, err := dict.NewStringBlock(values, 0)
		require.NoError(t, err)
		trees = append(trees, block)
		divides = append(divides, []byte(values[0]))
		offsets = append(offsets, accu)
		accu += block.Len()
	}

	f, err := New[string](trees, divides, offsets, converter.String{}, baseID)
	require.NoError(t, err)

	return f
}

func TestNew_Validation(t *testing.T) {
	block, err := dict.NewStringBlock([]string{"a", "b"}, 0)
	require.NoError(t, err)

	t.Run("Offset count mismatch", func(t *testing.T) {
		_, err := New[string]([]dict.Codec{block}, [][]byte{[]byte("a")}, []int{0, 2}, converter.String{}, 0)

		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})

	t.Run("First offset not zero", func(t *testing.T) {
		_, err := New[string]([]dict.Codec{block}, [][]byte{[]byte("a")}, []int{1}, converter.String{}, 0)

		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})

	t.Run("Unsorted divides", func(t *testing.T) {
		other, err := dict.NewStringBlock([]string{"c", "d"}, 0)
		require.NoError(t, err)

		_, err = New[string](
			[]dict.Codec{block, other},
			[][]byte{[]byte("c"), []byte("a")},
			[]int{0, 2},
			converter.String{}, 0,
		)

		require.ErrorIs(t, err, errs.ErrUnsortedDivides)
	})
}

func TestForest_Routing(t *testing.T) {
	parts := [][]string{
		{"apple", "banana"},
		{"cherry", "damson", "elderberry"},
		{"fig", "grape"},
	}
	f := buildStringForest(t, parts, 0)

	t.Run("Every value routes to its own partition", func(t *testing.T) {
		want := 0
		for _, values := range parts {
			for _, v := range values {
				id, err := f.IDOf(v, dict.RoundNone)
				require.NoError(t, err)
				require.Equal(t, want, id, "value %q", v)
				want++
			}
		}
	})

	t.Run("IDs are dense and contiguous", func(t *testing.T) {
		require.Equal(t, 0, f.MinID())
		require.Equal(t, 6, f.MaxID())
		require.Equal(t, 7, f.Size())

		for id := f.MinID(); id <= f.MaxID(); id++ {
			v, err := f.ValueOf(id)
			require.NoError(t, err)

			got, err := f.IDOf(v, dict.RoundNone)
			require.NoError(t, err)
			require.Equal(t, id, got)
		}
	})

	t.Run("Unknown value fails exact lookup", func(t *testing.T) {
		_, err := f.IDOf("coconut", dict.RoundNone)

		require.ErrorIs(t, err, errs.ErrValueNotFound)
	})

	t.Run("ID outside range", func(t *testing.T) {
		_, err := f.ValueOf(7)
		require.ErrorIs(t, err, errs.ErrIDNotFound)

		_, err = f.ValueOf(-1)
		require.ErrorIs(t, err, errs.ErrIDNotFound)
	})
}

func TestForest_Rounding(t *testing.T) {
	f := buildStringForest(t, [][]string{
		{"apple", "banana"},
		{"cherry", "damson"},
	}, 0)

	t.Run("Round up in gap between partitions", func(t *testing.T) {
		// "blueberry" falls strictly between partition 0's maximum and
		// partition 1's minimum.
		id, err := f.IDOf("blueberry", dict.RoundUp)

		require.NoError(t, err)
		require.Equal(t, 2, id) // cherry
	})

	t.Run("Round down in gap between partitions", func(t *testing.T) {
		id, err := f.IDOf("blueberry", dict.RoundDown)

		require.NoError(t, err)
		require.Equal(t, 1, id) // banana
	})

	t.Run("Round up below all values", func(t *testing.T) {
		id, err := f.IDOf("acorn", dict.RoundUp)
		require.NoError(t, err)
		require.Equal(t, 0, id) // apple

		id, err = f.IDOf("Zebra", dict.RoundUp) // uppercase sorts below
		require.NoError(t, err)
		require.Equal(t, f.MinID(), id)
	})

	t.Run("Round down below all values", func(t *testing.T) {
		_, err := f.IDOf("Zebra", dict.RoundDown)

		require.ErrorIs(t, err, errs.ErrValueNotFound)
	})

	t.Run("Round up above all values", func(t *testing.T) {
		_, err := f.IDOf("zucchini", dict.RoundUp)

		require.ErrorIs(t, err, errs.ErrValueNotFound)
	})

	t.Run("Round down above all values", func(t *testing.T) {
		id, err := f.IDOf("zucchini", dict.RoundDown)

		require.NoError(t, err)
		require.Equal(t, f.MaxID(), id) // damson
	})

	t.Run("Rounding within a partition", func(t *testing.T) {
		id, err := f.IDOf("apricot", dict.RoundUp)
		require.NoError(t, err)
		require.Equal(t, 1, id) // banana

		id, err = f.IDOf("apricot", dict.RoundDown)
		require.NoError(t, err)
		require.Equal(t, 0, id) // apple
	})
}

func TestForest_BaseID(t *testing.T) {
	f := buildStringForest(t, [][]string{
		{"apple", "banana"},
		{"cherry"},
	}, 100)

	require.Equal(t, 100, f.MinID())
	require.Equal(t, 102, f.MaxID())
	require.Equal(t, 3, f.Size())

	id, err := f.IDOf("cherry", dict.RoundNone)
	require.NoError(t, err)
	require.Equal(t, 102, id)

	v, err := f.ValueOf(101)
	require.NoError(t, err)
	require.Equal(t, "banana", v)

	_, err = f.ValueOf(99)
	require.ErrorIs(t, err, errs.ErrIDNotFound)

	id, err = f.IDOf("acorn", dict.RoundUp)
	require.NoError(t, err)
	require.Equal(t, 100, id)
}

func TestForest_Empty(t *testing.T) {
	f, err := New[string](nil, nil, nil, converter.String{}, 50)
	require.NoError(t, err)

	require.Equal(t, 50, f.MinID())
	require.Equal(t, 49, f.MaxID())
	require.Equal(t, 0, f.Size())
	require.Equal(t, -1, f.SizeOfID())
	require.Equal(t, -1, f.SizeOfValue())

	_, err = f.IDOf("anything", dict.RoundNone)
	require.ErrorIs(t, err, errs.ErrValueNotFound)

	_, err = f.ValueOf(50)
	require.ErrorIs(t, err, errs.ErrIDNotFound)
}

func TestForest_Singleton(t *testing.T) {
	block, err := dict.NewStringBlock([]string{"apple", "banana", "cherry"}, 0)
	require.NoError(t, err)

	// Deliberately misleading divides: a singleton forest must never consult
	// them for routing.
	f, err := New[string]([]dict.Codec{block}, [][]byte{[]byte("zzz")}, []int{0}, converter.String{}, 0)
	require.NoError(t, err)

	id, err := f.IDOf("apple", dict.RoundNone)
	require.NoError(t, err)
	require.Equal(t, 0, id)

	id, err = f.IDOf("blueberry", dict.RoundUp)
	require.NoError(t, err)
	require.Equal(t, 2, id)

	v, err := f.ValueOf(1)
	require.NoError(t, err)
	require.Equal(t, "banana", v)
}

func TestForest_SizeOf(t *testing.T) {
	f := buildStringForest(t, [][]string{
		{"aa", "bb"},
		{"cc", "longestvalue"},
	}, 0)

	require.Equal(t, 1, f.SizeOfID())
	require.Equal(t, len("longestvalue"), f.SizeOfValue())
}

func TestForest_ContainsValue(t *testing.T) {
	f := buildStringForest(t, [][]string{{"a", "b"}, {"c", "d"}}, 0)

	require.True(t, f.ContainsValue("a"))
	require.True(t, f.ContainsValue("d"))
	require.False(t, f.ContainsValue("x"))
	require.False(t, f.ContainsValue(""))
}

func TestForest_Contains(t *testing.T) {
	a := buildStringForest(t, [][]string{{"a", "b", "c", "d"}}, 0)
	b := buildStringForest(t, [][]string{{"b", "c"}}, 0)

	require.True(t, a.Contains(b))
	require.False(t, b.Contains(a))

	t.Run("Empty dictionary is contained", func(t *testing.T) {
		empty, err := New[string](nil, nil, nil, converter.String{}, 0)
		require.NoError(t, err)

		require.True(t, a.Contains(empty))
		require.False(t, empty.Contains(a))
	})

	t.Run("Same size but different entries", func(t *testing.T) {
		c := buildStringForest(t, [][]string{{"a", "b", "c", "x"}}, 0)

		require.False(t, a.Contains(c))
		require.False(t, c.Contains(a))
	})

	t.Run("Base ID does not affect containment", func(t *testing.T) {
		shifted := buildStringForest(t, [][]string{{"b", "c"}}, 1000)

		require.True(t, a.Contains(shifted))
	})
}

func TestForest_Equal(t *testing.T) {
	a := buildStringForest(t, [][]string{{"a", "b"}, {"c"}}, 0)
	b := buildStringForest(t, [][]string{{"a", "b"}, {"c"}}, 0)
	diffTrees := buildStringForest(t, [][]string{{"a", "b"}, {"d"}}, 0)
	diffBase := buildStringForest(t, [][]string{{"a", "b"}, {"c"}}, 1)

	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))
	require.False(t, a.Equal(diffTrees))
	require.False(t, a.Equal(diffBase))
	require.False(t, a.Equal(nil))
}

func TestForest_Fingerprint(t *testing.T) {
	a := buildStringForest(t, [][]string{{"a", "b"}, {"c"}}, 0)
	b := buildStringForest(t, [][]string{{"a", "b"}, {"c"}}, 0)
	c := buildStringForest(t, [][]string{{"a", "b"}, {"d"}}, 0)

	fpA, err := a.Fingerprint()
	require.NoError(t, err)
	fpB, err := b.Fingerprint()
	require.NoError(t, err)
	fpC, err := c.Fingerprint()
	require.NoError(t, err)

	require.Equal(t, fpA, fpB)
	require.NotEqual(t, fpA, fpC)
}

func TestForest_Dump(t *testing.T) {
	f := buildStringForest(t, [][]string{{"a", "b"}, {"c"}}, 7)

	var sb strings.Builder
	f.Dump(&sb)
	out := sb.String()

	require.Contains(t, out, "DictionaryForest")
	require.Contains(t, out, "baseID:7")
	require.Contains(t, out, "tree 0")
	require.Contains(t, out, "tree 1")
}

func TestForest_BytesForest(t *testing.T) {
	block, err := dict.NewBlock([][]byte{{0x01}, {0x02, 0x00}}, 0)
	require.NoError(t, err)

	f, err := New[[]byte]([]dict.Codec{block}, [][]byte{{0x01}}, []int{0}, nil, 0)
	require.NoError(t, err)

	id, err := f.IDOf([]byte{0x02, 0x00}, dict.RoundNone)
	require.NoError(t, err)
	require.Equal(t, 1, id)

	v, err := f.ValueOf(0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, v)
}

func TestForest_AppendValueBytes(t *testing.T) {
	f := buildStringForest(t, [][]string{{"a", "b"}, {"c"}}, 0)

	dst := []byte("got:")
	dst, err := f.AppendValueBytes(dst, 2)
	require.NoError(t, err)
	require.Equal(t, []byte("got:c"), dst)

	_, err = f.AppendValueBytes(nil, 3)
	require.ErrorIs(t, err, errs.ErrIDNotFound)
}
