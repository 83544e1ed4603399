package pvarray_test

import (
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/pvdata/pvarray"
)

func TestEqual(t *testing.T) {
	a, _, _ := newByteArray(1, 2, 3)

	testCases := []struct {
		desc  string
		other func() *pvarray.ByteArray
		equal bool
	}{
		{
			desc:  "Itself",
			other: func() *pvarray.ByteArray { return a },
			equal: true,
		},
		{
			desc: "Same contents, more capacity",
			other: func() *pvarray.ByteArray {
				b, _, _ := newByteArray(1, 2, 3)
				b.SetCapacity(50)
				return b
			},
			equal: true,
		},
		{
			desc: "Same prefix, stale elements past the length",
			other: func() *pvarray.ByteArray {
				b, _, _ := newByteArray(1, 2, 3, 4)
				b.SetLength(3)
				return b
			},
			equal: true,
		},
		{
			desc: "Immutable",
			other: func() *pvarray.ByteArray {
				b, _, _ := newByteArray(1, 2, 3)
				b.SetImmutable()
				return b
			},
			equal: true,
		},
		{
			desc: "Different element",
			other: func() *pvarray.ByteArray {
				b, _, _ := newByteArray(1, 2, 4)
				return b
			},
		},
		{
			desc: "Shorter",
			other: func() *pvarray.ByteArray {
				b, _, _ := newByteArray(1, 2)
				return b
			},
		},
		{
			desc:  "Nil",
			other: func() *pvarray.ByteArray { return nil },
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			other := tC.other()
			td.Cmp(t, pvarray.Equal(a, other), tC.equal)
			td.Cmp(t, a.Equals(other), tC.equal)
			td.Cmp(t, a.NotEquals(other), !tC.equal)
		})
	}
}
