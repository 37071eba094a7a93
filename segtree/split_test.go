package segtree

import "testing"

func TestPaddedSize(t *testing.T) {
	for n, want := range map[int]int{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 6: 8, 17: 32, 1024: 1024, 1025: 2048} {
		if got := paddedSize(n); got != want {
			t.Errorf("paddedSize(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestChildParentRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		if parent(leftChild(i)) != i || parent(rightChild(i)) != i {
			t.Fatalf("parent of children of %d is not %d", i, i)
		}
	}
}

func TestMidpointSplitsInclusiveRange(t *testing.T) {
	cases := [][3]int{{0, 5, 2}, {0, 2, 1}, {3, 4, 3}, {0, 1, 0}, {7, 7, 7}}
	for _, c := range cases {
		if got := midpoint(c[0], c[1]); got != c[2] {
			t.Errorf("midpoint(%d, %d) = %d, want %d", c[0], c[1], got, c[2])
		}
	}
}
