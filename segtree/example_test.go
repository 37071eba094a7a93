package segtree_test

import (
	"fmt"
	"strings"

	"github.com/wyfcoding/rangequery/segtree"
)

func ExampleNewMaxArrayTree() {
	tree, err := segtree.NewMaxArrayTree([]int{10, 15, 55, 15, 9, 12})
	if err != nil {
		panic(err)
	}
	fmt.Println(strings.TrimSpace(tree.String()))

	_ = tree.Update(0, 80)
	v, _ := tree.QueryRange(0, 5)
	fmt.Println(v)
	// Output:
	// [ 55 55 15 15 55 15 12 10 15 - - 15 9 - - ]
	// 80
}

func ExampleNew() {
	tree, err := segtree.New(segtree.NodeBacked, segtree.KindSum, []int64{60, 10, 5, 15, 6})
	if err != nil {
		panic(err)
	}
	v, _ := tree.QueryRange(1, 3)
	fmt.Println(v, tree.Size())
	// Output: 30 5
}
