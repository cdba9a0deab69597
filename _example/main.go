package main

import (
	"cmp"
	"fmt"
	"log"

	"github.com/hupe1980/seqgo"
)

func main() {
	ints := seqgo.Of(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	fmt.Printf("Integer Array Size : (%d)\n", ints.Len())
	for _, v := range ints.All() {
		fmt.Println(v)
	}
	fmt.Println("------------------------")

	a := seqgo.New[string]()
	if err := a.InsertAt(0, "elem 0"); err != nil {
		log.Fatal(err)
	}
	a.AppendAll("elem 1", "elem 2", "elem 3", "elem 4", "elem 5")

	fmt.Printf("Array 1 Size : (%d) initially\n", a.Len())
	for v := range a.Values() {
		fmt.Println(v)
	}

	if err := a.InsertAt(6, "elem 6"); err != nil { // inserting at the end
		log.Fatal(err)
	}

	// Sort in descending order.
	a.SortFunc(func(x, y string) int { return cmp.Compare(y, x) })
	fmt.Printf("Array 1 Size : (%d) custom sort - descending order\n", a.Len())
	for v := range a.Values() {
		fmt.Println(v)
	}

	if _, err := a.RemoveAt(a.Len() - 1); err != nil { // removes last element
		log.Fatal(err)
	}

	// Out-of-range positions report errors instead of being clamped.
	if _, err := a.Get(a.Len()); err != nil {
		fmt.Println("caught expected error:", err)
	}

	moved := a.Move()
	fmt.Printf("Array 2 Size (moved from Array 1) : (%d)\n", moved.Len())
	for v := range moved.Values() {
		fmt.Println(v)
	}
	fmt.Printf("Array 1 Size (after move) : (%d)\n", a.Len())

	clone := moved.Clone()
	clone.Append("elem X")
	fmt.Printf("Array 3 Size (cloned from Array 2) : (%d)\n", clone.Len())
	fmt.Printf("Array 2 Size (after clone, unchanged) : (%d)\n", moved.Len())

	c := seqgo.New[string]()
	c.MoveFrom(clone)
	fmt.Printf("Array 4 Size (move assigned from Array 3) : (%d)\n", c.Len())
	fmt.Printf("Array 3 Size (after move) : (%d)\n", clone.Len())

	c.Clear()
	fmt.Printf("Array 4 Size (after clear) : (%d), capacity retained (%d)\n", c.Len(), c.Cap())
}
