package main

import (
	"fmt"
	"math"
)

// Shape is the demo base interface the container is instantiated over.
type Shape interface {
	Area() float64
	Describe() string
}

// Circle fits the inline storage: one word, no references.
type Circle struct {
	Radius float64
}

func (c *Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

func (c *Circle) Describe() string {
	return fmt.Sprintf("circle r=%g", c.Radius)
}

// Rect fits the inline storage: two words, no references.
type Rect struct {
	Width, Height float64
}

func (r *Rect) Area() float64 { return r.Width * r.Height }

func (r *Rect) Describe() string {
	return fmt.Sprintf("rect %gx%g", r.Width, r.Height)
}

// Label carries a string, so it is heap-stored regardless of size.
type Label struct {
	Text string
	Pt   float64
}

func (l *Label) Area() float64 { return float64(len(l.Text)) * l.Pt }

func (l *Label) Describe() string {
	return fmt.Sprintf("label %q pt=%g", l.Text, l.Pt)
}

// Blob exceeds the inline capacity, so it is heap-stored despite being
// relocatable. It also carries a Dispose hook so scenarios can watch
// destruction happen.
type Blob struct {
	Data [8]float64
}

// NewBlob fills the blob deterministically from a seed.
func NewBlob(seed float64) Blob {
	var b Blob
	for i := range b.Data {
		b.Data[i] = seed * float64(i+1)
	}
	return b
}

func (b *Blob) Area() float64 {
	var sum float64
	for _, v := range b.Data {
		sum += v
	}
	return sum
}

func (b *Blob) Describe() string {
	return fmt.Sprintf("blob sum=%g", b.Area())
}

func (b *Blob) Dispose() {
	fmt.Printf("  [dispose] %s\n", b.Describe())
}
