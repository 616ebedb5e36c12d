package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	polyvalue "github.com/Hitoprl/polymorphic-value"
)

// scenario is a YAML-described sequence of container operations over named
// slots.
type scenario struct {
	Name  string `yaml:"name"`
	Steps []step `yaml:"steps"`
}

type step struct {
	Op    string `yaml:"op"`
	Slot  string `yaml:"slot"`
	From  string `yaml:"from"`
	Shape string `yaml:"shape"`

	// Shape parameters; which ones apply depends on the shape.
	Radius float64 `yaml:"radius"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Text   string  `yaml:"text"`
	Pt     float64 `yaml:"pt"`
	Seed   float64 `yaml:"seed"`
}

// tourSteps is the canned sequence run when no scenario file is given: it
// touches every storage case and every mutation path once.
var tourSteps = []step{
	{Op: "new", Slot: "a", Shape: "circle", Radius: 2},
	{Op: "new", Slot: "b", Shape: "label", Text: "hello", Pt: 1.5},
	{Op: "new", Slot: "c", Shape: "blob", Seed: 0.25},
	{Op: "show"},
	{Op: "clone", Slot: "d", From: "c"},
	{Op: "assign", Slot: "a", Shape: "rect", Width: 3, Height: 4},
	{Op: "emplace", Slot: "b", Shape: "circle", Radius: 1},
	{Op: "move", Slot: "e", From: "c"},
	{Op: "copy-from", Slot: "d", From: "e"},
	{Op: "show"},
	{Op: "dispose", Slot: "e"},
	{Op: "dispose", Slot: "d"},
	{Op: "show"},
}

func runTour() error {
	slots := make(map[string]*polyvalue.Value[Shape])
	defer func() {
		for _, v := range slots {
			v.Dispose()
		}
	}()

	fmt.Println("Scenario: built-in tour (use -script for your own)")
	for i, st := range tourSteps {
		if err := applyStep(slots, st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
	}

	fmt.Printf("\nDone: %d steps, %d operation tables interned\n",
		len(tourSteps), polyvalue.TableCount())
	return nil
}

func runScript(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}

	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return fmt.Errorf("parse scenario: %w", err)
	}

	if sc.Name != "" {
		fmt.Printf("Scenario: %s\n", sc.Name)
	}

	slots := make(map[string]*polyvalue.Value[Shape])
	defer func() {
		for _, v := range slots {
			v.Dispose()
		}
	}()

	for i, st := range sc.Steps {
		if err := applyStep(slots, st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
	}

	fmt.Printf("\nDone: %d steps, %d operation tables interned\n",
		len(sc.Steps), polyvalue.TableCount())
	return nil
}

func applyStep(slots map[string]*polyvalue.Value[Shape], st step) error {
	switch st.Op {
	case "new":
		if _, ok := slots[st.Slot]; ok {
			return fmt.Errorf("slot %q already in use", st.Slot)
		}
		v, err := newShape(st)
		if err != nil {
			return err
		}
		slots[st.Slot] = &v
		fmt.Printf("new %s <- %s [%s]\n", st.Slot, v.Get().Describe(), v.StorageKind())

	case "assign":
		v, err := slot(slots, st.Slot)
		if err != nil {
			return err
		}
		if err := assignShape(v, st); err != nil {
			return err
		}
		fmt.Printf("assign %s <- %s [%s]\n", st.Slot, v.Get().Describe(), v.StorageKind())

	case "emplace":
		v, err := slot(slots, st.Slot)
		if err != nil {
			return err
		}
		if err := emplaceShape(v, st); err != nil {
			return err
		}
		fmt.Printf("emplace %s <- %s [%s]\n", st.Slot, v.Get().Describe(), v.StorageKind())

	case "clone":
		src, err := slot(slots, st.From)
		if err != nil {
			return err
		}
		if _, ok := slots[st.Slot]; ok {
			return fmt.Errorf("slot %q already in use", st.Slot)
		}
		v := src.Clone()
		slots[st.Slot] = &v
		fmt.Printf("clone %s <- %s\n", st.Slot, st.From)

	case "move":
		src, err := slot(slots, st.From)
		if err != nil {
			return err
		}
		if _, ok := slots[st.Slot]; ok {
			return fmt.Errorf("slot %q already in use", st.Slot)
		}
		v := src.Move()
		src.Dispose()
		delete(slots, st.From)
		slots[st.Slot] = &v
		fmt.Printf("move %s <- %s\n", st.Slot, st.From)

	case "copy-from":
		dst, err := slot(slots, st.Slot)
		if err != nil {
			return err
		}
		src, err := slot(slots, st.From)
		if err != nil {
			return err
		}
		dst.CopyFrom(src)
		fmt.Printf("copy-from %s <- %s\n", st.Slot, st.From)

	case "move-from":
		dst, err := slot(slots, st.Slot)
		if err != nil {
			return err
		}
		src, err := slot(slots, st.From)
		if err != nil {
			return err
		}
		dst.MoveFrom(src)
		src.Dispose()
		delete(slots, st.From)
		fmt.Printf("move-from %s <- %s\n", st.Slot, st.From)

	case "dispose":
		v, err := slot(slots, st.Slot)
		if err != nil {
			return err
		}
		v.Dispose()
		delete(slots, st.Slot)
		fmt.Printf("dispose %s\n", st.Slot)

	case "show":
		if st.Slot != "" {
			v, err := slot(slots, st.Slot)
			if err != nil {
				return err
			}
			showSlot(st.Slot, v)
			return nil
		}
		names := make([]string, 0, len(slots))
		for name := range slots {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			showSlot(name, slots[name])
		}

	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

func slot(slots map[string]*polyvalue.Value[Shape], name string) (*polyvalue.Value[Shape], error) {
	v, ok := slots[name]
	if !ok {
		return nil, fmt.Errorf("no slot %q", name)
	}
	return v, nil
}

func showSlot(name string, v *polyvalue.Value[Shape]) {
	fmt.Printf("  %s: %s area=%g [%s %s]\n",
		name, v.Get().Describe(), v.Get().Area(), v.StorageKind(), v.ConcreteType())
}

func newShape(st step) (polyvalue.Value[Shape], error) {
	switch st.Shape {
	case "circle":
		return polyvalue.New[Shape](Circle{Radius: st.Radius})
	case "rect":
		return polyvalue.New[Shape](Rect{Width: st.Width, Height: st.Height})
	case "label":
		return polyvalue.New[Shape](Label{Text: st.Text, Pt: st.Pt})
	case "blob":
		return polyvalue.New[Shape](NewBlob(st.Seed))
	default:
		return polyvalue.Value[Shape]{}, fmt.Errorf("unknown shape %q", st.Shape)
	}
}

func assignShape(v *polyvalue.Value[Shape], st step) error {
	switch st.Shape {
	case "circle":
		return polyvalue.Assign(v, Circle{Radius: st.Radius})
	case "rect":
		return polyvalue.Assign(v, Rect{Width: st.Width, Height: st.Height})
	case "label":
		return polyvalue.Assign(v, Label{Text: st.Text, Pt: st.Pt})
	case "blob":
		return polyvalue.Assign(v, NewBlob(st.Seed))
	default:
		return fmt.Errorf("unknown shape %q", st.Shape)
	}
}

func emplaceShape(v *polyvalue.Value[Shape], st step) error {
	switch st.Shape {
	case "circle":
		return polyvalue.Emplace(v, Circle{Radius: st.Radius})
	case "rect":
		return polyvalue.Emplace(v, Rect{Width: st.Width, Height: st.Height})
	case "label":
		return polyvalue.Emplace(v, Label{Text: st.Text, Pt: st.Pt})
	case "blob":
		return polyvalue.Emplace(v, NewBlob(st.Seed))
	default:
		return fmt.Errorf("unknown shape %q", st.Shape)
	}
}
