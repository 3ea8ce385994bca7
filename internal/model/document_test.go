package model

import (
	"testing"
)

func textEl(id string, z int) Element {
	return Element{
		ID:       id,
		Variant:  VariantText,
		Position: Position{X: 100, Y: 100},
		Size:     Size{Width: Units(300), Height: Auto},
		ZIndex:   z,
		Text:     &TextSpec{Config: TextConfig{FieldID: "headline", DefaultValue: "Hello"}},
	}
}

func shapeEl(id string, z int) Element {
	return Element{
		ID:       id,
		Variant:  VariantShape,
		Position: Position{X: 0, Y: 0},
		Size:     Size{Width: Units(200), Height: Units(120)},
		ZIndex:   z,
		Shape:    &ShapeSpec{Config: ShapeConfig{Kind: ShapeRectangle}},
	}
}

func TestRenderOrderStableSort(t *testing.T) {
	doc := Document{Elements: []Element{
		textEl("a", 3),
		shapeEl("b", 1),
		textEl("c", 3),
		shapeEl("d", 2),
	}}

	ordered := doc.RenderOrder()
	got := make([]string, len(ordered))
	for i, el := range ordered {
		got[i] = el.ID
	}

	want := []string{"b", "d", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("render order = %v, want %v", got, want)
		}
	}

	// Duplicate z-indexes resolve by insertion order, not an error.
	if ordered[2].ID != "a" || ordered[3].ID != "c" {
		t.Fatalf("tie broken unstably: %v", got)
	}
}

func TestRenderOrderDoesNotMutateDocument(t *testing.T) {
	doc := Document{Elements: []Element{textEl("a", 2), shapeEl("b", 1)}}
	_ = doc.RenderOrder()
	if doc.Elements[0].ID != "a" {
		t.Fatal("RenderOrder must not reorder the stored elements")
	}
}

func TestDuplicateElement(t *testing.T) {
	doc := Document{Elements: []Element{textEl("a", 7), shapeEl("b", 2)}}

	dup, ok := doc.DuplicateElement("b")
	if !ok {
		t.Fatal("expected duplicate to succeed")
	}
	if dup.ID == "b" || dup.ID == "" {
		t.Fatalf("duplicate must get a fresh id, got %q", dup.ID)
	}
	if dup.ZIndex != 8 {
		t.Fatalf("duplicate z-index = %d, want max+1 = 8", dup.ZIndex)
	}
	if dup.Position.X == 0 && dup.Position.Y == 0 {
		t.Fatal("duplicate position must be offset from source")
	}
	if len(doc.Elements) != 3 {
		t.Fatalf("document has %d elements, want 3", len(doc.Elements))
	}
}

func TestDuplicateMissingIsNoOp(t *testing.T) {
	doc := Document{Elements: []Element{textEl("a", 1)}}
	_, ok := doc.DuplicateElement("ghost")
	if ok {
		t.Fatal("duplicating a missing id must report false")
	}
	if len(doc.Elements) != 1 {
		t.Fatal("duplicating a missing id must not change the document")
	}
}

func TestDeleteMissingIsNoOp(t *testing.T) {
	doc := Document{Elements: []Element{textEl("a", 1)}}
	doc.DeleteElement("ghost")
	if len(doc.Elements) != 1 {
		t.Fatal("deleting a missing id must not change the document")
	}
	doc.DeleteElement("a")
	if len(doc.Elements) != 0 {
		t.Fatal("expected element to be deleted")
	}
}

func TestCreateElementAssignsIDAndZIndex(t *testing.T) {
	doc := Document{Elements: []Element{textEl("a", 4)}}
	el := shapeEl("", 0)

	created, err := doc.CreateElement(el)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
	if created.ZIndex != 5 {
		t.Fatalf("z-index = %d, want 5", created.ZIndex)
	}
}

func TestCreateElementRejectsInvalid(t *testing.T) {
	doc := Document{}

	// Auto sizing is not valid for shapes.
	el := Element{
		Variant:  VariantShape,
		Position: Position{X: 0, Y: 0},
		Size:     Size{Width: Auto, Height: Units(100)},
		Shape:    &ShapeSpec{},
	}
	if _, err := doc.CreateElement(el); err == nil {
		t.Fatal("expected validation error for auto-sized shape")
	}
	if len(doc.Elements) != 0 {
		t.Fatal("rejected element must not land in the document")
	}

	// Variant tag without a matching spec.
	el = Element{Variant: VariantText, Size: Size{Width: Units(10), Height: Units(10)}}
	if _, err := doc.CreateElement(el); err == nil {
		t.Fatal("expected validation error for missing spec")
	}
}

func TestUpdateElementPartial(t *testing.T) {
	doc := Document{Elements: []Element{textEl("a", 1)}}

	w := Units(500)
	ok := doc.UpdateElement("a", ElementPatch{
		Position: &Position{X: 50, Y: 60},
		Width:    &w,
		Style:    &StylePatch{Color: "#FF0000"},
	})
	if !ok {
		t.Fatal("expected update to succeed")
	}

	el := doc.Elements[0]
	if el.Position.X != 50 || el.Position.Y != 60 {
		t.Fatalf("position = %+v", el.Position)
	}
	if el.Size.Width.Value != 500 {
		t.Fatalf("width = %v", el.Size.Width)
	}
	if el.Size.Height != Auto {
		t.Fatal("height must be untouched")
	}
	if el.Text.Style.Color != "#FF0000" {
		t.Fatalf("color = %q", el.Text.Style.Color)
	}
	if el.Text.Config.DefaultValue != "Hello" {
		t.Fatal("style patch must not touch config")
	}
}

func TestUpdateElementMissingIsNoOp(t *testing.T) {
	doc := Document{Elements: []Element{textEl("a", 1)}}
	if doc.UpdateElement("ghost", ElementPatch{Position: &Position{X: 1, Y: 1}}) {
		t.Fatal("updating a missing id must report false")
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := Document{Elements: []Element{textEl("a", 1)}}
	clone := doc.Clone()
	clone.Elements[0].Text.Config.DefaultValue = "mutated"
	if doc.Elements[0].Text.Config.DefaultValue != "Hello" {
		t.Fatal("clone shares element specs with the source")
	}
}
