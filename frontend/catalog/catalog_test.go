package catalog

import "testing"

func TestRegistryAccessors(t *testing.T) {
	if got := UnitMl("Diesel 500ml"); got != 500 {
		t.Fatalf("UnitMl Diesel 500ml = %v", got)
	}
	if got := BoxUnits("Gasolina 300ml"); got != 30 {
		t.Fatalf("BoxUnits Gasolina 300ml = %v", got)
	}
	if got := SheetColumn("Gasolina 500ml"); got != "H" {
		t.Fatalf("SheetColumn Gasolina 500ml = %q", got)
	}
	if got := BadgeClass("Diesel 500ml"); got != "badge-product-diesel" {
		t.Fatalf("BadgeClass Diesel 500ml = %q", got)
	}
}

func TestUnknownTypeYieldsZeroValues(t *testing.T) {
	if Known("Querosene 1l") {
		t.Fatalf("unexpected known type")
	}
	if UnitMl("Querosene 1l") != 0 || BoxUnits("Querosene 1l") != 0 {
		t.Fatalf("expected zero values for unknown type")
	}
	if BadgeClass("Querosene 1l") != "" || SheetColumn("Querosene 1l") != "" {
		t.Fatalf("expected empty strings for unknown type")
	}
}

func TestFamiliesGroupByLeadingWord(t *testing.T) {
	families := Families()
	if len(families) != 2 {
		t.Fatalf("expected 2 families, got %d", len(families))
	}
	if families[0].Name != "Diesel" || len(families[0].Types) != 1 {
		t.Fatalf("unexpected first family: %+v", families[0])
	}
	if families[1].Name != "Gasolina" || len(families[1].Types) != 2 {
		t.Fatalf("unexpected second family: %+v", families[1])
	}
}
