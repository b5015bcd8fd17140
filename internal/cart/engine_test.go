package cart

import (
	"testing"
)

func snap(id string, priceCents int64) ItemSnapshot {
	return ItemSnapshot{ProductID: id, Name: "product " + id, UnitPriceCents: priceCents, AvailableForSale: true}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	t.Parallel()

	lines := Lines{}.Add(snap("p1", 1000)).Add(snap("p1", 1000))

	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
	if got := lines.SubtotalCents(); got != 2000 {
		t.Fatalf("expected subtotal 2000, got %d", got)
	}
}

func TestAddDistinctProductsKeepsOneLineEach(t *testing.T) {
	t.Parallel()

	lines := Lines{}
	for _, id := range []string{"p1", "p2", "p3"} {
		lines = lines.Add(snap(id, 500))
	}

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if got := lines.ItemCount(); got != 3 {
		t.Fatalf("expected item count 3, got %d", got)
	}
}

func TestRemoveLeavesOtherLines(t *testing.T) {
	t.Parallel()

	lines := Lines{}.Add(snap("p1", 500)).Add(snap("p2", 1500)).Remove("p1")

	if len(lines) != 1 || lines[0].ProductID != "p2" {
		t.Fatalf("expected only p2 to remain, got %+v", lines)
	}
	if got := lines.SubtotalCents(); got != 1500 {
		t.Fatalf("expected subtotal 1500, got %d", got)
	}
}

func TestRemoveUnknownProductIsNoop(t *testing.T) {
	t.Parallel()

	lines := Lines{}.Add(snap("p1", 500)).Remove("missing")
	if len(lines) != 1 {
		t.Fatalf("expected line to survive, got %+v", lines)
	}
}

func TestUpdateQuantityBoundaries(t *testing.T) {
	t.Parallel()

	lines := Lines{}.Add(snap("p1", 100)).Add(snap("p1", 100)).Add(snap("p1", 100))

	if got := lines.UpdateQuantity("p1", 0); got[0].Quantity != 3 {
		t.Fatalf("quantity 0 should be a no-op, got %d", got[0].Quantity)
	}
	if got := lines.UpdateQuantity("p1", -1); got[0].Quantity != 3 {
		t.Fatalf("negative quantity should be a no-op, got %d", got[0].Quantity)
	}
	if got := lines.UpdateQuantity("missing", 1); len(got) != 1 {
		t.Fatalf("updating an unknown id must not create a line, got %+v", got)
	}
	if got := lines.UpdateQuantity("p1", 7); got[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", got[0].Quantity)
	}
}

func TestDerivedTotalsAcrossMutations(t *testing.T) {
	t.Parallel()

	lines := Lines{}.
		Add(snap("p1", 250)).
		Add(snap("p2", 1000)).
		UpdateQuantity("p1", 4).
		Add(snap("p3", 99)).
		Remove("p2")

	if got := lines.ItemCount(); got != 5 {
		t.Fatalf("expected item count 5, got %d", got)
	}
	if got := lines.SubtotalCents(); got != 4*250+99 {
		t.Fatalf("unexpected subtotal %d", got)
	}
}

func TestDecodeLinesRejectsMalformedPayloads(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `not-json`},
		{name: "wrong shape", payload: `{"productId":"p1"}`},
		{name: "missing product id", payload: `[{"name":"x","quantity":1}]`},
		{name: "zero quantity", payload: `[{"productId":"p1","quantity":0}]`},
	}

	for _, tc := range cases {
		if _, err := decodeLines([]byte(tc.payload)); err == nil {
			t.Fatalf("%s: expected decode error", tc.name)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	original := Lines{}.Add(snap("p1", 1500)).Add(snap("p2", 300)).UpdateQuantity("p2", 5)
	compareAt := int64(2000)
	original[0].CompareAtPriceCents = &compareAt

	payload, err := encodeLines(original)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := decodeLines(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(decoded) != len(original) {
		t.Fatalf("expected %d lines, got %d", len(original), len(decoded))
	}
	for i := range original {
		if decoded[i].ProductID != original[i].ProductID || decoded[i].Quantity != original[i].Quantity {
			t.Fatalf("line %d differs: %+v vs %+v", i, decoded[i], original[i])
		}
	}
	if decoded[0].CompareAtPriceCents == nil || *decoded[0].CompareAtPriceCents != compareAt {
		t.Fatalf("compare-at price lost in round trip")
	}
}

func TestDecodeLinesIgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	payload := `[{"productId":"p1","quantity":2,"legacyField":"whatever"}]`
	lines, err := decodeLines([]byte(payload))
	if err != nil {
		t.Fatalf("unknown fields should be ignored: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected decode result %+v", lines)
	}
}
