package catalogs

import "testing"

func TestLoad_Buildings(t *testing.T) {
	c, err := Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}

	belt, ok := c.Buildings.Defs["BELT"]
	if !ok {
		t.Fatalf("missing BELT def")
	}
	if byCode, ok := c.Buildings.ByCode[belt.Code]; !ok || byCode.ID != "BELT" {
		t.Fatalf("ByCode[%d]=%+v, want BELT", belt.Code, byCode)
	}

	if w, h := belt.Footprint(); w != 1 || h != 1 {
		t.Fatalf("BELT footprint %dx%d, want 1x1", w, h)
	}
	asm := c.Buildings.Defs["ASSEMBLER"]
	if w, h := asm.Footprint(); w != 3 || h != 3 {
		t.Fatalf("ASSEMBLER footprint %dx%d, want 3x3", w, h)
	}

	if !c.Buildings.Defs["TREE"].Removable {
		t.Fatalf("TREE should be removable")
	}
	if c.Buildings.Defs["BELT"].Removable {
		t.Fatalf("BELT should not be removable")
	}

	if c.Buildings.DefsDigest == "" || c.Buildings.PaletteDigest == "" {
		t.Fatalf("digests must be set, got defs=%q palette=%q", c.Buildings.DefsDigest, c.Buildings.PaletteDigest)
	}
}

func TestLoad_MissingDir(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatalf("expected error for missing config dir")
	}
}
