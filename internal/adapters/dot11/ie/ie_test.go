package ie

import (
	"bytes"
	"testing"
)

func TestParse(t *testing.T) {
	data := []byte{
		0, 4, 'd', 'r', 'o', 'n', // SSID
		3, 1, 6, // DS Parameter Set
		221, 3, 0x00, 0x50, 0xF2, // Vendor Specific
	}

	elements := Parse(data)

	if len(elements) != 3 {
		t.Fatalf("Parse returned %d elements, want 3", len(elements))
	}
	if elements[0].ID != TagSSID || string(elements[0].Payload) != "dron" {
		t.Errorf("element 0 = %d %q", elements[0].ID, elements[0].Payload)
	}
	if elements[1].ID != TagDSParameterSet || elements[1].Payload[0] != 6 {
		t.Errorf("element 1 = %d %v", elements[1].ID, elements[1].Payload)
	}
	if elements[2].ID != TagVendorSpecific {
		t.Errorf("element 2 ID = %d, want 221", elements[2].ID)
	}
}

func TestParse_TruncatedTrailingIE(t *testing.T) {
	// The second IE declares 50 bytes but only 10 follow: it must be
	// discarded while the first IE survives.
	data := []byte{0, 3, 'a', 'b', 'c', 221, 50}
	data = append(data, make([]byte, 10)...)

	elements := Parse(data)

	if len(elements) != 1 {
		t.Fatalf("Parse returned %d elements, want 1", len(elements))
	}
	if string(elements[0].Payload) != "abc" {
		t.Errorf("surviving payload = %q, want abc", elements[0].Payload)
	}
}

func TestParse_Empty(t *testing.T) {
	if elements := Parse(nil); elements != nil {
		t.Errorf("Parse(nil) = %v, want nil", elements)
	}
	if elements := Parse([]byte{221}); elements != nil {
		t.Errorf("Parse of a lone ID byte = %v, want nil", elements)
	}
}

func TestParse_ZeroLengthIE(t *testing.T) {
	data := []byte{0, 0, 3, 1, 11}

	elements := Parse(data)

	if len(elements) != 2 {
		t.Fatalf("Parse returned %d elements, want 2", len(elements))
	}
	if len(elements[0].Payload) != 0 {
		t.Errorf("zero-length IE payload = %v", elements[0].Payload)
	}
}

func TestFind(t *testing.T) {
	data := []byte{
		0, 2, 'h', 'i',
		3, 1, 11,
	}

	if got := Find(data, 3); !bytes.Equal(got, []byte{11}) {
		t.Errorf("Find(3) = %v, want [11]", got)
	}
	if got := Find(data, 48); got != nil {
		t.Errorf("Find(48) = %v, want nil", got)
	}
}

func TestVendorSpecific(t *testing.T) {
	elements := []Element{
		{ID: 0, Payload: []byte("net")},
		{ID: 221, Payload: []byte{0x00, 0x50, 0xF2, 0x02}},
		{ID: 221, Payload: []byte{0xFA, 0x0B, 0xBC, 0x0D}},
	}

	vendor := VendorSpecific(elements)

	if len(vendor) != 2 {
		t.Fatalf("VendorSpecific returned %d payloads, want 2", len(vendor))
	}
	if vendor[1][0] != 0xFA {
		t.Errorf("second vendor payload = %v", vendor[1])
	}
}

func TestOUI(t *testing.T) {
	oui, ok := OUI([]byte{0xFA, 0x0B, 0xBC, 0x0D, 0x00})
	if !ok {
		t.Fatal("OUI returned false for a valid payload")
	}
	if oui != [3]byte{0xFA, 0x0B, 0xBC} {
		t.Errorf("OUI = %v", oui)
	}

	if _, ok := OUI([]byte{0xFA, 0x0B, 0xBC}); ok {
		t.Error("OUI accepted a 3-byte payload with no vendor type")
	}
}
