package ie

import "errors"

// Common IE tags seen in management frames.
const (
	TagSSID           = 0
	TagDSParameterSet = 3
	TagVendorSpecific = 221 // 0xDD
)

// Element is one (id, length, payload) triple from a frame body.
type Element struct {
	ID      byte
	Payload []byte
}

var ErrIENotFound = errors.New("information element not found")

// Iterate calls the callback for each valid IE in data. It stops cleanly at
// end-of-buffer; an IE whose declared length overruns the buffer is
// discarded together with everything after it.
func Iterate(data []byte, callback func(id byte, payload []byte)) {
	offset := 0
	limit := len(data)

	for offset < limit {
		// Needs at least 2 bytes (ID and Length)
		if offset+2 > limit {
			break
		}

		id := data[offset]
		length := int(data[offset+1])
		offset += 2

		if offset+length > limit {
			break
		}

		callback(id, data[offset:offset+length])
		offset += length
	}
}

// Parse collects every valid IE in order. A truncated trailing IE is not
// partially parsed; the list recovered so far is returned.
func Parse(data []byte) []Element {
	var elements []Element
	Iterate(data, func(id byte, payload []byte) {
		elements = append(elements, Element{ID: id, Payload: payload})
	})
	return elements
}

// Find returns the payload of the first IE with the given ID, or nil.
func Find(data []byte, targetID byte) []byte {
	var result []byte
	Iterate(data, func(id byte, payload []byte) {
		if result == nil && id == targetID {
			result = payload
		}
	})
	return result
}

// VendorSpecific returns the payloads of all Vendor Specific IEs (tag 221).
func VendorSpecific(elements []Element) [][]byte {
	var results [][]byte
	for _, el := range elements {
		if el.ID == TagVendorSpecific {
			results = append(results, el.Payload)
		}
	}
	return results
}

// OUI returns the 3-byte Organizationally Unique Identifier of a vendor
// specific payload, or false if the payload is too short to carry one.
func OUI(payload []byte) ([3]byte, bool) {
	var oui [3]byte
	if len(payload) < 4 {
		return oui, false
	}
	copy(oui[:], payload[:3])
	return oui, true
}
