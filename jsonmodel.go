package mimewalk

import "encoding/json"

// MarshalJSON renders the part's Kind as its name instead of its ordinal,
// and omits whichever of Text/Binary/Message isn't populated.
func (p MessagePart) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind    string      `json:"kind"`
		Text    *TextPart   `json:"text,omitempty"`
		Binary  *BinaryPart `json:"binary,omitempty"`
		Message *Message    `json:"message,omitempty"`
	}{Kind: p.Kind.String(), Text: p.Text, Binary: p.Binary, Message: p.Message}
	return json.Marshal(out)
}

// MarshalJSON renders the part's Kind as its name and omits whichever of
// Text/BinaryIndex isn't meaningful for that kind.
func (p InlinePart) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind        string    `json:"kind"`
		Text        *TextPart `json:"text,omitempty"`
		BinaryIndex *int      `json:"binaryIndex,omitempty"`
	}{Kind: p.Kind.String(), Text: p.Text}
	if p.Kind == InlineBinaryRef {
		idx := p.BinaryIndex
		out.BinaryIndex = &idx
	}
	return json.Marshal(out)
}
