package knowledge

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

func (r Record) MarshalJSON() ([]byte, error) {
	return marshalObject([]field{
		{"question", r.Question},
		{"answer", r.Answer},
	}, r.Extra)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := takeField(raw, "question", &r.Question); err != nil {
		return err
	}
	if err := takeField(raw, "answer", &r.Answer); err != nil {
		return err
	}
	r.Extra = leftovers(raw)
	return nil
}

func (kb KnowledgeBase) MarshalJSON() ([]byte, error) {
	return marshalObject([]field{{"questions", kb.Questions}}, kb.Extra)
}

func (kb *KnowledgeBase) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := takeField(raw, "questions", &kb.Questions); err != nil {
		return err
	}
	kb.Extra = leftovers(raw)
	return nil
}

type field struct {
	key   string
	value any
}

// marshalObject writes the known fields in order, then the extra fields
// sorted by key. Extra keys that shadow a known field are dropped.
func marshalObject(known []field, extra map[string]json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		if err := encodeCompact(&buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		return encodeCompact(&buf, value)
	}

	for _, f := range known {
		if err := write(f.key, f.value); err != nil {
			return nil, err
		}
	}
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		if slices.ContainsFunc(known, func(f field) bool { return f.key == key }) {
			continue
		}
		if err := write(key, extra[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeCompact(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}

func takeField(raw map[string]json.RawMessage, key string, dst any) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	return json.Unmarshal(v, dst)
}

// leftovers returns the unused fields compacted, so a value reads the same
// whether it came from a hand-written or an indented file.
func leftovers(raw map[string]json.RawMessage) map[string]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	for key, v := range raw {
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err == nil {
			raw[key] = buf.Bytes()
		}
	}
	return raw
}
