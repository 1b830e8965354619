package gltf

import (
	"bytes"
	"encoding/json"
)

// Fields holds JSON properties that the typed model does not interpret.
// They are re-emitted unchanged when the owning object is encoded.
type Fields map[string]json.RawMessage

// decodeObject unmarshals data into v and returns every property whose
// key is not listed in known.
func decodeObject(data []byte, v any, known ...string) (Fields, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}

	var all Fields
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, key := range known {
		delete(all, key)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// encodeObject marshals v and merges extra into the resulting object.
// Typed properties win over extra ones with the same key.
func encodeObject(v any, extra Fields) ([]byte, error) {
	data, err := marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var all Fields
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for key, raw := range extra {
		if _, ok := all[key]; !ok {
			all[key] = raw
		}
	}
	return marshal(all)
}

// marshal is json.Marshal without HTML escaping and without the trailing
// newline json.Encoder appends.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
