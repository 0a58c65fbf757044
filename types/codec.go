package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeProject parses a project file. Unknown fields are rejected so that
// nothing is silently dropped on the way back out.
func DecodeProject(data []byte) (*RawProject, error) {
	var raw RawProject
	if err := decodeStrict(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	return &raw, nil
}

// DecodeComponent parses a single component, as exported by the editor.
func DecodeComponent(data []byte) (*RawComponent, error) {
	var raw RawComponent
	if err := decodeStrict(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse component: %w", err)
	}
	return &raw, nil
}

// Encode marshals any raw shape with the file's two-space indentation.
func Encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after JSON value")
	}
	return nil
}
