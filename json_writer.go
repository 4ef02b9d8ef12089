package wenmoon

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonObjectWriter helps construct a JSON object with a specific field order,
// so persisted lines stay diff-friendly. Its zero value is ready to use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a "key":value pair to the object.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	valueJSON, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	keyJSON, _ := json.Marshal(key)
	w.Write(keyJSON)
	w.WriteString(":")
	w.Write(valueJSON)
	w.WriteString(",")
	return w
}

// Optional adds a "key":value pair only if value is not the zero value of its
// type (empty string, false, zero number).
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	switch v := value.(type) {
	case string:
		if v == "" {
			return w
		}
	case bool:
		if !v {
			return w
		}
	case int:
		if v == 0 {
			return w
		}
	case float64:
		if v == 0 {
			return w
		}
	}
	return w.Append(key, value)
}

// MarshalJSON terminates and returns the object.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	var out bytes.Buffer
	out.WriteString("{")
	out.Write(content)
	out.WriteString("}")
	return out.Bytes(), nil
}
