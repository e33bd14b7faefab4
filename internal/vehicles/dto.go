package vehicles

import (
	"bytes"
	"encoding/json"
)

// decodeInputs accepts either a single vehicle object or an array.
func decodeInputs(body []byte) ([]Input, bool, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var many []Input
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return nil, true, err
		}
		return many, true, nil
	}
	var one Input
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return nil, false, err
	}
	return []Input{one}, false, nil
}
