package mcpserver

import jsonv2 "encoding/json/v2"

// mustMarshalJSON marshals v for use in contexts where encoding failure
// would indicate a programming error in a fixed internal type, not bad
// input (census/config snapshots are server-constructed, never user data).
func mustMarshalJSON(v any) string {
	raw, err := jsonv2.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
