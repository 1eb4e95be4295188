package vidtube

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The backend does not use one response envelope. Depending on the endpoint a
// payload arrives as {"statusCode":200,"data":…,"message":"ok"}, as
// {"data":{"docs":[…]}}, or as a bare array/object. decodeInto normalizes all
// of them once, at the API boundary, so call sites never shape-check.

type envelope struct {
	StatusCode *int            `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    *bool           `json:"success"`
}

// listKeys are the wrapper keys paginated list payloads hide behind.
var listKeys = []string{"docs", "videos", "comments", "playlists", "subscriptions", "items"}

func decodeInto(body []byte, dest any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	payload := json.RawMessage(trimmed)
	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		if env.Data != nil {
			payload = env.Data
		}
	}

	if err := json.Unmarshal(payload, dest); err == nil {
		return nil
	}

	// One more level of wrapping: {"docs": […]} style list containers.
	if unwrapped, ok := unwrapList(payload); ok {
		if err := json.Unmarshal(unwrapped, dest); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("decode response: payload shape not recognized")
}

func unwrapList(raw json.RawMessage) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}
	for _, key := range listKeys {
		if inner, ok := fields[key]; ok {
			if t := bytes.TrimSpace(inner); len(t) > 0 && t[0] == '[' {
				return inner, true
			}
		}
	}
	return nil, false
}

// serverMessage extracts the backend's human-readable error message when the
// body carries one.
func serverMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(body), &env); err != nil {
		return ""
	}
	return env.Message
}
