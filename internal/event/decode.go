package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DecodePayload returns an event payload as T. MemoryBus publishers hand
// over the struct itself or a pointer to it; any other shape, such as a map
// decoded from a JSON log line, goes through a JSON round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var result T
	if input == nil {
		return result, errors.New(ErrMsgNilPayload)
	}
	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("%s: %w", ErrMsgEncodePayload, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("%s %T: %w", ErrMsgDecodePayload, result, err)
	}
	return result, nil
}
