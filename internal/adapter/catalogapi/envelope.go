package catalogapi

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrUnexpectedShape = errors.New("unexpected response shape")

// listEnvelope is the pagination wrapper some endpoints respond with.
type listEnvelope[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// decodeList resolves the backend's two list shapes once, at the fetch
// boundary: a bare JSON array, or an envelope exposing a results array.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, ErrUnexpectedShape
	}

	switch trimmed[0] {
	case '[':
		var vs []T
		if err := json.Unmarshal(trimmed, &vs); err != nil {
			return nil, err
		}
		return vs, nil
	case '{':
		var env listEnvelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, err
		}
		return env.Results, nil
	}
	return nil, ErrUnexpectedShape
}
