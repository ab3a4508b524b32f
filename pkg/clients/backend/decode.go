package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// ErrUnexpectedShape means a list endpoint returned something that is neither
// a JSON array nor a paginated envelope.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// decodeList accepts a bare array or a {results: [...]} envelope and returns
// the items.
func decodeList[T any](op string, body []byte) ([]T, error) {
	page, err := decodePage[T](op, body)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// decodePage decodes a paginated envelope. A bare array is taken as a single,
// final page.
func decodePage[T any](op string, body []byte) (models.Page[T], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return models.Page[T]{}, fmt.Errorf("%s: %w: empty body", op, ErrUnexpectedShape)
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return models.Page[T]{}, fmt.Errorf("%s: decode list: %w", op, err)
		}
		return models.Page[T]{Count: len(items), Results: items}, nil
	case '{':
		var envelope struct {
			models.Page[T]
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return models.Page[T]{}, fmt.Errorf("%s: decode page: %w", op, err)
		}
		results := bytes.TrimSpace(envelope.Results)
		if len(results) == 0 || results[0] != '[' {
			return models.Page[T]{}, fmt.Errorf("%s: %w: object without a results array", op, ErrUnexpectedShape)
		}
		page := envelope.Page
		if err := json.Unmarshal(results, &page.Results); err != nil {
			return models.Page[T]{}, fmt.Errorf("%s: decode results: %w", op, err)
		}
		return page, nil
	default:
		return models.Page[T]{}, fmt.Errorf("%s: %w", op, ErrUnexpectedShape)
	}
}

func decodeObject[T any](op string, body []byte) (T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("%s: decode: %w", op, err)
	}
	return out, nil
}
