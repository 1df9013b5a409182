package main

import (
	"encoding/json"
	"fmt"
	"io"

	"marketfetcher/internal/market"
)

// settle blocks on a pending call, passing a synchronous rejection straight through
func settle[T any](pending *market.Pending[T], err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	r := pending.Result()
	return r.Value, r.Err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
