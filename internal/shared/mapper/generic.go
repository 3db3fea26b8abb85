// Package mapper provides generic slice-mapping helpers for the
// persistence anti-corruption layer.
package mapper

import "fmt"

// MapSlicePtrWithID maps a slice of pointers with error handling, skipping
// nil inputs and outputs. The item ID is included in error messages for
// context.
func MapSlicePtrWithID[T any, R any, ID any](
	items []*T,
	mapFunc func(*T) (*R, error),
	getID func(*T) ID,
) ([]*R, error) {
	if items == nil {
		return nil, nil
	}

	result := make([]*R, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		mapped, err := mapFunc(item)
		if err != nil {
			return nil, fmt.Errorf("failed to map item ID %v: %w", getID(item), err)
		}
		if mapped != nil {
			result = append(result, mapped)
		}
	}
	return result, nil
}

// MapSlice applies a mapper function to each element of a slice. Returns
// nil if the input slice is nil.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	if items == nil {
		return nil
	}

	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}
