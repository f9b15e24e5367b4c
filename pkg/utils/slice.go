// Package utils holds generic helpers for walking nested OCR annotations.
package utils

import "slices"

// Map returns fn applied to each element, in order.
func Map[T, U any](slice []T, fn func(T) U) []U {
	result := make([]U, len(slice))
	for i, v := range slice {
		result[i] = fn(v)
	}
	return result
}

// FlatMap concatenates the slices fn returns. E.g., pages to blocks.
func FlatMap[T, U any](slice []T, fn func(T) []U) []U {
	var result []U
	for _, v := range slice {
		result = append(result, fn(v)...)
	}
	return result
}

func Reduce[T, U any](slice []T, fn func(U, T) U, initial U) U {
	result := initial
	for _, v := range slice {
		result = fn(result, v)
	}
	return result
}

func Contains[T comparable](slice []T, value T) bool {
	return slices.Contains(slice, value)
}
