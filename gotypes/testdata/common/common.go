// Package common holds types shared by other packages.
package common

// ID identifies an entity.
type ID string

// Page is one page of results.
type Page[T any] struct {
	Items []T     `json:"items"`
	Next  *string `json:"next"`
}
