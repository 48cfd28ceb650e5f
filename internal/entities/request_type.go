// Package entities contains core business entities.
package entities

// RequestType is a catalog entry categorizing approval requests.
type RequestType struct {
	ID          int64
	Name        string
	Description *string
}
