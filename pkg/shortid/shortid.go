package shortid

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Uppercase alphanumerics keep the codes readable on printed receipts and badges.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	InvoiceLength  = 6
	EmployeeLength = 5
)

// NewInvoiceNo generates the 6-character human-readable invoice number.
// Uniqueness is enforced by the store's unique index; a collision surfaces
// as a Conflict from the repository layer.
func NewInvoiceNo() (string, error) {
	return gonanoid.Generate(alphabet, InvoiceLength)
}

// NewEmployeeCode generates the 5-character employee identifier.
func NewEmployeeCode() (string, error) {
	return gonanoid.Generate(alphabet, EmployeeLength)
}
