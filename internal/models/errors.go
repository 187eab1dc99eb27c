package models

import "errors"

// Domain errors. Adapters check for the first two before calling into the
// domain and treat them as silent no-ops.
var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrNoSelection       = errors.New("no menu item selected")
	ErrTransactionMisuse = errors.New("payment transaction already processed")
	ErrInvalidMenuItem   = errors.New("invalid menu item")
)
