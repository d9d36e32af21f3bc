package enum

// TransactionType distinguishes a sale from a purchase. Stored as its
// string form so the persisted rows stay readable ('Sale' / 'Purchase').
type TransactionType string

const (
	TransactionTypeSale     TransactionType = "Sale"
	TransactionTypePurchase TransactionType = "Purchase"
)

func (t TransactionType) String() string {
	return string(t)
}

// Valid reports whether the value is one of the known types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeSale || t == TransactionTypePurchase
}

// BillPrefix returns the prefix used when minting bill numbers.
func (t TransactionType) BillPrefix() string {
	if t == TransactionTypePurchase {
		return "P"
	}
	return "S"
}
