package escrow

import "github.com/ethereum/go-ethereum/common"

// Capability is proof that the program re-derived an escrow address. Its
// fields are unexported so values can only come from Deriver.Authorize; the
// zero value permits nothing.
type Capability struct {
	address common.Address
	eventID string
}

// Address returns the escrow this capability may debit
func (c Capability) Address() string {
	if c.IsZero() {
		return ""
	}
	return c.address.Hex()
}

// EventID returns the market the capability was issued for
func (c Capability) EventID() string {
	return c.eventID
}

// IsZero reports whether the capability was never issued
func (c Capability) IsZero() bool {
	return c.eventID == "" && c.address == (common.Address{})
}

// Permits reports whether the capability covers a debit from address
func (c Capability) Permits(address string) bool {
	if c.IsZero() || !common.IsHexAddress(address) {
		return false
	}
	return common.HexToAddress(address) == c.address
}
