package models

import (
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// userAddressFlag marks the first byte of every key-holder address. Program
// derived addresses keep this bit clear, so the two spaces never overlap.
const userAddressFlag = 0x80

// NormalizeAddress validates a hex address and returns its checksummed form.
func NormalizeAddress(s string) (string, error) {
	if !common.IsHexAddress(s) {
		return "", ErrInvalidAddress
	}
	return common.HexToAddress(s).Hex(), nil
}

// NewUserAddress derives the ledger address for a registered user.
func NewUserAddress(userID uuid.UUID) string {
	digest := ethcrypto.Keccak256([]byte("user"), userID[:])
	addr := common.BytesToAddress(digest)
	addr[0] |= userAddressFlag
	return addr.Hex()
}

// IsProgramAddress reports whether addr lies in the keyless address space.
func IsProgramAddress(addr string) bool {
	if !common.IsHexAddress(addr) {
		return false
	}
	return common.HexToAddress(addr)[0]&userAddressFlag == 0
}

// AddressFromDigest maps a 32 byte digest onto an address (last 20 bytes).
func AddressFromDigest(digest []byte) common.Address {
	return common.BytesToAddress(digest)
}

// IsUserAddressSpace reports whether a raw address carries the key-holder flag.
func IsUserAddressSpace(addr common.Address) bool {
	return addr[0]&userAddressFlag != 0
}
