package escrow

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/joefazee/arena/models"
)

// Derivation tags. Each tag names an independent address space.
const (
	TagMarket = "market"
	TagVault  = "vault"
)

// ErrNoProgramAddress is returned when no nonce yields a keyless address.
var ErrNoProgramAddress = errors.New("unable to find a program address for seeds")

// Deriver computes deterministic, keyless addresses for markets and their
// escrow vaults. The same inputs always give the same address.
type Deriver struct {
	seed []byte
}

// NewDeriver creates a deriver bound to the configured program seed
func NewDeriver(cfg *Config) (*Deriver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Deriver{seed: []byte(cfg.ProgramSeed)}, nil
}

func (d *Deriver) digest(tag, eventID string, nonce uint8) common.Address {
	h := ethcrypto.Keccak256(
		d.seed,
		[]byte(tag),
		[]byte{byte(len(eventID))},
		[]byte(eventID),
		[]byte{nonce},
	)
	return models.AddressFromDigest(h)
}

// Find searches nonces from 255 down and returns the first address that
// lands outside the user address space, together with that nonce.
func (d *Deriver) Find(tag, eventID string) (common.Address, uint8, error) {
	if err := models.ValidateEventID(eventID); err != nil {
		return common.Address{}, 0, err
	}
	for n := 255; n >= 0; n-- {
		addr := d.digest(tag, eventID, uint8(n))
		if !models.IsUserAddressSpace(addr) {
			return addr, uint8(n), nil
		}
	}
	return common.Address{}, 0, ErrNoProgramAddress
}

// MarketAddress returns the canonical market address for an event
func (d *Deriver) MarketAddress(eventID string) (string, error) {
	addr, _, err := d.Find(TagMarket, eventID)
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}

// EscrowAddress returns the vault address for an event and its nonce
func (d *Deriver) EscrowAddress(eventID string) (string, uint8, error) {
	addr, nonce, err := d.Find(TagVault, eventID)
	if err != nil {
		return "", 0, err
	}
	return addr.Hex(), nonce, nil
}

// Verify re-derives the vault address from an event id and stored nonce
func (d *Deriver) Verify(eventID, address string, nonce uint8) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	addr := d.digest(TagVault, eventID, nonce)
	if models.IsUserAddressSpace(addr) {
		return false
	}
	return addr == common.HexToAddress(address)
}

// Authorize issues the capability to debit a market's escrow. It fails
// unless the stored escrow address and nonce re-derive exactly.
func (d *Deriver) Authorize(market *models.Market) (Capability, error) {
	if !d.Verify(market.EventID, market.EscrowAddress, market.EscrowNonce) {
		return Capability{}, models.ErrEscrowDebitDenied
	}
	return Capability{
		address: common.HexToAddress(market.EscrowAddress),
		eventID: market.EventID,
	}, nil
}
