package escrow

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/arena/models"
)

func newTestDeriver(t *testing.T) *Deriver {
	t.Helper()
	d, err := NewDeriver(GetDefaultConfig())
	require.NoError(t, err)
	return d
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, GetDefaultConfig().Validate())
	assert.ErrorIs(t, (&Config{ProgramSeed: "short"}).Validate(), models.ErrInvalidProgramSeed)

	_, err := NewDeriver(&Config{})
	assert.ErrorIs(t, err, models.ErrInvalidProgramSeed)
}

func TestDeriver_EscrowAddress(t *testing.T) {
	d := newTestDeriver(t)

	addr1, nonce1, err := d.EscrowAddress("nba-lal-bos-2025")
	require.NoError(t, err)
	addr2, nonce2, err := d.EscrowAddress("nba-lal-bos-2025")
	require.NoError(t, err)

	assert.Equal(t, addr1, addr2)
	assert.Equal(t, nonce1, nonce2)
	assert.True(t, models.IsProgramAddress(addr1))
	assert.True(t, d.Verify("nba-lal-bos-2025", addr1, nonce1))

	other, _, err := d.EscrowAddress("nba-lal-bos-2026")
	require.NoError(t, err)
	assert.NotEqual(t, addr1, other)
}

func TestDeriver_SeedScopesAddresses(t *testing.T) {
	d1 := newTestDeriver(t)
	d2, err := NewDeriver(&Config{ProgramSeed: "another-program-seed-that-is-long-enough"})
	require.NoError(t, err)

	a1, _, err := d1.EscrowAddress("evt")
	require.NoError(t, err)
	a2, _, err := d2.EscrowAddress("evt")
	require.NoError(t, err)
	assert.NotEqual(t, a1, a2)
}

func TestDeriver_TagsDoNotCollide(t *testing.T) {
	d := newTestDeriver(t)

	market, err := d.MarketAddress("evt-1")
	require.NoError(t, err)
	vault, _, err := d.EscrowAddress("evt-1")
	require.NoError(t, err)

	assert.NotEqual(t, market, vault)
	assert.True(t, models.IsProgramAddress(market))
}

func TestDeriver_NonceIsFirstProgramAddressFromTop(t *testing.T) {
	d := newTestDeriver(t)

	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		_, nonce, err := d.Find(TagVault, id)
		require.NoError(t, err)
		for n := 255; n > int(nonce); n-- {
			assert.True(t, models.IsUserAddressSpace(d.digest(TagVault, id, uint8(n))),
				"nonce %d for %s should have been skipped", n, id)
		}
	}
}

func TestDeriver_RejectsInvalidEventID(t *testing.T) {
	d := newTestDeriver(t)

	_, _, err := d.EscrowAddress("")
	assert.ErrorIs(t, err, models.ErrInvalidEventID)

	_, err = d.MarketAddress("this-event-id-is-far-too-long-to-be-a-seed")
	assert.ErrorIs(t, err, models.ErrInvalidEventID)
}

func TestDeriver_Verify(t *testing.T) {
	d := newTestDeriver(t)
	addr, nonce, err := d.EscrowAddress("evt")
	require.NoError(t, err)

	assert.False(t, d.Verify("evt", addr, nonce-1))
	assert.False(t, d.Verify("evt2", addr, nonce))
	assert.False(t, d.Verify("evt", "0x0000000000000000000000000000000000000001", nonce))
	assert.False(t, d.Verify("evt", "junk", nonce))
}

func TestDeriver_Authorize(t *testing.T) {
	d := newTestDeriver(t)
	addr, nonce, err := d.EscrowAddress("evt")
	require.NoError(t, err)

	market := &models.Market{EventID: "evt", EscrowAddress: addr, EscrowNonce: nonce}
	capability, err := d.Authorize(market)
	require.NoError(t, err)

	assert.False(t, capability.IsZero())
	assert.Equal(t, "evt", capability.EventID())
	assert.Equal(t, common.HexToAddress(addr).Hex(), capability.Address())
	assert.True(t, capability.Permits(addr))
	assert.False(t, capability.Permits("0x0000000000000000000000000000000000000001"))

	market.EscrowAddress = "0x0000000000000000000000000000000000000001"
	_, err = d.Authorize(market)
	assert.ErrorIs(t, err, models.ErrEscrowDebitDenied)
}

func TestCapability_ZeroValuePermitsNothing(t *testing.T) {
	var c Capability
	assert.True(t, c.IsZero())
	assert.Equal(t, "", c.Address())
	assert.False(t, c.Permits("0x0000000000000000000000000000000000000000"))
}
