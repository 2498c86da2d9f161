package prediction

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/joefazee/arena/models"
)

func TestToBetResponse(t *testing.T) {
	claimedAt := time.Now().UTC()
	bet := &models.UserBet{
		ID:            uuid.New(),
		MarketEventID: "evt",
		Owner:         testAlice,
		Slot:          2,
		OutcomeID:     models.OutcomeB,
		Amount:        2_500_000_000,
		Claimed:       true,
		ClaimedAt:     &claimedAt,
	}

	resp := ToBetResponse(bet, newTestEngine())
	assert.Equal(t, bet.ID, resp.ID)
	assert.Equal(t, models.OutcomeB, resp.Outcome)
	assert.Equal(t, "2.5", resp.DisplayAmount.String())
	assert.True(t, resp.Claimed)
	assert.Equal(t, &claimedAt, resp.ClaimedAt)
}

func TestToPayoutResponse(t *testing.T) {
	p := models.Payout{Stake: 100, TotalPool: 400, WinningPool: 100, TotalPayout: 400, DevFee: 40, UserPayout: 360}

	resp := ToPayoutResponse(p, newTestEngine())
	assert.Equal(t, uint64(40), resp.DevFee)
	assert.Equal(t, "0.00000036", resp.DisplayUserPayout.String())
}
