package service

import (
	"sync"
	"testing"

	"poinku/internal/domain"
	"poinku/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSettleCreditWritesLedger(t *testing.T) {
	db := testDB(t)
	settle := NewSettlementService(db, nil)
	u := createUser(t, db, "alice", 0)

	entry, err := settle.Settle(u.ID, 100, "Welcome bonus", domain.SourceAdmin)
	require.NoError(t, err)
	require.EqualValues(t, 100, entry.Points)
	require.Equal(t, domain.LedgerSuccess, entry.Status)

	require.EqualValues(t, 100, userPoints(t, db, u.ID))
	require.EqualValues(t, 100, ledgerSum(t, db, u.ID))
}

func TestSettleDebitInsufficient(t *testing.T) {
	db := testDB(t)
	settle := NewSettlementService(db, nil)
	u := createUser(t, db, "bob", 50)

	_, err := settle.Settle(u.ID, -60, "Overdraw attempt", domain.SourceAdmin)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// Nothing moved, nothing logged.
	require.EqualValues(t, 50, userPoints(t, db, u.ID))
	var count int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).
		Where("user_id = ?", u.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestSettleDebitToZero(t *testing.T) {
	db := testDB(t)
	settle := NewSettlementService(db, nil)
	u := createUser(t, db, "carol", 50)

	_, err := settle.Settle(u.ID, -50, "Spend all", domain.SourceAdmin)
	require.NoError(t, err)
	require.EqualValues(t, 0, userPoints(t, db, u.ID))
}

func TestSettleUnknownUser(t *testing.T) {
	db := testDB(t)
	settle := NewSettlementService(db, nil)

	_, err := settle.Settle(9999, 10, "Ghost credit", domain.SourceAdmin)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConcurrentSettlesKeepLedgerConsistent(t *testing.T) {
	db := testDB(t)
	settle := NewSettlementService(db, nil)
	u := createUser(t, db, "dave", 0)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := settle.Settle(u.ID, 1, "Concurrent credit", domain.SourceAdmin)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.EqualValues(t, n, userPoints(t, db, u.ID))
	require.EqualValues(t, n, ledgerSum(t, db, u.ID))
}

type captureNotifier struct {
	mu     sync.Mutex
	events []interface{}
}

func (c *captureNotifier) BroadcastToUser(userID uint, payload interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, payload)
}

func TestSettleNotifiesAfterCommit(t *testing.T) {
	db := testDB(t)
	notifier := &captureNotifier{}
	settle := NewSettlementService(db, notifier)
	u := createUser(t, db, "erin", 0)

	_, err := settle.Settle(u.ID, 25, "Credit", domain.SourceAdmin)
	require.NoError(t, err)
	require.Len(t, notifier.events, 1)

	payload, ok := notifier.events[0].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "balance_changed", payload["type"])
	require.EqualValues(t, 25, payload["points"])
}
