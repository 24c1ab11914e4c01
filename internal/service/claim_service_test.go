package service

import (
	"strings"
	"testing"
	"time"

	"poinku/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestRedeemNormalizesCase(t *testing.T) {
	db := testDB(t)
	svc := NewClaimService(db, NewSettlementService(db, nil))
	u := createUser(t, db, "alice", 0)

	_, err := svc.Create("WELCOME1", 50, nil, 0)
	require.NoError(t, err)

	entry, err := svc.Redeem(u.ID, "  welcome1 ")
	require.NoError(t, err)
	require.EqualValues(t, 50, entry.Points)
	require.EqualValues(t, 50, userPoints(t, db, u.ID))

	_, err = svc.Redeem(u.ID, "WELCOME1")
	require.ErrorIs(t, err, domain.ErrAlreadyUsed)
	require.EqualValues(t, 50, userPoints(t, db, u.ID))
}

func TestRedeemUnknownCode(t *testing.T) {
	db := testDB(t)
	svc := NewClaimService(db, NewSettlementService(db, nil))
	u := createUser(t, db, "bob", 0)

	_, err := svc.Redeem(u.ID, "NOPE")
	require.ErrorIs(t, err, domain.ErrInvalidCode)
	_, err = svc.Redeem(u.ID, "   ")
	require.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestRedeemExpired(t *testing.T) {
	db := testDB(t)
	svc := NewClaimService(db, NewSettlementService(db, nil))
	u := createUser(t, db, "carol", 0)

	past := time.Now().Add(-time.Hour)
	_, err := svc.Create("OLD", 50, &past, 0)
	require.NoError(t, err)

	_, err = svc.Redeem(u.ID, "OLD")
	require.ErrorIs(t, err, domain.ErrExpired)
	require.EqualValues(t, 0, userPoints(t, db, u.ID))
}

func TestRedeemMaxClaims(t *testing.T) {
	db := testDB(t)
	svc := NewClaimService(db, NewSettlementService(db, nil))
	first := createUser(t, db, "dave", 0)
	second := createUser(t, db, "erin", 0)

	_, err := svc.Create("LIMITED", 20, nil, 1)
	require.NoError(t, err)

	_, err = svc.Redeem(first.ID, "LIMITED")
	require.NoError(t, err)

	_, err = svc.Redeem(second.ID, "LIMITED")
	require.ErrorIs(t, err, domain.ErrMaxClaimsReached)
	require.EqualValues(t, 0, userPoints(t, db, second.ID))
}

func TestCreateGeneratesCode(t *testing.T) {
	db := testDB(t)
	svc := NewClaimService(db, NewSettlementService(db, nil))

	cc, err := svc.Create("", 10, nil, 0)
	require.NoError(t, err)
	require.Len(t, cc.Code, 8)
	require.Equal(t, strings.ToUpper(cc.Code), cc.Code)

	_, err = svc.Create("x", 0, nil, 0)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}
