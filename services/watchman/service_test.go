package watchman

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gate-dashboard/database"
	"gate-dashboard/models/gatelog"
	"gate-dashboard/models/gatepass"
	watchmanTypes "gate-dashboard/types/watchman"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var passCounter uint64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedPass(t *testing.T, db *gorm.DB, mutate func(*gatepass.GatePass)) *gatepass.GatePass {
	t.Helper()

	n := atomic.AddUint64(&passCounter, 1)
	p := &gatepass.GatePass{
		GatePassNumber:  fmt.Sprintf("GP-%06d", n),
		OrderNumber:     fmt.Sprintf("ORD-%04d", n),
		CustomerName:    "Asha Rao",
		CustomerContact: "+91 98450 11223",
		CustomerVehicle: "KA01AB1234",
		ProductName:     "Industrial Fan 600mm",
		Quantity:        12,
		DriverName:      "Ravi",
		DriverContact:   "+91 98450 44556",
		DeliveryType:    gatepass.DeliveryTypePartLoad,
		DispatchStatus:  gatepass.DispatchReadyForPickup,
		Status:          gatepass.StatusPending,
		IssuedAt:        time.Now().Add(-time.Hour),
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func entryLogCount(t *testing.T, db *gorm.DB, gatePassID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&gatelog.GateLog{}).
		Where("gate_pass_id = ? AND type = ?", gatePassID, gatelog.TypeEntry).
		Count(&count).Error)
	return count
}

func TestVerifyPickupSendIn(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	p := seedPass(t, db, nil)

	result, err := svc.VerifyPickup(p.ID, watchmanTypes.VerifyRequest{
		CustomerName: "asha rao",
		VehicleNo:    "KA01AB1234",
		DriverName:   "Ravi",
		Action:       ActionSendIn,
	}, "watchman1")
	require.NoError(t, err)

	assert.Equal(t, gatepass.StatusEnteredForPickup.String(), result.Status)
	require.NotNil(t, result.GatePass)
	assert.Equal(t, gatepass.StatusEnteredForPickup, result.GatePass.Status)
	assert.Equal(t, gatepass.DispatchEnteredForPickup, result.GatePass.DispatchStatus)
	assert.Nil(t, result.GatePass.VerifiedAt)

	assert.Equal(t, int64(1), entryLogCount(t, db, p.ID))
}

func TestVerifyPickupReleaseAfterSendIn(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	p := seedPass(t, db, nil)

	_, err := svc.VerifyPickup(p.ID, watchmanTypes.VerifyRequest{
		CustomerName: "Asha Rao",
		Action:       ActionSendIn,
	}, "watchman1")
	require.NoError(t, err)

	result, err := svc.VerifyPickup(p.ID, watchmanTypes.VerifyRequest{
		CustomerName: " ASHA  RAO ",
		Action:       ActionRelease,
	}, "watchman1")
	require.NoError(t, err)

	assert.Equal(t, gatepass.StatusVerified.String(), result.Status)
	require.NotNil(t, result.GatePass.VerifiedAt)

	// The send_in already logged the entry; release must not duplicate it.
	assert.Equal(t, int64(1), entryLogCount(t, db, p.ID))
}

func TestVerifyPickupReleaseDirect(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	p := seedPass(t, db, nil)

	// Omitted action defaults to release.
	result, err := svc.VerifyPickup(p.ID, watchmanTypes.VerifyRequest{
		CustomerName: "Asha Rao",
	}, "watchman1")
	require.NoError(t, err)

	assert.Equal(t, gatepass.StatusVerified.String(), result.Status)
	require.NotNil(t, result.GatePass.VerifiedAt)
	assert.Equal(t, int64(1), entryLogCount(t, db, p.ID))
}

func TestVerifyPickupIdentityMismatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	p := seedPass(t, db, nil)

	result, err := svc.VerifyPickup(p.ID, watchmanTypes.VerifyRequest{
		CustomerName: "Someone Else",
		Action:       ActionRelease,
	}, "watchman1")
	require.NoError(t, err)

	assert.Equal(t, StatusIdentityMismatch, result.Status)
	assert.Contains(t, result.Message, "Asha Rao")

	// The pass must be untouched.
	var reloaded gatepass.GatePass
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, gatepass.StatusPending, reloaded.Status)
	assert.Nil(t, reloaded.VerifiedAt)
	assert.Equal(t, int64(0), entryLogCount(t, db, p.ID))
}

func TestVerifyPickupTerminalStates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	verified := seedPass(t, db, func(p *gatepass.GatePass) {
		now := time.Now()
		p.Status = gatepass.StatusVerified
		p.VerifiedAt = &now
	})
	rejected := seedPass(t, db, func(p *gatepass.GatePass) {
		reason := "Invalid ID"
		p.Status = gatepass.StatusRejected
		p.RejectionReason = &reason
	})

	for _, pass := range []*gatepass.GatePass{verified, rejected} {
		for _, action := range []string{ActionSendIn, ActionRelease} {
			_, err := svc.VerifyPickup(pass.ID, watchmanTypes.VerifyRequest{
				CustomerName: "Asha Rao",
				Action:       action,
			}, "watchman1")
			assert.ErrorIs(t, err, ErrInvalidState)
		}
		_, err := svc.RejectPickup(pass.ID, "too late", "watchman1")
		assert.ErrorIs(t, err, ErrInvalidState)
	}
}

func TestVerifyPickupSendInTwice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	p := seedPass(t, db, nil)

	req := watchmanTypes.VerifyRequest{CustomerName: "Asha Rao", Action: ActionSendIn}
	_, err := svc.VerifyPickup(p.ID, req, "watchman1")
	require.NoError(t, err)

	_, err = svc.VerifyPickup(p.ID, req, "watchman1")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestVerifyPickupUnknownPassAndAction(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	p := seedPass(t, db, nil)

	_, err := svc.VerifyPickup(99999, watchmanTypes.VerifyRequest{CustomerName: "Asha Rao"}, "watchman1")
	assert.ErrorIs(t, err, ErrGatePassNotFound)

	_, err = svc.VerifyPickup(p.ID, watchmanTypes.VerifyRequest{CustomerName: "Asha Rao", Action: "loiter"}, "watchman1")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestRejectPickup(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	p := seedPass(t, db, nil)

	_, err := svc.RejectPickup(p.ID, "   ", "watchman1")
	assert.ErrorIs(t, err, ErrEmptyReason)

	rejected, err := svc.RejectPickup(p.ID, "Invalid ID", "watchman1")
	require.NoError(t, err)
	assert.Equal(t, gatepass.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Invalid ID", *rejected.RejectionReason)

	_, err = svc.VerifyPickup(p.ID, watchmanTypes.VerifyRequest{CustomerName: "Asha Rao"}, "watchman1")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRejectAfterSendIn(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	p := seedPass(t, db, nil)

	_, err := svc.VerifyPickup(p.ID, watchmanTypes.VerifyRequest{
		CustomerName: "Asha Rao",
		Action:       ActionSendIn,
	}, "watchman1")
	require.NoError(t, err)

	// Once the person is inside, the pass can only be released.
	_, err = svc.RejectPickup(p.ID, "changed my mind", "watchman1")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConcurrentReleaseOnlyOneWins(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	p := seedPass(t, db, nil)

	req := watchmanTypes.VerifyRequest{CustomerName: "Asha Rao", Action: ActionRelease}

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.VerifyPickup(p.ID, req, fmt.Sprintf("watchman%d", i))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrInvalidState)
		}
	}
	assert.Equal(t, 1, successes)

	var reloaded gatepass.GatePass
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, gatepass.StatusVerified, reloaded.Status)
	assert.Equal(t, int64(1), entryLogCount(t, db, p.ID))

	var events int64
	require.NoError(t, db.Model(&gatepass.GatePassStatusEvent{}).
		Where("gate_pass_id = ?", p.ID).Count(&events).Error)
	assert.Equal(t, int64(1), events)
}

func TestConcurrentRejectAndRelease(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	p := seedPass(t, db, nil)

	var wg sync.WaitGroup
	var verifyErr, rejectErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, verifyErr = svc.VerifyPickup(p.ID, watchmanTypes.VerifyRequest{
			CustomerName: "Asha Rao",
			Action:       ActionRelease,
		}, "watchman1")
	}()
	go func() {
		defer wg.Done()
		_, rejectErr = svc.RejectPickup(p.ID, "suspicious vehicle", "watchman2")
	}()
	wg.Wait()

	// Exactly one of the two operations may win.
	if verifyErr == nil {
		assert.ErrorIs(t, rejectErr, ErrInvalidState)
	} else {
		assert.ErrorIs(t, verifyErr, ErrInvalidState)
		require.NoError(t, rejectErr)
	}

	var reloaded gatepass.GatePass
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.True(t, reloaded.Status.IsTerminal())
}

func TestListPendingPickupsOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	newest := seedPass(t, db, func(p *gatepass.GatePass) {
		p.IssuedAt = time.Now().Add(-10 * time.Minute)
	})
	oldest := seedPass(t, db, func(p *gatepass.GatePass) {
		p.IssuedAt = time.Now().Add(-3 * time.Hour)
	})
	seedPass(t, db, func(p *gatepass.GatePass) {
		now := time.Now()
		p.Status = gatepass.StatusVerified
		p.VerifiedAt = &now
	})

	pending, err := svc.ListPendingPickups()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, oldest.ID, pending[0].ID)
	assert.Equal(t, newest.ID, pending[1].ID)
	assert.Equal(t, gatepass.DispatchReadyForPickup, pending[0].DispatchStatus)
}

func TestSearchGatePasses(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	seedPass(t, db, nil)
	other := seedPass(t, db, func(p *gatepass.GatePass) {
		p.CustomerName = "Meena Traders"
		p.CustomerVehicle = "MH12CD5678"
		p.ProductName = "Exhaust Blower 2HP"
	})

	all, err := svc.SearchGatePasses("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := svc.SearchGatePasses("meena")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, other.ID, byName[0].ID)

	byVehicle, err := svc.SearchGatePasses("mh12cd")
	require.NoError(t, err)
	require.Len(t, byVehicle, 1)

	byProduct, err := svc.SearchGatePasses("BLOWER")
	require.NoError(t, err)
	require.Len(t, byProduct, 1)

	none, err := svc.SearchGatePasses("does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSummaryCounts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	p1 := seedPass(t, db, nil)
	p2 := seedPass(t, db, nil)
	seedPass(t, db, nil)

	_, err := svc.VerifyPickup(p1.ID, watchmanTypes.VerifyRequest{CustomerName: "Asha Rao"}, "watchman1")
	require.NoError(t, err)
	_, err = svc.RejectPickup(p2.ID, "no matching order", "watchman1")
	require.NoError(t, err)

	summary, err := svc.Summary()
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.PendingTotal)
	assert.Equal(t, int64(1), summary.VerifiedTotal)
	assert.Equal(t, int64(1), summary.VerifiedToday)
	assert.Equal(t, int64(1), summary.RejectedTotal)
	assert.Equal(t, int64(1), summary.RejectedToday)
	assert.Equal(t, int64(1), summary.EntriesToday)
}
