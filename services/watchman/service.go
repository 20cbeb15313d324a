package watchman

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gate-dashboard/models/gatelog"
	gatepassModel "gate-dashboard/models/gatepass"
	watchmanTypes "gate-dashboard/types/watchman"
	"gate-dashboard/utils"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Sentinel errors surfaced by the verification workflow. The controller maps
// them to HTTP status codes; identity mismatch is NOT among them because it
// is a business outcome carried in the VerifyResult.
var (
	ErrGatePassNotFound = errors.New("gate pass not found")
	ErrInvalidState     = errors.New("gate pass does not allow this action in its current status")
	ErrEmptyReason      = errors.New("rejection reason is required")
	ErrUnknownAction    = errors.New("action must be either 'send_in' or 'release'")
)

// Action values accepted by VerifyPickup
const (
	ActionSendIn  = "send_in"
	ActionRelease = "release"
)

// StatusIdentityMismatch flags a failed identity check in a VerifyResult
const StatusIdentityMismatch = "identity_mismatch"

// Service implements the pickup verification workflow over the gate pass
// store and the gate movement log.
type Service struct {
	DB *gorm.DB
}

// NewService creates a new watchman service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// VerifyPickup checks the submitted identity against the gate pass and, on a
// match, applies the requested transition. The status flip, the movement-log
// append and the status event are one transaction, and the flip itself is a
// guarded UPDATE keyed on the expected prior status so concurrent requests
// on the same pass cannot both transition it.
func (s *Service) VerifyPickup(gatePassID uint, req watchmanTypes.VerifyRequest, actor string) (*watchmanTypes.VerifyResult, error) {
	action := req.Action
	if action == "" {
		// Older gate screens post without an action.
		action = ActionRelease
	}
	if action != ActionSendIn && action != ActionRelease {
		return nil, ErrUnknownAction
	}

	var pass gatepassModel.GatePass
	if err := s.DB.First(&pass, gatePassID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGatePassNotFound
		}
		return nil, err
	}

	if pass.Status.IsTerminal() {
		return nil, ErrInvalidState
	}
	if action == ActionSendIn && !pass.Status.CanSendIn() {
		return nil, ErrInvalidState
	}
	if action == ActionRelease && !pass.Status.CanRelease() {
		return nil, ErrInvalidState
	}

	if !utils.IdentityMatches(req.CustomerName, pass.CustomerName) {
		return &watchmanTypes.VerifyResult{
			Status: StatusIdentityMismatch,
			Message: fmt.Sprintf("Identity mismatch: gate pass %s is issued to '%s', got '%s'. Goods not released.",
				pass.GatePassNumber, pass.CustomerName, strings.TrimSpace(req.CustomerName)),
		}, nil
	}

	if action == ActionSendIn {
		return s.sendIn(&pass, req, actor)
	}
	return s.release(&pass, req, actor)
}

func (s *Service) sendIn(pass *gatepassModel.GatePass, req watchmanTypes.VerifyRequest, actor string) (*watchmanTypes.VerifyResult, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&gatepassModel.GatePass{}).
			Where("id = ? AND status = ?", pass.ID, gatepassModel.StatusPending).
			Updates(map[string]interface{}{
				"status":          gatepassModel.StatusEnteredForPickup,
				"dispatch_status": gatepassModel.DispatchEnteredForPickup,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race: another request transitioned the pass first.
			return ErrInvalidState
		}

		if err := tx.Create(entryLogForPass(pass, req)).Error; err != nil {
			return err
		}
		return recordStatusEvent(tx, pass.ID, gatepassModel.StatusEnteredForPickup, req.Note, actor)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.reload(pass.ID)
	if err != nil {
		return nil, err
	}
	return &watchmanTypes.VerifyResult{
		Status:   updated.Status.String(),
		Message:  fmt.Sprintf("Identity verified. %s sent in to collect gate pass %s.", updated.CustomerName, updated.GatePassNumber),
		GatePass: updated,
	}, nil
}

func (s *Service) release(pass *gatepassModel.GatePass, req watchmanTypes.VerifyRequest, actor string) (*watchmanTypes.VerifyResult, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		verifiedAt := time.Now()
		res := tx.Model(&gatepassModel.GatePass{}).
			Where("id = ? AND status IN ?", pass.ID,
				[]gatepassModel.Status{gatepassModel.StatusPending, gatepassModel.StatusEnteredForPickup}).
			Updates(map[string]interface{}{
				"status":      gatepassModel.StatusVerified,
				"verified_at": verifiedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidState
		}

		// A pass sent in earlier already has its entry row; do not duplicate it.
		var entries int64
		if err := tx.Model(&gatelog.GateLog{}).
			Where("gate_pass_id = ? AND type = ?", pass.ID, gatelog.TypeEntry).
			Count(&entries).Error; err != nil {
			return err
		}
		if entries == 0 {
			if err := tx.Create(entryLogForPass(pass, req)).Error; err != nil {
				return err
			}
		}
		return recordStatusEvent(tx, pass.ID, gatepassModel.StatusVerified, req.Note, actor)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.reload(pass.ID)
	if err != nil {
		return nil, err
	}
	return &watchmanTypes.VerifyResult{
		Status:   updated.Status.String(),
		Message:  fmt.Sprintf("Goods released to %s. Gate pass %s verified.", updated.CustomerName, updated.GatePassNumber),
		GatePass: updated,
	}, nil
}

// RejectPickup refuses a pending pickup for the given reason. Terminal and
// entered_for_pickup passes cannot be rejected.
func (s *Service) RejectPickup(gatePassID uint, rejectionReason, actor string) (*gatepassModel.GatePass, error) {
	reason := strings.TrimSpace(rejectionReason)
	if reason == "" {
		return nil, ErrEmptyReason
	}

	var pass gatepassModel.GatePass
	if err := s.DB.First(&pass, gatePassID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGatePassNotFound
		}
		return nil, err
	}
	if !pass.Status.CanReject() {
		return nil, ErrInvalidState
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&gatepassModel.GatePass{}).
			Where("id = ? AND status = ?", pass.ID, gatepassModel.StatusPending).
			Updates(map[string]interface{}{
				"status":           gatepassModel.StatusRejected,
				"rejection_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidState
		}
		return recordStatusEvent(tx, pass.ID, gatepassModel.StatusRejected, reason, actor)
	})
	if err != nil {
		return nil, err
	}

	return s.reload(pass.ID)
}

// ListPendingPickups returns passes awaiting verification, oldest first, so
// the watchman screen shows the longest-waiting customer on top. The
// dispatch status rides along so the screen can show Ready vs Not Ready.
func (s *Service) ListPendingPickups() ([]gatepassModel.GatePass, error) {
	passes := []gatepassModel.GatePass{}
	err := s.DB.
		Where("status = ?", gatepassModel.StatusPending).
		Order("issued_at ASC, id ASC").
		Find(&passes).Error
	if err != nil {
		return nil, err
	}
	return passes, nil
}

// SearchGatePasses returns passes of every status, newest first. A non-empty
// query filters case-insensitively across customer name, order number,
// product name and vehicle number.
func (s *Service) SearchGatePasses(query string) ([]gatepassModel.GatePass, error) {
	passes := []gatepassModel.GatePass{}
	db := s.DB.Order("issued_at DESC, id DESC")

	q := strings.TrimSpace(query)
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where(
			"LOWER(customer_name) LIKE ? OR LOWER(order_number) LIKE ? OR LOWER(product_name) LIKE ? OR LOWER(customer_vehicle) LIKE ?",
			like, like, like, like)
	}

	if err := db.Find(&passes).Error; err != nil {
		return nil, err
	}
	return passes, nil
}

// Summary aggregates watchman activity for the dashboard header. Counts are
// computed from the store and the movement log at request time; nothing is
// cached, so the numbers stay correct under concurrent updates. "Today"
// means since local midnight.
func (s *Service) Summary() (*watchmanTypes.Summary, error) {
	startOfDay := now.BeginningOfDay()
	summary := &watchmanTypes.Summary{
		Date: startOfDay.Format("2006-01-02"),
	}

	type countQuery struct {
		dest  *int64
		model interface{}
		where string
		args  []interface{}
	}

	queries := []countQuery{
		{&summary.PendingTotal, &gatepassModel.GatePass{}, "status = ?",
			[]interface{}{gatepassModel.StatusPending}},
		{&summary.PendingToday, &gatepassModel.GatePass{}, "status = ? AND issued_at >= ?",
			[]interface{}{gatepassModel.StatusPending, startOfDay}},
		{&summary.VerifiedTotal, &gatepassModel.GatePass{}, "status = ?",
			[]interface{}{gatepassModel.StatusVerified}},
		{&summary.VerifiedToday, &gatepassModel.GatePassStatusEvent{}, "status = ? AND created_at >= ?",
			[]interface{}{gatepassModel.StatusVerified, startOfDay}},
		{&summary.RejectedTotal, &gatepassModel.GatePass{}, "status = ?",
			[]interface{}{gatepassModel.StatusRejected}},
		{&summary.RejectedToday, &gatepassModel.GatePassStatusEvent{}, "status = ? AND created_at >= ?",
			[]interface{}{gatepassModel.StatusRejected, startOfDay}},
		{&summary.EntriesToday, &gatelog.GateLog{}, "type = ? AND created_at >= ?",
			[]interface{}{gatelog.TypeEntry, startOfDay}},
	}

	for _, q := range queries {
		if err := s.DB.Model(q.model).Where(q.where, q.args...).Count(q.dest).Error; err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func (s *Service) reload(id uint) (*gatepassModel.GatePass, error) {
	var pass gatepassModel.GatePass
	if err := s.DB.First(&pass, id).Error; err != nil {
		return nil, err
	}
	return &pass, nil
}

// entryLogForPass builds the movement row for a pickup entry. The driver is
// the person physically at the gate when one is named; otherwise the
// customer themselves.
func entryLogForPass(pass *gatepassModel.GatePass, req watchmanTypes.VerifyRequest) *gatelog.GateLog {
	name := strings.TrimSpace(req.DriverName)
	phone := pass.DriverContact
	if name == "" {
		name = pass.CustomerName
		phone = pass.CustomerContact
	}

	details := fmt.Sprintf("Pickup entry for gate pass %s (order %s)", pass.GatePassNumber, pass.OrderNumber)
	if vehicle := strings.TrimSpace(req.VehicleNo); vehicle != "" {
		details += ", vehicle " + vehicle
	}
	if note := strings.TrimSpace(req.Note); note != "" {
		details += ": " + note
	}

	return &gatelog.GateLog{
		PersonName: name,
		Phone:      phone,
		GatePassID: &pass.ID,
		Type:       gatelog.TypeEntry,
		Details:    details,
	}
}

func recordStatusEvent(tx *gorm.DB, gatePassID uint, status gatepassModel.Status, note, actor string) error {
	if actor == "" {
		actor = "system"
	}
	return tx.Create(&gatepassModel.GatePassStatusEvent{
		GatePassID: gatePassID,
		Status:     status,
		Note:       note,
		CreatedBy:  actor,
	}).Error
}
