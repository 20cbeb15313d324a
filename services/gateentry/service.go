package gateentry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gate-dashboard/models/gatelog"
	personModel "gate-dashboard/models/person"
	gateentryTypes "gate-dashboard/types/gateentry"
	"gate-dashboard/utils"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Sentinel errors surfaced by the gate entry workflow
var (
	ErrPersonNotFound  = errors.New("no registered person with this phone")
	ErrPhoneRegistered = errors.New("phone number is already registered")
	ErrInvalidPhone    = errors.New("phone number is not valid")
	ErrAlreadyOut      = errors.New("person already has an open going-out")
	ErrNoOpenGoingOut  = errors.New("no open going-out found for this person")
	ErrUnknownReason   = errors.New("going-out reason is not one of the accepted values")
)

// Service implements the person registry and the gate movement log
type Service struct {
	DB *gorm.DB
}

// NewService creates a new gate entry service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// RegisterPerson adds an identity to the gate registry, keyed by phone
func (s *Service) RegisterPerson(name, phone, photo string) (*personModel.Person, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if !utils.IsValidPhone(phone) {
		return nil, ErrInvalidPhone
	}

	var existing personModel.Person
	err := s.DB.Where("phone = ?", phone).First(&existing).Error
	if err == nil {
		return nil, ErrPhoneRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := personModel.Person{
		Name:  name,
		Phone: phone,
	}
	if photo != "" {
		p.Photo = &photo
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPersons returns all registered persons, newest first
func (s *Service) ListPersons() ([]personModel.Person, error) {
	persons := []personModel.Person{}
	if err := s.DB.Order("created_at DESC, id DESC").Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

// DeletePerson removes a registry entry. Movement history is kept: the log
// rows snapshot name and phone, and their person reference is nulled here.
// A person with an open going-out cannot be deleted until they come back.
func (s *Service) DeletePerson(phone string) error {
	p, err := s.findByPhone(phone)
	if err != nil {
		return err
	}

	open, err := s.openGoingOut(p.ID)
	if err != nil {
		return err
	}
	if open != nil {
		return ErrAlreadyOut
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&gatelog.GateLog{}).
			Where("person_id = ?", p.ID).
			Update("person_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
}

// RecordEntry appends a manual entry event for the person with this phone
func (s *Service) RecordEntry(phone, details string) (*gatelog.GateLog, error) {
	return s.recordMovement(phone, gatelog.TypeEntry, details)
}

// RecordExit appends a manual exit event for the person with this phone
func (s *Service) RecordExit(phone, details string) (*gatelog.GateLog, error) {
	return s.recordMovement(phone, gatelog.TypeExit, details)
}

func (s *Service) recordMovement(phone string, logType gatelog.LogType, details string) (*gatelog.GateLog, error) {
	p, err := s.findByPhone(phone)
	if err != nil {
		return nil, err
	}

	entry := gatelog.GateLog{
		PersonID:   &p.ID,
		PersonName: p.Name,
		Phone:      p.Phone,
		Type:       logType,
		Details:    details,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// RecordGoingOut opens a temporary absence for an admitted person. Only one
// going-out can be open at a time; a second attempt fails until the person
// comes back.
func (s *Service) RecordGoingOut(phone, reason, details string) (*gatelog.GateLog, error) {
	goingOutReason := gatelog.GoingOutReason(strings.TrimSpace(reason))
	if !goingOutReason.IsValid() {
		return nil, ErrUnknownReason
	}

	p, err := s.findByPhone(phone)
	if err != nil {
		return nil, err
	}

	open, err := s.openGoingOut(p.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrAlreadyOut
	}

	entry := gatelog.GateLog{
		PersonID:   &p.ID,
		PersonName: p.Name,
		Phone:      p.Phone,
		Type:       gatelog.TypeGoingOut,
		Reason:     &goingOutReason,
		Details:    details,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// RecordComingBack closes the open going-out for the person and appends a
// coming_back row referencing it. Close and append are one transaction.
func (s *Service) RecordComingBack(phone string) (*gatelog.GateLog, error) {
	p, err := s.findByPhone(phone)
	if err != nil {
		return nil, err
	}

	open, err := s.openGoingOut(p.ID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenGoingOut
	}

	comingBack := gatelog.GateLog{
		PersonID:    &p.ID,
		PersonName:  p.Name,
		Phone:       p.Phone,
		Type:        gatelog.TypeComingBack,
		Details:     fmt.Sprintf("Returned from: %s", *open.Reason),
		PairedLogID: &open.ID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		closedAt := time.Now()
		res := tx.Model(&gatelog.GateLog{}).
			Where("id = ? AND closed_at IS NULL", open.ID).
			Update("closed_at", closedAt)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Another coming-back closed it first.
			return ErrNoOpenGoingOut
		}
		return tx.Create(&comingBack).Error
	})
	if err != nil {
		return nil, err
	}
	return &comingBack, nil
}

// ListGateLogs returns the newest movement events, all types
func (s *Service) ListGateLogs(limit int) ([]gatelog.GateLog, error) {
	return s.listLogs(limit, nil)
}

// ListGoingOutLogs returns the newest going-out events
func (s *Service) ListGoingOutLogs(limit int) ([]gatelog.GateLog, error) {
	goingOut := gatelog.TypeGoingOut
	return s.listLogs(limit, &goingOut)
}

func (s *Service) listLogs(limit int, logType *gatelog.LogType) ([]gatelog.GateLog, error) {
	if limit <= 0 {
		limit = 100
	}

	logs := []gatelog.GateLog{}
	db := s.DB.Order("created_at DESC, id DESC").Limit(limit)
	if logType != nil {
		db = db.Where("type = ?", *logType)
	}
	if err := db.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// TodayLogs counts movement events since local midnight
func (s *Service) TodayLogs() (*gateentryTypes.TodaySummary, error) {
	startOfDay := now.BeginningOfDay()
	summary := &gateentryTypes.TodaySummary{
		Date: startOfDay.Format("2006-01-02"),
	}

	counts := map[gatelog.LogType]*int64{
		gatelog.TypeEntry:      &summary.Entries,
		gatelog.TypeExit:       &summary.Exits,
		gatelog.TypeGoingOut:   &summary.GoingOut,
		gatelog.TypeComingBack: &summary.ComingBack,
	}
	for logType, dest := range counts {
		err := s.DB.Model(&gatelog.GateLog{}).
			Where("type = ? AND created_at >= ?", logType, startOfDay).
			Count(dest).Error
		if err != nil {
			return nil, err
		}
	}

	err := s.DB.Model(&gatelog.GateLog{}).
		Where("type = ? AND closed_at IS NULL", gatelog.TypeGoingOut).
		Count(&summary.StillOut).Error
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *Service) findByPhone(phone string) (*personModel.Person, error) {
	var p personModel.Person
	err := s.DB.Where("phone = ?", strings.TrimSpace(phone)).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return &p, nil
}

// openGoingOut returns the most recent unclosed going_out for the person, or
// nil when they are inside.
func (s *Service) openGoingOut(personID uint) (*gatelog.GateLog, error) {
	var open gatelog.GateLog
	err := s.DB.
		Where("person_id = ? AND type = ? AND closed_at IS NULL", personID, gatelog.TypeGoingOut).
		Order("created_at DESC, id DESC").
		First(&open).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &open, nil
}
