package gatelog

import (
	"time"
)

// LogType classifies a physical movement event at the gate
type LogType string

const (
	TypeEntry      LogType = "entry"
	TypeExit       LogType = "exit"
	TypeGoingOut   LogType = "going_out"
	TypeComingBack LogType = "coming_back"
)

func (t LogType) String() string {
	return string(t)
}

func (t LogType) IsValid() bool {
	switch t {
	case TypeEntry, TypeExit, TypeGoingOut, TypeComingBack:
		return true
	default:
		return false
	}
}

// GoingOutReason is the fixed set of reasons accepted for a going_out event
type GoingOutReason string

const (
	ReasonOfficeWork   GoingOutReason = "Office Work"
	ReasonPersonalWork GoingOutReason = "Personal Work"
	ReasonMedical      GoingOutReason = "Medical"
	ReasonOther        GoingOutReason = "Other"
)

func (r GoingOutReason) IsValid() bool {
	switch r {
	case ReasonOfficeWork, ReasonPersonalWork, ReasonMedical, ReasonOther:
		return true
	default:
		return false
	}
}

// GetAllGoingOutReasons returns all accepted going-out reasons
func GetAllGoingOutReasons() []GoingOutReason {
	return []GoingOutReason{
		ReasonOfficeWork,
		ReasonPersonalWork,
		ReasonMedical,
		ReasonOther,
	}
}

// GateLog is one row per physical movement event. Person name and phone are
// snapshotted on the row so history stays readable after a registry delete;
// PersonID is nulled in that case. GatePassID is set when the entry was
// produced by pickup verification rather than a manual action.
type GateLog struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	PersonID   *uint  `gorm:"index" json:"personId,omitempty"`
	PersonName string `gorm:"type:varchar(255);not null" json:"personName"`
	Phone      string `gorm:"type:varchar(20);not null;index" json:"phone"`

	GatePassID *uint `gorm:"index" json:"gatePassId,omitempty"`

	Type    LogType         `gorm:"type:varchar(20);not null;index" json:"type"`
	Reason  *GoingOutReason `gorm:"type:varchar(50)" json:"reason,omitempty"`
	Details string          `gorm:"type:text" json:"details"`

	// ClosedAt is set on a going_out row when the matching coming_back
	// arrives; an open going_out has ClosedAt null. PairedLogID points from
	// the coming_back row to the going_out row it closed.
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
	PairedLogID *uint      `gorm:"index" json:"pairedLogId,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

// TableName sets the table name for the GateLog model
func (GateLog) TableName() string {
	return "gate_logs"
}
