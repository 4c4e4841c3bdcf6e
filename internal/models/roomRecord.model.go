package models

import "time"

type RecordKind string

const (
	RecordKindMaintenance RecordKind = "maintenance"
	RecordKindReplacement RecordKind = "replacements"
)

func (k RecordKind) Valid() bool {
	return k == RecordKindMaintenance || k == RecordKindReplacement
}

// Label is the human name used in activity details.
func (k RecordKind) Label() string {
	if k == RecordKindReplacement {
		return "replacement"
	}
	return "maintenance"
}

type MaintenanceStatus string

const (
	MaintenanceStatusNeedsRepair        MaintenanceStatus = "Needs Repair"
	MaintenanceStatusNotWorking         MaintenanceStatus = "Not Working"
	MaintenanceStatusDamaged            MaintenanceStatus = "Damaged"
	MaintenanceStatusRegularMaintenance MaintenanceStatus = "Regular Maintenance"
	MaintenanceStatusPending            MaintenanceStatus = "Pending"
	MaintenanceStatusInProgress         MaintenanceStatus = "In Progress"
	MaintenanceStatusCompleted          MaintenanceStatus = "Completed"
	MaintenanceStatusCancelled          MaintenanceStatus = "Cancelled"
)

type ReplacementStatus string

const (
	ReplacementStatusBeyondRepair ReplacementStatus = "Beyond Repair"
	ReplacementStatusObsolete     ReplacementStatus = "Obsolete"
	ReplacementStatusEndOfLife    ReplacementStatus = "End of Life"
	ReplacementStatusMissing      ReplacementStatus = "Missing"
	ReplacementStatusPending      ReplacementStatus = "Pending"
	ReplacementStatusApproved     ReplacementStatus = "Approved"
	ReplacementStatusCompleted    ReplacementStatus = "Completed"
	ReplacementStatusRejected     ReplacementStatus = "Rejected"
)

var maintenanceStatuses = map[string]bool{
	string(MaintenanceStatusNeedsRepair):        true,
	string(MaintenanceStatusNotWorking):         true,
	string(MaintenanceStatusDamaged):            true,
	string(MaintenanceStatusRegularMaintenance): true,
	string(MaintenanceStatusPending):            true,
	string(MaintenanceStatusInProgress):         true,
	string(MaintenanceStatusCompleted):          true,
	string(MaintenanceStatusCancelled):          true,
}

var replacementStatuses = map[string]bool{
	string(ReplacementStatusBeyondRepair): true,
	string(ReplacementStatusObsolete):     true,
	string(ReplacementStatusEndOfLife):    true,
	string(ReplacementStatusMissing):      true,
	string(ReplacementStatusPending):      true,
	string(ReplacementStatusApproved):     true,
	string(ReplacementStatusCompleted):    true,
	string(ReplacementStatusRejected):     true,
}

// ValidStatus reports whether status belongs to the enum of kind.
func (k RecordKind) ValidStatus(status string) bool {
	switch k {
	case RecordKindMaintenance:
		return maintenanceStatuses[status]
	case RecordKindReplacement:
		return replacementStatuses[status]
	}
	return false
}

// RoomRecord is a maintenance or replacement entry embedded in a room row.
// ID is assigned at append time and stays stable across removals of other entries.
type RoomRecord struct {
	ID            string     `json:"id"`
	EquipmentName string     `json:"equipmentName"`
	Quantity      int        `json:"quantity"`
	Status        string     `json:"status"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"createdAt"`
	Resolved      bool       `json:"resolved"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
	EquipmentID   *string    `json:"equipmentId,omitempty"`
}

func CountOpen(records []RoomRecord) int {
	open := 0
	for _, record := range records {
		if !record.Resolved {
			open++
		}
	}
	return open
}
