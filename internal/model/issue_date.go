package model

import "time"

// IssueDate marks a calendar date on which ration distribution is
// open.  The union of all issue dates forms the currently active
// cycle: a user may hold at most one booking whose slot date lies
// inside that set.  Rows are created in bulk by the slot catalog
// generator and destroyed in bulk by admin maintenance.
//
// Fields:
//  ID        – primary key identifier.
//  Date      – unique calendar date (time portion is zero, UTC).
//  CreatedAt – creation timestamp.
type IssueDate struct {
	ID        uint64    // issue_dates.id
	Date      time.Time // issue_dates.date (unique)
	CreatedAt time.Time // issue_dates.created_at
}
