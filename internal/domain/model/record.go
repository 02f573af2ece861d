// Package model contains domain models passed between layers.
package model

import "time"

// StudentIDLength is the required length of a student identifier.
const StudentIDLength = 5

// StudentRecord represents one student's participation state.
// Field names mirror the persisted JSON document.
type StudentRecord struct {
	StudentID    string    `json:"student_id"`    // unique key: exactly 5 ASCII digits
	Score        int       `json:"score"`         // non-negative, only ever incremented
	LastActivity time.Time `json:"last_activity"` // advisory; not used for ranking
}

// RecordSet is the full collection of student records, persisted as one
// JSON array document. It is always loaded and saved whole.
type RecordSet []StudentRecord

// Find returns the index of the record with the given student id, or -1.
func (rs RecordSet) Find(studentID string) int {
	for i := range rs {
		if rs[i].StudentID == studentID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can mutate without aliasing the set.
func (rs RecordSet) Clone() RecordSet {
	if rs == nil {
		return nil
	}
	out := make(RecordSet, len(rs))
	copy(out, rs)
	return out
}

// ValidateStudentID checks that id is exactly five ASCII digits.
// Returns ErrInvalidStudentID otherwise.
func ValidateStudentID(id string) error {
	if len(id) != StudentIDLength {
		return ErrInvalidStudentID
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return ErrInvalidStudentID
		}
	}
	return nil
}
