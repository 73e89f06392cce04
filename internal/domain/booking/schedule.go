package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

// timeOfDayLayout is the wire format for session start and end times.
const timeOfDayLayout = "15:04"

// Schedule is an immutable value object representing one dated, timed care
// session slot belonging to a booking.
type Schedule struct {
	Date        time.Time  `json:"date"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	CaregiverID *uuid.UUID `json:"caregiver_id,omitempty"`
	ActivityID  *uuid.UUID `json:"activity_id,omitempty"`
}

// NewSchedule creates a validated Schedule. Sessions must start and end on
// the same calendar date; a slot crossing midnight is rejected and must be
// entered as two slots.
func NewSchedule(date time.Time, startTime, endTime string, caregiverID, activityID *uuid.UUID) (Schedule, error) {
	s := Schedule{
		Date:        startOfDay(date),
		StartTime:   startTime,
		EndTime:     endTime,
		CaregiverID: caregiverID,
		ActivityID:  activityID,
	}
	if err := s.validate(); err != nil {
		return Schedule{}, err
	}
	if s.Date.Before(startOfDay(time.Now())) {
		return Schedule{}, domain.NewValidationError("schedule date cannot be in the past")
	}
	return s, nil
}

// validate checks the format invariants, at construction and again when a
// stored schedule is rehydrated. The past-date rule applies only to new
// schedules, so it lives in NewSchedule.
func (s Schedule) validate() error {
	if s.Date.IsZero() {
		return domain.NewValidationError("schedule date is required")
	}
	if s.StartTime == "" {
		return domain.NewValidationError("schedule start time is required")
	}
	if s.EndTime == "" {
		return domain.NewValidationError("schedule end time is required")
	}
	start, err := time.Parse(timeOfDayLayout, s.StartTime)
	if err != nil {
		return domain.NewValidationError(fmt.Sprintf("invalid start time: %s", s.StartTime))
	}
	end, err := time.Parse(timeOfDayLayout, s.EndTime)
	if err != nil {
		return domain.NewValidationError(fmt.Sprintf("invalid end time: %s", s.EndTime))
	}
	if !end.After(start) {
		return domain.NewValidationError("schedule end time must be after start time")
	}
	return nil
}

// StartAt composes the schedule's date and start time into a timestamp.
func (s Schedule) StartAt() time.Time {
	return s.at(s.StartTime)
}

// EndAt composes the schedule's date and end time into a timestamp.
func (s Schedule) EndAt() time.Time {
	return s.at(s.EndTime)
}

func (s Schedule) at(timeOfDay string) time.Time {
	t, err := time.Parse(timeOfDayLayout, timeOfDay)
	if err != nil {
		// Construction and rehydration both validated the format.
		return s.Date
	}
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, s.Date.Location())
}

// DurationMinutes returns the session length in minutes.
func (s Schedule) DurationMinutes() int {
	return int(s.EndAt().Sub(s.StartAt()).Minutes())
}

// Hours returns the session length in fractional hours.
func (s Schedule) Hours() float64 {
	return float64(s.DurationMinutes()) / 60.0
}

// SameDate returns true if both schedules fall on the same calendar date.
func (s Schedule) SameDate(other Schedule) bool {
	return s.Date.Year() == other.Date.Year() &&
		s.Date.Month() == other.Date.Month() &&
		s.Date.Day() == other.Date.Day()
}

// ConflictsWith reports whether two schedules overlap. Schedules on different
// dates never conflict; on the same date the half-open intervals
// [start, end) conflict iff each starts before the other ends. The predicate
// is symmetric.
func (s Schedule) ConflictsWith(other Schedule) bool {
	if !s.SameDate(other) {
		return false
	}
	return s.StartAt().Before(other.EndAt()) && other.StartAt().Before(s.EndAt())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
