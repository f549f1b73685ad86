package alarm

import (
	"fmt"
	"strconv"
	"strings"
)

// Draft is a request to create an alarm.
type Draft struct {
	// Label is optional free-form text.
	Label string `yaml:"label"`
	// Hour is the target hour, 0..23.
	Hour int `yaml:"hour"`
	// Minute is the target minute, 0..59.
	Minute int `yaml:"minute"`
	// Zone is the IANA identifier of the target time.
	Zone string `yaml:"zone"`
	// IsReminder marks the alarm as a reminder.
	IsReminder bool `yaml:"reminder"`
}

// Validate checks the time ranges and that a zone is present.
// Zone resolution is the registry's job.
func (d *Draft) Validate() error {
	if d.Hour < 0 || d.Hour > MaxHour {
		return &ValidationError{
			Field:  FieldHour,
			Reason: fmt.Sprintf("%d is outside 0..%d", d.Hour, MaxHour),
		}
	}

	if d.Minute < 0 || d.Minute > MaxMinute {
		return &ValidationError{
			Field:  FieldMinute,
			Reason: fmt.Sprintf("%d is outside 0..%d", d.Minute, MaxMinute),
		}
	}

	if strings.TrimSpace(d.Zone) == "" {
		return &ValidationError{
			Field:  FieldZone,
			Reason: "zone is required",
		}
	}

	return nil
}

// ParseDraft builds a draft from raw form input.
func ParseDraft(label, zone, hour, minute string, isReminder bool) (*Draft, error) {
	h, err := parseField(FieldHour, hour)
	if err != nil {
		return nil, err
	}

	m, err := parseField(FieldMinute, minute)
	if err != nil {
		return nil, err
	}

	draft := &Draft{
		Label:      label,
		Hour:       h,
		Minute:     m,
		Zone:       strings.TrimSpace(zone),
		IsReminder: isReminder,
	}

	if err = draft.Validate(); err != nil {
		return nil, err
	}

	return draft, nil
}

// ParseHourMinute splits "HH:mm" into a draft's hour and minute.
func ParseHourMinute(value string) (int, int, error) {
	hour, minute, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, 0, &ValidationError{
			Field:  FieldHour,
			Reason: fmt.Sprintf("%q is not in HH:mm form", value),
		}
	}

	h, err := parseField(FieldHour, hour)
	if err != nil {
		return 0, 0, err
	}

	m, err := parseField(FieldMinute, minute)
	if err != nil {
		return 0, 0, err
	}

	return h, m, nil
}

// parseField converts one numeric form field.
func parseField(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, &ValidationError{
			Field:  field,
			Reason: "value is required",
		}
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("%q is not a number", value),
			Err:    err,
		}
	}

	return n, nil
}
