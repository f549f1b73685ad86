package alarm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDraftValidate covers the hour, minute and zone rules.
func TestDraftValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{name: "hour too large", draft: Draft{Hour: 25, Zone: "UTC"}, field: FieldHour},
		{name: "negative hour", draft: Draft{Hour: -1, Zone: "UTC"}, field: FieldHour},
		{name: "minute too large", draft: Draft{Minute: 60, Zone: "UTC"}, field: FieldMinute},
		{name: "negative minute", draft: Draft{Minute: -5, Zone: "UTC"}, field: FieldMinute},
		{name: "missing zone", draft: Draft{Hour: 1, Zone: " "}, field: FieldZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.draft.Validate()
			require.Error(t, err)
			require.True(t, IsValidation(err))

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tt.field, validationErr.Field)
			require.Equal(t, InvalidTimeMessage, validationErr.Message())
		})
	}

	ok := Draft{Hour: 23, Minute: 59, Zone: "UTC"}
	require.NoError(t, ok.Validate())
}

// TestParseDraft verifies parsing of raw form strings.
func TestParseDraft(t *testing.T) {
	t.Parallel()

	draft, err := ParseDraft("Tea", " Asia/Tokyo ", "08", " 5", true)
	require.NoError(t, err)
	require.Equal(t, &Draft{
		Label:      "Tea",
		Hour:       8,
		Minute:     5,
		Zone:       "Asia/Tokyo",
		IsReminder: true,
	}, draft)

	for _, input := range [][2]string{{"", "10"}, {"10", ""}, {"ab", "10"}, {"10", "x"}, {"24", "00"}} {
		_, err = ParseDraft("", "UTC", input[0], input[1], false)
		require.True(t, IsValidation(err), input)
	}

	_, err = ParseDraft("", "", "10", "10", false)
	require.True(t, IsValidation(err))
}

// TestParseHourMinute checks HH:mm splitting.
func TestParseHourMinute(t *testing.T) {
	t.Parallel()

	h, m, err := ParseHourMinute("14:30")
	require.NoError(t, err)
	require.Equal(t, 14, h)
	require.Equal(t, 30, m)

	_, _, err = ParseHourMinute("1430")
	require.True(t, IsValidation(err))

	_, _, err = ParseHourMinute("aa:30")
	require.True(t, IsValidation(err))
}
