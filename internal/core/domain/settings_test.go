package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date only",
			value: "2019-10-12",
			want:  time.Date(2019, 10, 12, 0, 0, 0, 0, time.Local),
		},
		{
			name:  "naive timestamp",
			value: "2019-10-12T18:30:00",
			want:  time.Date(2019, 10, 12, 18, 30, 0, 0, time.Local),
		},
		{
			name:  "naive timestamp with microseconds",
			value: "2019-10-12T18:30:00.123456",
			want:  time.Date(2019, 10, 12, 18, 30, 0, 123456000, time.Local),
		},
		{
			name:  "space separated",
			value: "2019-10-12 18:30:00",
			want:  time.Date(2019, 10, 12, 18, 30, 0, 0, time.Local),
		},
		{
			name:  "with zone",
			value: "2019-10-12T18:30:00Z",
			want:  time.Date(2019, 10, 12, 18, 30, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			value:   "yesterday",
			wantErr: true,
		},
		{
			name:    "empty",
			value:   "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseStartDate(tc.value)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrMalformedSettings)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	valid := Settings{StartDate: "2024-01-01", GifSent: 3}
	require.NoError(t, valid.Validate())

	negative := valid
	negative.GifSent = -1
	assert.True(t, errors.Is(negative.Validate(), ErrMalformedSettings))

	badDate := valid
	badDate.StartDate = "01/01/2024"
	assert.True(t, errors.Is(badDate.Validate(), ErrMalformedSettings))
}

func TestSettingsClone(t *testing.T) {
	s := Settings{
		Admins:   []int64{1, 2},
		Triggers: TriggerMap{{Key: "cat", Reply: "GATTO"}},
	}

	c := s.Clone()
	c.Admins[0] = 99
	c.Triggers[0].Reply = "changed"

	assert.Equal(t, int64(1), s.Admins[0])
	assert.Equal(t, "GATTO", s.Triggers[0].Reply)
}

func TestDispatchErrorUnwrap(t *testing.T) {
	err := &DispatchError{Trigger: "cat", Err: ErrAssetUnreadable}

	assert.ErrorIs(t, err, ErrAssetUnreadable)
	assert.Equal(t, `dispatch for trigger "cat" failed: asset unreadable`, err.Error())
}
