package domain

import (
	"fmt"
	"slices"
	"time"
)

// Settings is the durable bot record. The JSON keys are shared with the
// settings file written by earlier versions of the bot.
type Settings struct {
	Token         string     `json:"token"`
	Admins        []int64    `json:"admins"`
	StartDate     string     `json:"start_date"`
	GifSent       int64      `json:"gif_sent"`
	Triggers      TriggerMap `json:"trigger_map"`
	AnimationPath string     `json:"fish_gif_path"`
	ImagePath     string     `json:"image_path"`
}

var startDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseStartDate reads an ISO-8601 date or timestamp. Values without a zone
// are interpreted in local time.
func ParseStartDate(value string) (time.Time, error) {
	for _, layout := range startDateLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: invalid start_date %q", ErrMalformedSettings, value)
}

func (s Settings) Validate() error {
	if _, err := ParseStartDate(s.StartDate); err != nil {
		return err
	}

	if s.GifSent < 0 {
		return fmt.Errorf("%w: negative gif_sent %d", ErrMalformedSettings, s.GifSent)
	}

	return nil
}

func (s Settings) Clone() Settings {
	c := s
	c.Admins = slices.Clone(s.Admins)
	c.Triggers = slices.Clone(s.Triggers)
	return c
}
