package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name      string
		remaining time.Duration
		pattern   string
		want      string
	}{
		{"zero", 0, "mm:ss", "00:00"},
		{"fifteen seconds", 15*time.Second + 10*time.Millisecond, "mm:ss", "00:15"},
		{"ten minutes", 10 * time.Minute, "mm:ss", "10:00"},
		{"minutes wrap into hours", 75 * time.Minute, "mm:ss", "15:00"},
		{"hours", time.Hour + 2*time.Minute + 3*time.Second, "HH:mm:ss", "01:02:03"},
		{"unpadded", time.Hour + 2*time.Minute + 3*time.Second, "H:m:s", "1:2:3"},
		{"days wrap", 25 * time.Hour, "HH:mm", "01:00"},
		{"millis", 1234 * time.Millisecond, "ss.SSS", "01.234"},
		{"tenths", 1234 * time.Millisecond, "s.S", "1.2"},
		{"negative clamps", -5 * time.Second, "mm:ss", "00:00"},
		{"literal", 90 * time.Second, "m[m] s[s]", "1m 30s"},
		{"twelve hour clock", 0, "hh:mm A", "12:00 AM"},
		{"afternoon", 13 * time.Hour, "h a", "1 pm"},
		{"empty pattern", 61 * time.Second, "", "01:01"},
		{"unterminated literal", time.Second, "ss [left", "01 left"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.remaining, tt.pattern))
		})
	}
}
