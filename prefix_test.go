package svlog

import (
	"io"
	"testing"
	"time"

	"github.com/abyssdigger/svlog/cvar"
	"github.com/stretchr/testify/assert"
)

var prefixClock = time.Date(2024, time.January, 5, 8, 30, 15, 7*int(time.Millisecond), time.UTC)

func TestExpandPrefix(t *testing.T) {
	tests := []struct {
		name     string
		template string
		now      time.Time
		gid      uint64
		want     string
	}{
		{"iso_date_time", "%F %T", prefixClock, 1, "2024-01-05 08:30:15 "},
		{"literal_percent", "%%", prefixClock, 1, "% "},
		{"date_pieces", "%d/%m/%Y", prefixClock, 1, "05/01/2024 "},
		{"time_pieces", "%H:%M:%S.%N", prefixClock, 1, "08:30:15.007 "},
		{"goroutine_id_hex", "%t", prefixClock, 0xab, "00ab "},
		{"zone_utc", "%z", prefixClock, 1, "Z "},
		{"zone_east", "%z", prefixClock.In(time.FixedZone("CET", 3600)), 1, "+0100 "},
		{"zone_west", "%z", prefixClock.In(time.FixedZone("EST", -5*3600)), 1, "-0500 "},
		{"zone_half_hour", "%z", prefixClock.In(time.FixedZone("IST", 5*3600+1800)), 1, "+0530 "},
		{"unknown_specifier_dropped", "%q", prefixClock, 1, ""},
		{"trailing_percent_dropped", "abc%", prefixClock, 1, "abc "},
		{"mixed_literals", "<%F|%t>", prefixClock, 0x1f, "<2024-01-05|001f> "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandPrefix(tt.template, tt.now, tt.gid))
		})
	}
}

func TestBuildPrefix_Disabled(t *testing.T) {
	l := InitWithParams(nil, io.Discard)

	// no prefix at all until log_Prefix is registered
	l.SetPrefix("%F")
	assert.Empty(t, l.buildPrefix(prefixClock, 1), "prefix rendered without registered cvar")

	l.RegisterCVars(cvar.NewRegistry())
	assert.Equal(t, "2024-01-05 ", l.buildPrefix(prefixClock, 1))

	l.SetPrefix("")
	assert.Empty(t, l.buildPrefix(prefixClock, 1), "empty template must disable the prefix")

	l.SetPrefix("0")
	assert.Empty(t, l.buildPrefix(prefixClock, 1), `template "0" must disable the prefix`)
}

func TestBuildPrefix_SeedTemplate(t *testing.T) {
	l := InitWithParams(nil, io.Discard)
	l.SetPrefix("%T")
	l.RegisterCVars(cvar.NewRegistry())

	// the pre-registration template seeds the cvar
	assert.Equal(t, "08:30:15 ", l.buildPrefix(prefixClock, 1))
}
