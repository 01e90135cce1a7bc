package btccw

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRxLogDisabled(t *testing.T) {
	var r = rxlog_init(rxlog_config_s{})
	assert.Nil(t, r)

	// Nil handle is a no-op, not a crash.
	r.rxlog_write(time.Now(), decode_result_s{})
	r.rxlog_term()
}

func TestRxLogSingleFile(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "rx.log")
	var r = rxlog_init(rxlog_config_s{file: path})
	require.NotNil(t, r)

	var when = time.Date(2026, 8, 6, 12, 0, 0, 0, time.UTC)
	r.rxlog_write(when, decode_result_s{
		stage_reached: DECODE_STAGE_DEFRAME,
		errstr:        "Deframe: frame too short",
		morse_text:    "KKK A AR",
	})
	r.rxlog_write(when.Add(time.Minute), decode_result_s{
		stage_reached: DECODE_STAGE_COMPLETE,
		success:       true,
		hex_string:    "0200aabb",
	})
	r.rxlog_term()

	var fp, err = os.Open(path)
	require.NoError(t, err)
	defer fp.Close()

	var records, readErr = csv.NewReader(fp).ReadAll()
	require.NoError(t, readErr)
	require.Len(t, records, 3, "header plus two attempts")

	assert.Equal(t, rxlog_header, records[0])
	assert.Equal(t, "deframe", records[1][1])
	assert.Equal(t, "false", records[1][2])
	assert.Equal(t, "KKK A AR", records[1][4])
	assert.Equal(t, "complete", records[2][1])
	assert.Equal(t, "true", records[2][2])
	assert.Equal(t, "0200aabb", records[2][5])
}

func TestRxLogDailyNames(t *testing.T) {
	var dir = t.TempDir()
	var r = rxlog_init(rxlog_config_s{dir: dir})
	require.NotNil(t, r)

	var day1 = time.Date(2026, 8, 6, 23, 59, 0, 0, time.UTC)
	var day2 = time.Date(2026, 8, 7, 0, 1, 0, 0, time.UTC)

	r.rxlog_write(day1, decode_result_s{stage_reached: DECODE_STAGE_GOERTZEL})
	r.rxlog_write(day2, decode_result_s{stage_reached: DECODE_STAGE_GOERTZEL})
	r.rxlog_term()

	var _, err = os.Stat(filepath.Join(dir, "2026-08-06.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "2026-08-07.log"))
	assert.NoError(t, err)
}

func TestRxLogCreatesDirectory(t *testing.T) {
	var dir = filepath.Join(t.TempDir(), "logs")
	var r = rxlog_init(rxlog_config_s{dir: dir})
	require.NotNil(t, r)

	r.rxlog_write(time.Date(2026, 8, 6, 1, 0, 0, 0, time.UTC),
		decode_result_s{stage_reached: DECODE_STAGE_GOERTZEL})
	r.rxlog_term()

	var stat, err = os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestRxLogSummary(t *testing.T) {
	var s = rxlog_summary(decode_result_s{
		stage_reached: DECODE_STAGE_MORSE_DECODE,
		errstr:        "Morse decode: no text recovered",
	})
	assert.Equal(t, `stage=morse_decode success=false err="Morse decode: no text recovered"`, s)
}
