package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Save decode attempts to a log file.
 *
 * Description: Rather than scrollback, write separated properties
 *		into CSV format for easy reading and later processing.
 *
 *		There are two alternatives here.
 *
 *		file: path	Specify full file path.
 *
 *		dir: path	Daily names will be created here.
 *
 *		Use one or the other but not both.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

type rxlog_config_s struct {
	file string /* full path of a single log file */
	dir  string /* directory for daily names */
}

type rxlog_s struct {
	daily_names bool
	path        string
	fp          *os.File
	w           *csv.Writer
	open_fname  string /* currently open daily file */
}

var rxlog_header = []string{
	"time", "stage", "success", "error", "morse_text", "txid_hex",
}

/*-------------------------------------------------------------------
 *
 * Name:        rxlog_init
 *
 * Purpose:    	Initialization at start of application.
 *
 * Inputs:	cfg	- File or directory.  Both empty disables the
 *			  feature and returns a nil handle.
 *
 *--------------------------------------------------------------------*/

func rxlog_init(cfg rxlog_config_s) *rxlog_s {

	if cfg.file == "" && cfg.dir == "" {
		return nil
	}

	var r = &rxlog_s{}

	if cfg.dir != "" {
		r.daily_names = true
		var stat, err = os.Stat(cfg.dir)
		if err == nil && !stat.IsDir() {
			log.Error("rx log location is not a directory, using \".\"", "path", cfg.dir)
			r.path = "."
			return r
		}
		if err != nil {
			if os.Mkdir(cfg.dir, 0755) != nil {
				log.Error("failed to create rx log directory, using \".\"", "path", cfg.dir)
				r.path = "."
				return r
			}
		}
		r.path = cfg.dir
		return r
	}

	r.path = cfg.file
	return r
}

// ensure opens the right file for this moment.  With daily names the
// file rolls over at midnight; the file is kept open between writes.
func (r *rxlog_s) ensure(now time.Time) error {

	var fname = r.path

	if r.daily_names {
		var day, err = strftime.Format("%Y-%m-%d", now)
		if err != nil {
			return err
		}
		fname = filepath.Join(r.path, day+".log")
	}

	if r.fp != nil && fname == r.open_fname {
		return nil
	}

	if r.fp != nil {
		r.w.Flush()
		r.fp.Close()
		r.fp = nil
	}

	var _, stat_err = os.Stat(fname)
	var fresh = stat_err != nil

	var fp, err = os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	r.fp = fp
	r.w = csv.NewWriter(fp)
	r.open_fname = fname

	if fresh {
		r.w.Write(rxlog_header)
	}

	return nil
}

/*-------------------------------------------------------------------
 *
 * Name:        rxlog_write
 *
 * Purpose:    	Append one decode attempt.  A nil handle (logging
 *		disabled) is a no-op.
 *
 *--------------------------------------------------------------------*/

func (r *rxlog_s) rxlog_write(now time.Time, result decode_result_s) {

	if r == nil {
		return
	}

	if err := r.ensure(now); err != nil {
		log.Error("rx log open failed", "err", err)
		return
	}

	r.w.Write([]string{
		now.Format(time.RFC3339),
		decode_stage_name(result.stage_reached),
		strconv.FormatBool(result.success),
		result.errstr,
		result.morse_text,
		result.hex_string,
	})
	r.w.Flush()

	if err := r.w.Error(); err != nil {
		log.Error("rx log write failed", "err", err)
	}
}

func (r *rxlog_s) rxlog_term() {
	if r == nil || r.fp == nil {
		return
	}
	r.w.Flush()
	r.fp.Close()
	r.fp = nil
}

// String used in tests and diagnostics for a quick one-line summary.
func rxlog_summary(result decode_result_s) string {
	return fmt.Sprintf("stage=%s success=%v err=%q",
		decode_stage_name(result.stage_reached), result.success, result.errstr)
}
