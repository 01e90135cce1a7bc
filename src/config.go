package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Node configuration: defaults, YAML file, and the
 *		mapping onto the subsystem configs.
 *
 * Description:	Everything has a default good enough for a speaker
 *		and microphone on the default sound device, so a
 *		config file is only needed for PTT, SDR input, RPC
 *		credentials, or unusual audio parameters.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type config_s struct {
	Audio struct {
		SampleRate   float64 `yaml:"sample_rate"`
		ToneHz       float64 `yaml:"tone_hz"`
		WPM          int     `yaml:"wpm"`
		OutputDevice int     `yaml:"output_device"`
		InputDevice  int     `yaml:"input_device"`
	} `yaml:"audio"`

	Goertzel struct {
		BlockSize int     `yaml:"block_size"`
		Threshold float64 `yaml:"threshold"` /* 0 = auto */
	} `yaml:"goertzel"`

	Gateway struct {
		Backend    string `yaml:"backend"` /* "mempool" or "bitcoind" */
		MempoolURL string `yaml:"mempool_url"`
		RPCHost    string `yaml:"rpc_host"`
		RPCPort    int    `yaml:"rpc_port"`
		RPCUser    string `yaml:"rpc_user"`
		RPCPass    string `yaml:"rpc_pass"`
	} `yaml:"gateway"`

	PTT struct {
		Enabled   bool   `yaml:"enabled"`
		Chip      string `yaml:"chip"`
		Line      int    `yaml:"line"`
		ActiveLow bool   `yaml:"active_low"`
	} `yaml:"ptt"`

	SDR struct {
		Enabled    bool    `yaml:"enabled"`
		Listen     string  `yaml:"listen"`
		SampleRate float64 `yaml:"sample_rate"`
	} `yaml:"sdr"`

	RxLog struct {
		File string `yaml:"file"`
		Dir  string `yaml:"dir"`
	} `yaml:"rxlog"`
}

func config_default() config_s {

	var c config_s

	c.Audio.SampleRate = 44100
	c.Audio.ToneHz = 750
	c.Audio.WPM = 20
	c.Audio.OutputDevice = -1
	c.Audio.InputDevice = -1

	c.Goertzel.BlockSize = GOERTZEL_BLOCK_SIZE
	c.Goertzel.Threshold = 0

	c.Gateway.Backend = "mempool"
	c.Gateway.MempoolURL = MEMPOOL_DEFAULT_URL
	c.Gateway.RPCHost = "127.0.0.1"
	c.Gateway.RPCPort = 8332

	c.PTT.Chip = "gpiochip0"
	c.PTT.Line = 17

	c.SDR.Listen = "0.0.0.0:7355"
	c.SDR.SampleRate = 44100

	return c
}

/*-------------------------------------------------------------------
 *
 * Name:        config_load
 *
 * Purpose:    	Read a YAML config file over the defaults.
 *
 * Inputs:	path	- "" means defaults only.  A named file that
 *			  does not exist is an error; the operator
 *			  asked for it.
 *
 *--------------------------------------------------------------------*/

func config_load(path string) (config_s, error) {

	var c = config_default()

	if path == "" {
		return c, nil
	}

	var data, err = os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}

	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}

	if c.Gateway.Backend != "mempool" && c.Gateway.Backend != "bitcoind" {
		return c, fmt.Errorf("config %s: unknown gateway backend %q", path, c.Gateway.Backend)
	}

	return c, nil
}

/* Mapping onto subsystem configs. */

func (c *config_s) audio_config() audio_config_s {
	return audio_config_s{
		sample_rate:   c.Audio.SampleRate,
		tone_freq_hz:  c.Audio.ToneHz,
		wpm:           c.Audio.WPM,
		output_device: c.Audio.OutputDevice,
		input_device:  c.Audio.InputDevice,
	}
}

func (c *config_s) gateway_config() gateway_config_s {
	var g = gateway_config_s{
		backend:     BROADCAST_MEMPOOL_SPACE,
		mempool_url: c.Gateway.MempoolURL,
		rpc_host:    c.Gateway.RPCHost,
		rpc_port:    c.Gateway.RPCPort,
		rpc_user:    c.Gateway.RPCUser,
		rpc_pass:    c.Gateway.RPCPass,
	}
	if c.Gateway.Backend == "bitcoind" {
		g.backend = BROADCAST_BITCOIN_RPC
	}
	return g
}

func (c *config_s) ptt_config() ptt_config_s {
	return ptt_config_s{
		enabled:    c.PTT.Enabled,
		chip:       c.PTT.Chip,
		line:       c.PTT.Line,
		active_low: c.PTT.ActiveLow,
	}
}

func (c *config_s) sdr_config() sdr_config_s {
	return sdr_config_s{
		enabled:     c.SDR.Enabled,
		listen_addr: c.SDR.Listen,
		sample_rate: c.SDR.SampleRate,
	}
}

func (c *config_s) rxlog_config() rxlog_config_s {
	return rxlog_config_s{
		file: c.RxLog.File,
		dir:  c.RxLog.Dir,
	}
}
