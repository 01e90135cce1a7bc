package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Command line front end for the node.
 *
 * Description:	Commands:
 *
 *		  tx <hex>		Validate, encode and key a
 *					transaction out as CW audio.
 *		  listen <seconds>	Capture and decode.
 *		  broadcast <hex>	Relay a raw transaction over
 *					HTTP.
 *		  devices		List audio devices.
 *		  loopback <hex>	Transmit, capture for the
 *					expected duration, decode,
 *					and compare.
 *
 *		Exit code 0 on success, 1 on any failure.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

const NODE_VERSION = "1.0.0"

func node_usage() {
	fmt.Printf("btc-cw-node v%s\n", NODE_VERSION)
	fmt.Printf("Usage:\n")
	fmt.Printf("  btc-cw-node [flags] tx <raw_hex>       Validate, encode, and transmit a TX via audio\n")
	fmt.Printf("  btc-cw-node [flags] listen <seconds>   Capture audio and decode\n")
	fmt.Printf("  btc-cw-node [flags] broadcast <hex>    Broadcast a raw TX to the Bitcoin network\n")
	fmt.Printf("  btc-cw-node devices                    List available audio devices\n")
	fmt.Printf("  btc-cw-node [flags] loopback <hex>     Full acoustic loopback test\n")
	fmt.Printf("\nFlags:\n")
	pflag.PrintDefaults()
}

/*-------------------------------------------------------------------
 *
 * Name:        NodeMain
 *
 * Purpose:    	Entry point.  Parse flags, dispatch the command.
 *
 * Returns:	Process exit code.
 *
 *--------------------------------------------------------------------*/

func NodeMain() int {

	var configFileName = pflag.StringP("config", "c", "", "Configuration file name.")
	var sampleRate = pflag.Float64P("sample-rate", "r", 0, "Audio sample rate per second.  0 uses the configured value.")
	var toneFreq = pflag.Float64P("tone", "t", 0, "CW tone frequency in Hz.  0 uses the configured value.")
	var wpm = pflag.IntP("wpm", "w", 0, "Keying speed in words per minute.  0 uses the configured value.")
	var blockSize = pflag.IntP("block-size", "n", 0, "Goertzel block size in samples.  0 uses the configured value.")
	var threshold = pflag.Float64P("threshold", "T", 0, "Goertzel detection threshold.  0 uses the configured value, which defaults to automatic per capture.")
	var outputDevice = pflag.IntP("output-device", "o", -2, "Audio output device index from the devices command.  -1 is the system default.")
	var inputDevice = pflag.IntP("input-device", "i", -2, "Audio input device index from the devices command.  -1 is the system default.")
	var backend = pflag.StringP("backend", "b", "", "Broadcast backend, mempool or bitcoind.  Empty uses the configured value.")
	var verbose = pflag.BoolP("verbose", "v", false, "Debug level logging.")

	pflag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	var args = pflag.Args()
	if len(args) < 1 {
		node_usage()
		return 1
	}
	var cmd = args[0]

	if cmd == "devices" {
		if err := audio_list_devices(); err != nil {
			log.Error("device listing failed", "err", err)
			return 1
		}
		return 0
	}

	var cfg, err = config_load(*configFileName)
	if err != nil {
		log.Error("bad configuration", "err", err)
		return 1
	}

	/* Command line overrides. */
	if *sampleRate > 0 {
		cfg.Audio.SampleRate = *sampleRate
	}
	if *toneFreq > 0 {
		cfg.Audio.ToneHz = *toneFreq
	}
	if *wpm > 0 {
		cfg.Audio.WPM = *wpm
	}
	if *blockSize > 0 {
		cfg.Goertzel.BlockSize = *blockSize
	}
	if *threshold > 0 {
		cfg.Goertzel.Threshold = *threshold
	}
	if *outputDevice >= -1 {
		cfg.Audio.OutputDevice = *outputDevice
	}
	if *inputDevice >= -1 {
		cfg.Audio.InputDevice = *inputDevice
	}
	if *backend != "" {
		if *backend != "mempool" && *backend != "bitcoind" {
			log.Error("unknown backend", "backend", *backend)
			return 1
		}
		cfg.Gateway.Backend = *backend
	}

	var engine *node_engine_s
	engine, err = engine_init(cfg)
	if err != nil {
		log.Error("failed to initialise engine", "err", err)
		return 1
	}
	defer engine.engine_shutdown()

	switch {
	case cmd == "tx" && len(args) >= 2:
		return cmd_tx(engine, args[1])
	case cmd == "listen" && len(args) >= 2:
		var seconds, convErr = strconv.ParseFloat(args[1], 64)
		if convErr != nil || seconds <= 0 {
			log.Error("listen needs a positive duration in seconds", "arg", args[1])
			return 1
		}
		return cmd_listen(engine, seconds)
	case cmd == "broadcast" && len(args) >= 2:
		return cmd_broadcast(engine, args[1])
	case cmd == "loopback" && len(args) >= 2:
		return cmd_loopback(engine, args[1])
	default:
		node_usage()
		return 1
	}
}

func cmd_tx(engine *node_engine_s, hex string) int {

	var timing = engine.encode_tx(hex)
	if len(timing) == 0 {
		fmt.Fprintf(os.Stderr, "error: invalid or unsigned transaction\n")
		return 1
	}

	log.Info("encoded", "timing_units", len(timing),
		"duration_ms", TIME_UNITS_TO_MS(len(timing), engine.cfg.Audio.WPM))

	if err := engine.play(timing); err != nil {
		log.Error("audio playback failed", "err", err)
		return 1
	}

	log.Info("transmission complete")
	return 0
}

func cmd_listen(engine *node_engine_s, seconds float64) int {

	log.Info("capturing audio", "seconds", seconds)
	var pcm = engine.listen(seconds)
	log.Info("captured", "samples", len(pcm))

	var result = engine.decode_audio(pcm)
	if result.success {
		fmt.Printf("%s\n", result.hex_string)
		return 0
	}

	log.Error("decode failed",
		"stage", decode_stage_name(result.stage_reached), "err", result.errstr)
	if result.morse_text != "" {
		log.Info("morse text heard", "text", result.morse_text)
	}
	return 1
}

func cmd_broadcast(engine *node_engine_s, hex string) int {

	log.Info("sending to network")
	var txid = engine.broadcast(hex)
	if txid == "" {
		fmt.Fprintf(os.Stderr, "error: broadcast failed\n")
		return 1
	}

	fmt.Printf("%s\n", txid)
	return 0
}

func cmd_loopback(engine *node_engine_s, hex string) int {

	fmt.Printf("=== Acoustic Loopback Test ===\n")

	var timing = engine.encode_tx(hex)
	if len(timing) == 0 {
		fmt.Fprintf(os.Stderr, "error: invalid transaction\n")
		return 1
	}
	fmt.Printf("[1/4] encoded %d timing units\n", len(timing))

	if err := engine.play(timing); err != nil {
		log.Error("playback failed", "err", err)
		return 1
	}
	fmt.Printf("[2/4] audio transmitted\n")

	var duration = float64(len(timing))*unit_duration(engine.cfg.Audio.WPM) + 0.5
	var pcm = engine.listen(duration)
	fmt.Printf("[3/4] captured %d samples\n", len(pcm))

	var result = engine.decode_audio(pcm)
	if !result.success {
		log.Error("decode failed",
			"stage", decode_stage_name(result.stage_reached), "err", result.errstr)
		if result.morse_text != "" {
			log.Info("morse text heard", "text", result.morse_text)
		}
		return 1
	}

	fmt.Printf("[4/4] decoded TX: %s\n", result.hex_string)
	if !hex_equal(result.hex_string, hex) {
		fmt.Printf("\n=== MISMATCH: decoded hex differs from input ===\n")
		return 1
	}

	fmt.Printf("\n=== PASS: roundtrip matches ===\n")
	return 0
}
