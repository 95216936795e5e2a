package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	chartFile   = kingpin.Arg("chart", "Chart file, .json or .sm").Required().ExistingFile()
	configFile  = kingpin.Flag("config", "YAML config file").Short('c').ExistingFile()
	difficulty  = kingpin.Flag("difficulty", "Difficulty to play from a multi chart file").Short('D').String()
	device      = kingpin.Flag("device", "Read keys from an evdev device, e.g. /dev/input/event3").String()
	autoplay    = kingpin.Flag("autoplay", "Play the chart perfectly and print the result").Short('a').Bool()
	metricsAddr = kingpin.Flag("metrics-addr", "Serve Prometheus metrics on this address").String()
	logLevel    = kingpin.Flag("log-level", "debug, info, warn or error").String()
	offset      = kingpin.Flag("offset", "Global offset").Short('o').Duration()
	delay       = kingpin.Flag("delay", "Start delay").Short('d').Duration()
	scrollRows  = kingpin.Flag("scroll-rows", "Rows per second of scroll, higher is faster").Short('s').Float64()
)

func main() {
	kingpin.Version("0.3.0")
	kingpin.Parse()

	if err := run(os.Stdout); nil != err {
		logrus.WithError(err).Fatal("beatline failed")
	}
}
