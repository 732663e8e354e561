package vigil

import "flag"

type Args struct {
	ConfigFile string
	Format     string
}

func ParseArgs() Args {
	var configFile = flag.String("config-file", "./vigil.toml", "set file path for config file")
	var format = flag.String("format", "json", "batch output format, json or cbor")
	flag.Parse()
	a := Args{ConfigFile: *configFile, Format: *format}
	return a
}
