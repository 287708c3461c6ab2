package config

// Config holds the latency service configuration.
type Config struct {
	// ListenAddress is the host:port the service binds to.
	ListenAddress string `mapstructure:"listen_address"`

	// DatasetPath points at the telemetry dataset file (json
	// or yaml). When empty, the embedded sample dataset is
	// served.
	DatasetPath string `mapstructure:"dataset_path"`

	// Debug enables debug level logging.
	Debug bool `mapstructure:"debug"`
}
