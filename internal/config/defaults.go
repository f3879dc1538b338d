package config

const (
	defaultDataDir             = "~/.local/share/newswire/data"
	defaultLogDir              = "~/.local/share/newswire/logs"
	defaultStoreDriver         = "sqlite"
	defaultNormalizerBatchSize = 32
	defaultNormalizerWorkers   = 1
	defaultSimilarityThreshold = 0.05
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

func defaultSources() []string {
	return []string{"daily_mail", "the_guardian"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Store: Store{
			Driver: defaultStoreDriver,
		},
		Sources: Sources{
			Names: defaultSources(),
		},
		Normalizer: Normalizer{
			BatchSize: defaultNormalizerBatchSize,
			Workers:   defaultNormalizerWorkers,
		},
		Similarity: Similarity{
			Threshold: defaultSimilarityThreshold,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
