package importer_config

import (
	"github.com/storepulse/storepulse/internal/obs"
	pg "github.com/storepulse/storepulse/internal/repository/postgres"
)

type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

// Files are the three source CSVs of the ingestion contract: store/timezone
// pairs, weekly schedule rows and raw status samples.
type Files struct {
	Timezones     string `mapstructure:"timezones"`
	BusinessHours string `mapstructure:"business_hours"`
	StatusSamples string `mapstructure:"status_samples"`
}

type ImportCfg struct {
	BatchSize int `mapstructure:"batch_size"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func (lc *Log) AsLoggerConfig(app App) obs.LogConfig {
	return obs.LogConfig{
		Level:  lc.Level,
		Pretty: lc.Pretty,
		App:    app.Name,
		Env:    app.Env,
		Ver:    app.Version,
	}
}

type Config struct {
	App    App       `mapstructure:"app"`
	DB     pg.Config `mapstructure:"db"`
	Files  Files     `mapstructure:"files"`
	Import ImportCfg `mapstructure:"import"`
	Log    Log       `mapstructure:"log"`
}
