package config

// Config holds all configuration for the application.
type Config struct {
	LogLevel string `koanf:"log_level"`
	Port     string `koanf:"port"`
	// ServerURL is where the CLI reaches a running server.
	ServerURL string `koanf:"server_url"`
	// DefaultEnvironment is the environment maintenance operations resolve
	// player names in.
	DefaultEnvironment int            `koanf:"default_environment"`
	DryRun             bool           `koanf:"dry_run"`
	Database           DatabaseConfig `koanf:"database"`
	Slack              SlackConfig    `koanf:"slack"`
	PubSub             PubSubConfig   `koanf:"pubsub"`
}

type DatabaseConfig struct {
	Driver string      `koanf:"driver"`
	Path   string      `koanf:"path"`
	DSN    string      `koanf:"dsn"`
	Turso  TursoConfig `koanf:"turso"`
}

type TursoConfig struct {
	PrimaryURL string `koanf:"primary_url"`
	AuthToken  string `koanf:"auth_token"`
}

type SlackConfig struct {
	Token     string `koanf:"token"`
	ChannelID string `koanf:"channel_id"`
}

type PubSubConfig struct {
	ProjectID string `koanf:"project_id"`
}
