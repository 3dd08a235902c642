package settings

type Config struct {
	Logger   Logger   `mapstructure:"logger" yaml:"logger"`
	Redis    Redis    `mapstructure:"redis" yaml:"redis"`
	Queue    Queue    `mapstructure:"queue" yaml:"queue"`
	Progress Progress `mapstructure:"progress" yaml:"progress"`
	Solver   Solver   `mapstructure:"solver" yaml:"solver"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FileLogName string `mapstructure:"file_log_name" yaml:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age" validate:"gte=0"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size" validate:"gte=0"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// Redis is the configuration for Redis
type Redis struct {
	Host            string `mapstructure:"host" yaml:"host"`
	Port            int    `mapstructure:"port" yaml:"port" validate:"gte=0,lte=65535"`
	Password        string `mapstructure:"password" yaml:"password"`
	Database        int    `mapstructure:"database" yaml:"database" validate:"gte=0"`
	PoolSize        int    `mapstructure:"pool_size" yaml:"pool_size" validate:"gte=0"`
	MinIdleConns    int    `mapstructure:"min_idle_conns" yaml:"min_idle_conns" validate:"gte=0"`
	PoolTimeout     int    `mapstructure:"pool_timeout" yaml:"pool_timeout" validate:"gte=0"`           // Seconds
	DialTimeout     int    `mapstructure:"dial_timeout" yaml:"dial_timeout" validate:"gte=0"`           // Seconds
	ReadTimeout     int    `mapstructure:"read_timeout" yaml:"read_timeout" validate:"gte=0"`           // Seconds
	WriteTimeout    int    `mapstructure:"write_timeout" yaml:"write_timeout" validate:"gte=0"`         // Seconds
	MaxRetries      int    `mapstructure:"max_retries" yaml:"max_retries" validate:"gte=0"`             // Number of retries
	MaxRetryBackoff int    `mapstructure:"max_retry_backoff" yaml:"max_retry_backoff" validate:"gte=0"` // Milliseconds
	MinRetryBackoff int    `mapstructure:"min_retry_backoff" yaml:"min_retry_backoff" validate:"gte=0"` // Milliseconds
	KeyPrefix       string `mapstructure:"key_prefix" yaml:"key_prefix"`
	TTL             int    `mapstructure:"ttl" yaml:"ttl" validate:"gte=0"` // Seconds, 0 keeps checkpoints forever
}

// Queue is the configuration for worklist queues
type Queue struct {
	InitialCapacity int `mapstructure:"initial_capacity" yaml:"initial_capacity" validate:"gte=0"`
	MaxCapacity     int `mapstructure:"max_capacity" yaml:"max_capacity" validate:"omitempty,gte=4"`
}

// Progress is the configuration for the console progress meter
type Progress struct {
	Interval int    `mapstructure:"interval" yaml:"interval" validate:"gte=0"` // Milliseconds
	Label    string `mapstructure:"label" yaml:"label"`
}

// Solver is the configuration for the external optimisation engine
type Solver struct {
	Path    string   `mapstructure:"path" yaml:"path"`
	Args    []string `mapstructure:"args" yaml:"args"`
	Timeout int      `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"` // Seconds
}
