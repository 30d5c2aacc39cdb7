package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	Auth  Auth  `envPrefix:"AUTH_"`
	Order Order `envPrefix:"ORDER_"`
	Proof Proof `envPrefix:"PROOF_"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type Order struct {
	// how long a customer has to transfer and submit proof
	PaymentWindow time.Duration `env:"PAYMENT_WINDOW" envDefault:"24h"`
	// how often clients should re-fetch a still-changing order
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"30s"`
}

type Proof struct {
	MaxBytes     int64    `env:"MAX_BYTES" envDefault:"5242880"`
	AllowedTypes []string `env:"ALLOWED_TYPES" envDefault:"image/jpeg,image/png,image/webp,application/pdf"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
