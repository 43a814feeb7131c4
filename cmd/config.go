package main

import "time"

type Config struct {
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=5000"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath   string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	ReapInterval    time.Duration `env:"REAP_INTERVAL,default=15s"`
	ParticipantTTL  time.Duration `env:"PARTICIPANT_TTL,default=10s"`
	HealthInterval  time.Duration `env:"HEALTH_INTERVAL,default=30s"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	CensoredWords   string        `env:"CENSORED_WORDS"`
	AllowedOrigins  string        `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
}
