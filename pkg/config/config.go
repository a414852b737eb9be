package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Google holds the OAuth and Gmail endpoints used by the receipt pipeline.
// The endpoints are configurable so tests can point them at local servers.
type Google struct {
	AuthURL      string        `envconfig:"AUTH_URL" default:"https://accounts.google.com/o/oauth2/v2/auth"`
	TokenURL     string        `envconfig:"TOKEN_URL" default:"https://oauth2.googleapis.com/token"`
	GmailBaseURL string        `envconfig:"GMAIL_BASE_URL" default:"https://gmail.googleapis.com/gmail/v1"`
	Scope        string        `envconfig:"SCOPE" default:"https://www.googleapis.com/auth/gmail.readonly"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

// Receipt controls the candidate-message search of the sync pipeline.
type Receipt struct {
	Query      string `envconfig:"QUERY" default:"from:no-reply@gojek.com \"Bukti Pembayaran\""`
	MaxResults int64  `envconfig:"MAX_RESULTS" default:"10"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[fitracker]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Jwt       *Jwt       `envconfig:"JWT"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Google    *Google    `envconfig:"GOOGLE"`
	Receipt   *Receipt   `envconfig:"RECEIPT"`
}
