package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger adalah logger zerolog global yang dipakai di seluruh aplikasi.
// Sebelum Init dipanggil, Logger menulis ke stderr tanpa field tambahan.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init menyiapkan logger global dengan output JSON terstruktur.
// Level yang tidak dikenali jatuh ke info.
func Init(level, service string) {
	InitWithWriter(os.Stdout, level, service)
}

// InitWithWriter sama dengan Init, tetapi menulis ke w.
func InitWithWriter(w io.Writer, level, service string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	Logger = zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Logger()
}
