package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode bool          `env:"DEBUG_MODE"` // Режим дебага: диагностика в stderr
	EdgeTTS   EdgeTTSConfig // Конфигурация синтеза (Edge readaloud)
}

// EdgeTTSConfig конфигурация синтеза речи через сервис Edge readaloud.
type EdgeTTSConfig struct {
	Endpoint     string `env:"EDGE_TTS_ENDPOINT"`      // WebSocket endpoint; пусто — штатный endpoint сервиса
	Voice        string `env:"EDGE_TTS_VOICE"`         // Голос, напр. en-US-GuyNeural или ru-RU-SvetlanaNeural
	Rate         string `env:"EDGE_TTS_RATE"`          // Скорость со знаком, напр. +10% или -20%. Синтаксис проверяет сам сервис
	Pitch        string `env:"EDGE_TTS_PITCH"`         // Тон со знаком в герцах, напр. +5Hz или -50Hz
	Volume       string `env:"EDGE_TTS_VOLUME"`        // Громкость со знаком, напр. +0%
	OutputFormat string `env:"EDGE_TTS_OUTPUT_FORMAT"` // Формат аудио на выходе сервиса
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode: false,
		EdgeTTS: EdgeTTSConfig{
			Voice:        "en-US-GuyNeural",
			Rate:         "+0%",
			Pitch:        "+0Hz",
			Volume:       "+0%",
			OutputFormat: "audio-24khz-48kbitrate-mono-mp3",
		},
	}
}

// NewConfig загружает конфигурацию: дефолты, затем .env и переменные окружения.
// Флаги CLI каждая утилита накладывает поверх сама (дефолты флагов берутся из конфига).
func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := Defaults()
	_ = env.Parse(cfg)
	return cfg
}
