package main

import (
	"EdgeTTSBridge/internal/bridge"
	"EdgeTTSBridge/internal/config"
	"EdgeTTSBridge/internal/service/tts/edge"
	"EdgeTTSBridge/internal/service/tts/player"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Утилита для проверки синтеза на слух: синтезирует текст через Edge TTS
// и сразу воспроизводит результат либо сохраняет mp3 в файл.
// Пример запуска:
//
//	go run ./cmd/edge-tts-play -text "Проверка связи" -voice ru-RU-DmitryNeural
func main() {
	var (
		text     string
		voice    string
		rate     string
		pitch    string
		volumeDB float64
		out      string
		play     bool
	)

	cfg := config.NewConfig()

	// Немного разумных дефолтов
	flag.StringVar(&text, "text", "Это тестовый запрос к сервису Edge TTS. Проверка связи и синтеза речи.", "Текст для синтеза речи")
	flag.StringVar(&voice, "voice", cfg.EdgeTTS.Voice, "Голос (напр. en-US-GuyNeural, ru-RU-SvetlanaNeural)")
	flag.StringVar(&rate, "rate", cfg.EdgeTTS.Rate, "Скорость со знаком, напр. +10%")
	flag.StringVar(&pitch, "pitch", cfg.EdgeTTS.Pitch, "Тон со знаком, напр. -5Hz")
	flag.Float64Var(&volumeDB, "volume-db", 0, "Громкость воспроизведения в dB (отрицательные — тише)")
	flag.StringVar(&out, "out", "speech.mp3", "Имя выходного файла (в текущем каталоге), если не включено -play")
	flag.BoolVar(&play, "play", true, "Сразу воспроизвести результат без сохранения файла")
	flag.Parse()

	zl, _ := zap.NewDevelopment()
	defer zl.Sync() // flush
	logger := zl.Sugar()

	ec := cfg.EdgeTTS
	ec.Voice = voice
	ec.Rate = rate
	ec.Pitch = pitch
	client := edge.New(edge.Config(ec), logger)

	stream, err := client.Stream(context.Background(), text)
	if err != nil {
		logger.Errorw("Edge TTS stream failed", "error", err)
		os.Exit(1)
	}
	defer stream.Close()

	res, err := bridge.Drain(stream)
	if err != nil {
		logger.Errorw("Edge TTS synthesize failed", "error", err)
		os.Exit(1)
	}
	logger.Infow("Edge TTS synthesize completed", "audio_bytes", len(res.Audio), "boundaries", len(res.Boundaries))

	if play {
		var p player.Player = player.New()
		if volumeDB != 0 {
			p = player.NewWithVolume(volumeDB)
		}
		if err := p.Play(io.NopCloser(bytes.NewReader(res.Audio))); err != nil {
			logger.Errorw("playback failed", "error", err)
			os.Exit(1)
		}
		logger.Infow("playback finished")
		return
	}

	// Сохраняем в рабочую директорию (чтобы не удивляться temp-пути при go run)
	wd, err := os.Getwd()
	if err != nil {
		logger.Errorw("cannot get working directory", "error", err)
		os.Exit(1)
	}
	outPath := filepath.Join(wd, out)
	if err := os.WriteFile(outPath, res.Audio, 0644); err != nil {
		logger.Errorw("cannot save audio", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Готово. Аудио сохранено в: %s\n", outPath)
}
