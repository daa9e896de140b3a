package main

import (
	"EdgeTTSBridge/internal/bridge"
	"EdgeTTSBridge/internal/config"
	"EdgeTTSBridge/internal/service/tts/edge"
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Мост к сервису Edge TTS для вызова из внешнего процесса.
// В stdout попадает ровно один JSON-документ:
//
//	{"audio":"<base64>","boundaries":[{"offset":..,"duration":..,"text":".."},...]}
//
// При любой ошибке stdout остаётся пустым, в stderr уходит "Error: ...", код выхода 1.
// Пример запуска:
//
//	go run ./cmd/edge-tts-bridge -text "Привет" -voice ru-RU-SvetlanaNeural
func main() {
	var (
		text   string
		voice  string
		rate   string
		pitch  string
		volume string
		debug  bool
	)

	cfg := config.NewConfig()

	flag.StringVar(&text, "text", "", "Текст для синтеза речи (обязательный; пустое значение допустимо)")
	flag.StringVar(&voice, "voice", cfg.EdgeTTS.Voice, "Голос (напр. en-US-GuyNeural, ru-RU-SvetlanaNeural)")
	flag.StringVar(&rate, "rate", cfg.EdgeTTS.Rate, "Скорость со знаком, напр. +10% или -20%")
	flag.StringVar(&pitch, "pitch", cfg.EdgeTTS.Pitch, "Тон со знаком, напр. +5Hz или -50Hz")
	flag.StringVar(&volume, "volume", cfg.EdgeTTS.Volume, "Громкость со знаком, напр. +0%")
	flag.BoolVar(&debug, "debug", cfg.DebugMode, "Диагностика в stderr (stdout не трогается)")
	flag.Parse()

	// Требуем сам флаг, а не непустое значение: пустой текст отдаём сервису как есть.
	textSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "text" {
			textSet = true
		}
	})
	if !textSet {
		fail(fmt.Errorf("флаг -text обязателен"))
	}

	// Логгер включаем только в режиме дебага: в обычном режиме stderr
	// зарезервирован под единственную строку "Error: ...".
	var logger *zap.SugaredLogger
	if debug {
		zl, _ := zap.NewDevelopment()
		defer zl.Sync() // flush
		logger = zl.Sugar()
	}

	ec := cfg.EdgeTTS
	ec.Voice = voice
	ec.Rate = rate
	ec.Pitch = pitch
	ec.Volume = volume
	client := edge.New(edge.Config(ec), logger)

	// Таймаут намеренно не ставим: мост живёт ровно столько, сколько отвечает сервис.
	ctx := context.Background()

	stream, err := client.Stream(ctx, text)
	if err != nil {
		fail(err)
	}
	defer stream.Close()

	if err := bridge.Run(os.Stdout, stream); err != nil {
		fail(err)
	}

	if logger != nil {
		logger.Infow("Edge TTS bridge finished")
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
