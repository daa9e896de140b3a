package main

import (
	"EdgeTTSBridge/internal/service/tts/edge"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// Небольшая утилита: запрашивает каталог голосов сервиса Edge readaloud
// и печатает его в человекочитаемом виде. Удобно для подбора значения -voice.
func main() {
	var (
		locale string
		full   bool
	)

	flag.StringVar(&locale, "locale", "", "Фильтр по локали, напр. ru-RU или en-US (пусто — все)")
	flag.BoolVar(&full, "full", false, "Печатать полный JSON вместо краткой таблицы")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	voices, err := edge.ListVoices(ctx)
	if err != nil {
		fmt.Println("не удалось получить каталог голосов:", err)
		os.Exit(1)
	}

	if locale != "" {
		filtered := voices[:0]
		for _, v := range voices {
			if strings.EqualFold(v.Locale, locale) {
				filtered = append(filtered, v)
			}
		}
		voices = filtered
	}

	if full {
		out, _ := json.MarshalIndent(voices, "", "  ")
		fmt.Println(string(out))
		return
	}

	for _, v := range voices {
		fmt.Printf("%-40s %-8s %s\n", v.ShortName, v.Gender, v.Locale)
	}
	fmt.Printf("Всего голосов: %d\n", len(voices))
}
