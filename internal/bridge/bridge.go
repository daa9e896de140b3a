package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"EdgeTTSBridge/internal/service/tts/edge"
)

// ChunkStream — ленивый упорядоченный источник чанков синтеза.
// io.EOF означает нормальный конец потока; любая другая ошибка фатальна.
type ChunkStream interface {
	Next() (edge.Chunk, error)
}

// Boundary одно событие границы слова; поля ровно как отдал сервис.
type Boundary struct {
	Offset   int64  `json:"offset"`
	Duration int64  `json:"duration"`
	Text     string `json:"text"`
}

// Result итоговый документ моста: всё аудио подряд плюс события границ слов.
// Audio сериализуется encoding/json как base64 — ровно нужный внешний формат.
type Result struct {
	Audio      []byte     `json:"audio"`
	Boundaries []Boundary `json:"boundaries"`
}

// Drain вычитывает поток до конца, раскладывая чанки по двум накопителям
// в порядке прихода. Первая же ошибка прерывает всё: частичный результат
// отбрасывается. Пустой поток — не ошибка (пустое аудио, пустой список границ).
func Drain(s ChunkStream) (*Result, error) {
	res := &Result{Audio: []byte{}, Boundaries: []Boundary{}}
	for {
		ch, err := s.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		switch ch.Kind {
		case edge.KindAudio:
			res.Audio = append(res.Audio, ch.Data...)
		case edge.KindBoundary:
			res.Boundaries = append(res.Boundaries, Boundary{
				Offset:   ch.Offset,
				Duration: ch.Duration,
				Text:     ch.Text,
			})
		default:
			// будущие виды чанков пропускаем
		}
	}
}

// Run вычитывает поток и пишет результат одной строкой JSON в w.
// До успешного завершения потока в w не попадает ни байта, поэтому
// вывод либо пуст, либо содержит один целый документ.
func Run(w io.Writer, s ChunkStream) error {
	res, err := Drain(s)
	if err != nil {
		return err
	}
	b, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("bridge: не удалось сериализовать результат: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(b)); err != nil {
		return fmt.Errorf("bridge: не удалось записать результат: %w", err)
	}
	return nil
}
