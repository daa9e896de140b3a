package edge

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gorilla/websocket"
)

// ChunkKind вид чанка потоковой сессии.
type ChunkKind int

const (
	// KindAudio — очередная порция аудио.
	KindAudio ChunkKind = iota
	// KindBoundary — событие границы слова (offset/duration в 100-нс тиках сервиса).
	KindBoundary
)

// Chunk — единица потока синтеза: либо аудио, либо граница слова.
type Chunk struct {
	Kind     ChunkKind
	Data     []byte // только для KindAudio
	Offset   int64  // только для KindBoundary
	Duration int64  // только для KindBoundary
	Text     string // только для KindBoundary
}

// Stream — ленивая упорядоченная последовательность чанков одной сессии синтеза.
// Не перезапускается; каждый Next может завершиться ошибкой. Горутин внутри нет:
// единственная точка ожидания — чтение следующего сообщения из WebSocket.
type Stream struct {
	conn    *websocket.Conn
	pending []Chunk
	done    bool
	err     error
}

// Next возвращает следующий чанк в порядке прихода от сервиса.
// После нормального завершения сессии (turn.end) возвращает io.EOF.
// Любая ошибка фатальна: после неё Next возвращает её же при повторных вызовах.
func (s *Stream) Next() (Chunk, error) {
	for {
		if len(s.pending) > 0 {
			ch := s.pending[0]
			s.pending = s.pending[1:]
			return ch, nil
		}
		if s.err != nil {
			return Chunk{}, s.err
		}
		if s.done {
			return Chunk{}, io.EOF
		}

		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			s.err = fmt.Errorf("edge tts: обрыв потока: %w", err)
			return Chunk{}, s.err
		}
		switch msgType {
		case websocket.TextMessage:
			chunks, done, err := parseTextFrame(data)
			if err != nil {
				s.err = err
				return Chunk{}, s.err
			}
			s.pending = append(s.pending, chunks...)
			s.done = done
		case websocket.BinaryMessage:
			ch, ok, err := parseBinaryFrame(data)
			if err != nil {
				s.err = err
				return Chunk{}, s.err
			}
			if ok {
				s.pending = append(s.pending, ch)
			}
		}
	}
}

// Close закрывает соединение сессии.
func (s *Stream) Close() error {
	return s.conn.Close()
}

// parseTextFrame разбирает текстовый фрейм сервиса. Возвращает чанки границ слов
// (из audio.metadata) и признак конца сессии (turn.end). Незнакомые Path пропускаются.
func parseTextFrame(data []byte) ([]Chunk, bool, error) {
	head, body, found := bytes.Cut(data, []byte("\r\n\r\n"))
	if !found {
		return nil, false, fmt.Errorf("edge tts: текстовый фрейм без разделителя заголовков")
	}
	switch framePath(head) {
	case "turn.end":
		return nil, true, nil
	case "audio.metadata":
		chunks, err := parseMetadata(body)
		return chunks, false, err
	default:
		// turn.start, response и возможные будущие пути
		return nil, false, nil
	}
}

// parseBinaryFrame разбирает бинарный фрейм: 2 байта big-endian — длина блока
// заголовков, дальше сами заголовки (ожидаем Path:audio) и полезная нагрузка.
func parseBinaryFrame(data []byte) (Chunk, bool, error) {
	if len(data) < 2 {
		return Chunk{}, false, fmt.Errorf("edge tts: бинарный фрейм короче префикса заголовков")
	}
	headLen := int(binary.BigEndian.Uint16(data[:2]))
	if 2+headLen > len(data) {
		return Chunk{}, false, fmt.Errorf("edge tts: заявленная длина заголовков %d выходит за фрейм", headLen)
	}
	if framePath(data[2:2+headLen]) != "audio" {
		return Chunk{}, false, nil
	}
	payload := data[2+headLen:]
	if len(payload) == 0 {
		// Пустой audio-фрейм сервис шлёт перед turn.end
		return Chunk{}, false, nil
	}
	return Chunk{Kind: KindAudio, Data: payload}, true, nil
}

// framePath достаёт значение заголовка Path из блока заголовков фрейма.
func framePath(head []byte) string {
	for _, line := range strings.Split(string(head), "\r\n") {
		if k, v, ok := strings.Cut(line, ":"); ok && strings.EqualFold(strings.TrimSpace(k), "Path") {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Схема audio.metadata сервиса readaloud.
type metadataPayload struct {
	Metadata []struct {
		Type string `json:"Type"`
		Data struct {
			Offset   int64 `json:"Offset"`
			Duration int64 `json:"Duration"`
			Text     struct {
				Text string `json:"Text"`
			} `json:"text"`
		} `json:"Data"`
	} `json:"Metadata"`
}

func parseMetadata(body []byte) ([]Chunk, error) {
	var p metadataPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("edge tts: не удалось разобрать audio.metadata: %w", err)
	}
	var out []Chunk
	for _, m := range p.Metadata {
		// SentenceBoundary и будущие типы пропускаем
		if m.Type != "WordBoundary" {
			continue
		}
		out = append(out, Chunk{
			Kind:     KindBoundary,
			Offset:   m.Data.Offset,
			Duration: m.Data.Duration,
			Text:     m.Data.Text.Text,
		})
	}
	return out, nil
}
