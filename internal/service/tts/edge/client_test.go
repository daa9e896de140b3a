package edge

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"EdgeTTSBridge/internal/config"

	"github.com/gorilla/websocket"
)

// handshakeCapture — что тестовый сервер получил от клиента до ответных фреймов.
type handshakeCapture struct {
	speechConfig string
	ssml         string
}

// ttsServer поднимает тестовый WebSocket-сервер: принимает speech.config и SSML,
// затем передаёт управление frames для отправки ответных фреймов.
func ttsServer(t *testing.T, frames func(conn *websocket.Conn)) (*httptest.Server, <-chan handshakeCapture) {
	t.Helper()
	captured := make(chan handshakeCapture, 1)
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("TrustedClientToken") == "" {
			t.Error("handshake without TrustedClientToken")
		}
		if r.URL.Query().Get("Sec-MS-GEC") == "" {
			t.Error("handshake without Sec-MS-GEC")
		}
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		_, sc, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("read speech.config: %v", err)
			return
		}
		_, ssml, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("read ssml: %v", err)
			return
		}
		captured <- handshakeCapture{speechConfig: string(sc), ssml: string(ssml)}

		frames(conn)
	}))
	return srv, captured
}

func wsEndpoint(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestStreamAgainstFakeService(t *testing.T) {
	srv, captured := ttsServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte("Path:turn.start\r\n\r\n{}"))
		_ = conn.WriteMessage(websocket.BinaryMessage, binFrame("Path:audio", []byte{0x01, 0x02}))
		meta := `{"Metadata":[{"Type":"WordBoundary","Data":{"Offset":0,"Duration":500000,"text":{"Text":"Hi"}}}]}`
		_ = conn.WriteMessage(websocket.TextMessage, []byte("Path:audio.metadata\r\n\r\n"+meta))
		_ = conn.WriteMessage(websocket.TextMessage, []byte("Path:turn.end\r\n\r\n{}"))
	})
	defer srv.Close()

	client := New(Config{Endpoint: wsEndpoint(srv)}, nil)
	stream, err := client.Stream(context.Background(), "Hi")
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	defer stream.Close()

	var chunks []Chunk
	for {
		ch, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		chunks = append(chunks, ch)
	}

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Kind != KindAudio || string(chunks[0].Data) != "\x01\x02" {
		t.Fatalf("first chunk must be the audio: %+v", chunks[0])
	}
	if chunks[1].Kind != KindBoundary || chunks[1].Text != "Hi" || chunks[1].Duration != 500000 {
		t.Fatalf("second chunk must be the boundary: %+v", chunks[1])
	}

	got := <-captured
	// Сессия обязана явно просить события границ слов
	if !strings.Contains(got.speechConfig, `"wordBoundaryEnabled":"true"`) {
		t.Fatalf("speech.config does not request word boundaries:\n%s", got.speechConfig)
	}
	if !strings.Contains(got.ssml, ">Hi<") || !strings.Contains(got.ssml, "en-US-GuyNeural") {
		t.Fatalf("ssml missing text or default voice:\n%s", got.ssml)
	}
}

func TestNewFromAppConfig(t *testing.T) {
	// Конфигурация приложения конвертируется в конфигурацию клиента напрямую:
	// поля структур совпадают один в один.
	ec := config.Defaults().EdgeTTS
	ec.Voice = "ru-RU-DmitryNeural"

	client := New(Config(ec), nil)
	if client.cfg.Voice != "ru-RU-DmitryNeural" {
		t.Fatalf("voice lost in conversion: %q", client.cfg.Voice)
	}
	if client.cfg.Rate != "+0%" || client.cfg.Pitch != "+0Hz" {
		t.Fatalf("rate/pitch lost in conversion: %q/%q", client.cfg.Rate, client.cfg.Pitch)
	}
	// Пустой endpoint из конфига добивается дефолтом сервиса
	if client.cfg.Endpoint != defaultEndpoint {
		t.Fatalf("expected default endpoint, got %q", client.cfg.Endpoint)
	}
}

func TestStreamHandshakeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	client := New(Config{Endpoint: wsEndpoint(srv)}, nil)
	if _, err := client.Stream(context.Background(), "Hi"); err == nil {
		t.Fatal("expected handshake error")
	} else if !strings.Contains(err.Error(), "HTTP 403") {
		t.Fatalf("expected HTTP status in diagnostics, got %v", err)
	}
}

func TestStreamServerDrop(t *testing.T) {
	srv, _ := ttsServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.BinaryMessage, binFrame("Path:audio", []byte{0x01}))
		// Обрываем соединение до turn.end
		_ = conn.Close()
	})
	defer srv.Close()

	client := New(Config{Endpoint: wsEndpoint(srv)}, nil)
	stream, err := client.Stream(context.Background(), "Hi")
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	defer stream.Close()

	if _, err := stream.Next(); err != nil {
		t.Fatalf("first chunk must arrive before the drop: %v", err)
	}
	if _, err := stream.Next(); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("drop before turn.end must surface as a fault, got %v", err)
	}
}
