package edge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Endpoint WebSocket сервиса Edge readaloud (тот же, что использует браузер).
const defaultEndpoint = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1"

// Значения по умолчанию; совпадают с config.Defaults().
const (
	DefaultVoice        = "en-US-GuyNeural"
	DefaultRate         = "+0%"
	DefaultPitch        = "+0Hz"
	DefaultVolume       = "+0%"
	DefaultOutputFormat = "audio-24khz-48kbitrate-mono-mp3"
)

// Config настройки клиента синтеза.
type Config struct {
	Endpoint     string // Пусто — штатный endpoint сервиса
	Voice        string
	Rate         string // Со знаком, напр. +10%; локально не валидируется
	Pitch        string // Со знаком, напр. -50Hz; локально не валидируется
	Volume       string
	OutputFormat string
}

// Client открывает потоковые сессии синтеза против сервиса readaloud.
type Client struct {
	cfg    Config
	logger *zap.SugaredLogger
}

// New создаёт клиент, без установления соединения. logger может быть nil.
func New(cfg Config, logger *zap.SugaredLogger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Voice == "" {
		cfg.Voice = DefaultVoice
	}
	if cfg.Rate == "" {
		cfg.Rate = DefaultRate
	}
	if cfg.Pitch == "" {
		cfg.Pitch = DefaultPitch
	}
	if cfg.Volume == "" {
		cfg.Volume = DefaultVolume
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = DefaultOutputFormat
	}
	return &Client{cfg: cfg, logger: logger}
}

// Stream открывает сессию синтеза для text: рукопожатие, speech.config
// (с явно включёнными событиями границ слов — без этого сервис их не шлёт),
// затем SSML. Чанки вычитываются из возвращённого Stream строго по порядку.
func (c *Client) Stream(ctx context.Context, text string) (*Stream, error) {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("edge tts: неверный endpoint: %w", err)
	}
	connID := strings.ReplaceAll(uuid.NewString(), "-", "")
	q := u.Query()
	q.Set("TrustedClientToken", trustedClientToken)
	q.Set("Sec-MS-GEC", secMSGEC(time.Now()))
	q.Set("Sec-MS-GEC-Version", secMSGECVersion)
	q.Set("ConnectionId", connID)
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{
		Proxy:             http.ProxyFromEnvironment,
		HandshakeTimeout:  15 * time.Second,
		EnableCompression: false,
	}
	header := http.Header{}
	header.Set("Pragma", "no-cache")
	header.Set("Cache-Control", "no-cache")
	header.Set("Origin", "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold")
	header.Set("User-Agent", userAgent)

	conn, resp, err := dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		// Улучшим диагностику рукопожатия, если доступен HTTP-ответ.
		if resp != nil {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("edge tts: не удалось подключиться к %s: %s (HTTP %d): %w", u.Host, http.StatusText(resp.StatusCode), resp.StatusCode, err)
		}
		return nil, fmt.Errorf("edge tts: не удалось подключиться к %s: %w", u.Host, err)
	}

	ts := timestamp(time.Now())
	speechConfig := "X-Timestamp:" + ts + "\r\n" +
		"Content-Type:application/json; charset=utf-8\r\n" +
		"Path:speech.config\r\n\r\n" +
		`{"context":{"synthesis":{"audio":{"metadataoptions":` +
		`{"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"true"},` +
		`"outputFormat":"` + c.cfg.OutputFormat + `"}}}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(speechConfig)); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("edge tts: не удалось отправить speech.config: %w", err)
	}

	ssml := "X-RequestId:" + connID + "\r\n" +
		"Content-Type:application/ssml+xml\r\n" +
		"X-Timestamp:" + ts + "Z\r\n" +
		"Path:ssml\r\n\r\n" +
		buildSSML(text, c.cfg)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(ssml)); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("edge tts: не удалось отправить SSML: %w", err)
	}

	if c.logger != nil {
		c.logger.Infow("Edge TTS session opened", "voice", c.cfg.Voice, "connection_id", connID)
	}
	return &Stream{conn: conn}, nil
}

// timestamp в "браузерном" формате, который ожидает readaloud.
func timestamp(t time.Time) string {
	return t.UTC().Format("Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)")
}
