package edge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const voicesEndpoint = "https://speech.platform.bing.com/consumer/speech/synthesize/readaloud/voices/list"

// Voice описание голоса из каталога сервиса.
type Voice struct {
	Name           string `json:"Name"`
	ShortName      string `json:"ShortName"`
	Gender         string `json:"Gender"`
	Locale         string `json:"Locale"`
	SuggestedCodec string `json:"SuggestedCodec"`
	FriendlyName   string `json:"FriendlyName"`
	Status         string `json:"Status"`
}

// ListVoices запрашивает каталог доступных голосов readaloud.
func ListVoices(ctx context.Context) ([]Voice, error) {
	u, err := url.Parse(voicesEndpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("trustedclienttoken", trustedClientToken)
	q.Set("Sec-MS-GEC", secMSGEC(time.Now()))
	q.Set("Sec-MS-GEC-Version", secMSGECVersion)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	hc := &http.Client{Timeout: 20 * time.Second}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if len(b) == 0 {
			b = []byte(resp.Status)
		}
		return nil, fmt.Errorf("edge tts: каталог голосов вернул ошибку: status=%d, body=%s", resp.StatusCode, bytes.TrimSpace(b))
	}

	var voices []Voice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		return nil, fmt.Errorf("edge tts: не удалось разобрать каталог голосов: %w", err)
	}
	return voices, nil
}
