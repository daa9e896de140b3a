package edge

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// Сервис readaloud пускает только "браузерных" клиентов: клиентский токен Edge
// плюс подпись Sec-MS-GEC в query рукопожатия.
const (
	trustedClientToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"
	chromiumFull       = "130.0.2849.68"
	secMSGECVersion    = "1-" + chromiumFull

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/130.0.0.0 Safari/537.36 Edg/130.0.0.0"
)

// Смещение между эпохой Windows (1601) и Unix (1970), в секундах.
const winEpochOffset = 11644473600

// secMSGEC вычисляет подпись Sec-MS-GEC: SHA-256 от 100-нс тиков Windows-эпохи,
// округлённых вниз до 5 минут, с приклеенным клиентским токеном; hex в верхнем регистре.
func secMSGEC(now time.Time) string {
	s := now.UTC().Unix() + winEpochOffset
	s -= s % 300
	ticks := s * 10_000_000
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d%s", ticks, trustedClientToken)))
	return strings.ToUpper(fmt.Sprintf("%x", sum))
}
