package edge

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// buildSSML собирает SSML-конверт одного запроса синтеза.
// rate/pitch/volume уходят в prosody как есть — их синтаксис проверяет сам сервис.
func buildSSML(text string, cfg Config) string {
	return fmt.Sprintf(
		"<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'>"+
			"<voice name='%s'><prosody pitch='%s' rate='%s' volume='%s'>%s</prosody></voice></speak>",
		escapeXML(cfg.Voice), escapeXML(cfg.Pitch), escapeXML(cfg.Rate), escapeXML(cfg.Volume), escapeXML(text))
}

func escapeXML(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
