package player

import (
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Player воспроизводит синтезированное аудио потоком.
type Player interface {
	Play(r io.ReadCloser) error
}

// MP3 реализует Player для mp3 — штатного формата сервиса readaloud.
type MP3 struct{ volumeDB float64 }

// New создаёт плеер без изменения громкости (0 dB).
func New() *MP3 { return &MP3{volumeDB: 0} }

// NewWithVolume создаёт плеер с предустановленной громкостью в dB (отрицательные — тише).
func NewWithVolume(db float64) *MP3 { return &MP3{volumeDB: db} }

func (p *MP3) Play(r io.ReadCloser) error {
	streamer, format, err := mp3.Decode(r)
	if err != nil {
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	vol := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   p.volumeDB,
		Silent:   false,
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	<-done
	return nil
}
