package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate частота дискретизации контекста
const SampleRate = 44100

// ErrUnknownSound нет звука с таким именем
var ErrUnknownSound = errors.New("unknown sound")

// Tone синтезируемый звуковой сигнал
type Tone struct {
	Frequency float64 // Гц
	Duration  float64 // секунды
	Slide     float64 // изменение частоты к концу сигнала, Гц
}

// DefaultTones сигналы игровых событий
var DefaultTones = map[string]Tone{
	"fire":       {Frequency: 660, Duration: 0.08, Slide: 220},
	"absorb":     {Frequency: 440, Duration: 0.15, Slide: -220},
	"pickup":     {Frequency: 880, Duration: 0.12},
	"checkpoint": {Frequency: 523, Duration: 0.25, Slide: 262},
	"death":      {Frequency: 220, Duration: 0.4, Slide: -110},
}

// Manager отвечает за аудио в игре
type Manager struct {
	isMuted bool
	volume  float64

	tones   map[string]Tone
	pcm     map[string][]byte
	players map[string]*audio.Player
	context *audio.Context
	logger  *slog.Logger
}

// NewManager создает новый аудио менеджер
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		volume:  0.5, // Средняя громкость по умолчанию
		tones:   DefaultTones,
		pcm:     make(map[string][]byte),
		players: make(map[string]*audio.Player),
		logger:  logger.With("component", "audio"),
	}
}

// PlaySound воспроизводит звуковой эффект
func (m *Manager) PlaySound(soundName string) error {
	if m.isMuted {
		return nil
	}
	tone, ok := m.tones[soundName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, soundName)
	}

	p, ok := m.players[soundName]
	if !ok {
		// Контекст создается лениво: без звуковых событий он не нужен
		if m.context == nil {
			m.context = audio.CurrentContext()
			if m.context == nil {
				m.context = audio.NewContext(SampleRate)
			}
		}
		p = m.context.NewPlayerFromBytes(m.samples(soundName, tone))
		m.players[soundName] = p
	}

	p.SetVolume(m.volume)
	if err := p.Rewind(); err != nil {
		return fmt.Errorf("rewind %q: %w", soundName, err)
	}
	p.Play()
	m.logger.Debug("sound", "name", soundName)
	return nil
}

func (m *Manager) samples(name string, t Tone) []byte {
	if b, ok := m.pcm[name]; ok {
		return b
	}
	b := Synthesize(t, SampleRate)
	m.pcm[name] = b
	return b
}

// SetVolume устанавливает общую громкость, 0..1
func (m *Manager) SetVolume(volume float64) {
	m.volume = math.Max(0, math.Min(1, volume))
	for _, p := range m.players {
		p.SetVolume(m.volume)
	}
}

// Volume текущая громкость
func (m *Manager) Volume() float64 {
	return m.volume
}

// Mute выключает звук
func (m *Manager) Mute() {
	m.isMuted = true
	for _, p := range m.players {
		p.Pause()
	}
}

// Unmute включает звук
func (m *Manager) Unmute() {
	m.isMuted = false
}

// Muted выключен ли звук
func (m *Manager) Muted() bool {
	return m.isMuted
}

// Synthesize синусоида в формате контекста ebiten: 16 бит, little endian,
// стерео. Концы сглажены, чтобы не щелкало.
func Synthesize(t Tone, sampleRate int) []byte {
	n := int(t.Duration * float64(sampleRate))
	if n <= 0 {
		return nil
	}
	out := make([]byte, n*4)
	fade := max(1, min(n/10, sampleRate/200))

	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.Frequency + t.Slide*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)

		env := 1.0
		if i < fade {
			env = float64(i) / float64(fade)
		} else if n-i <= fade {
			env = float64(n-i-1) / float64(fade)
		}

		v := int16(math.Sin(phase) * env * 0.6 * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}
