// Package audio plays the game's sound cues. All sounds are synthesized,
// so there are no assets to ship. Every call is fire-and-forget: without an
// audio device the game simply runs silent.
package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager owns the speaker and a mixer that all cues are added to.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *stoppable
	initialized bool
}

// NewSoundManager creates a silent manager. Call Initialize to open the device.
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device. Calling it twice is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Enabled reports whether sounds reach a device.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup silences everything.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.music != nil {
		sm.music.Stop()
		sm.music = nil
	}
	sm.mixer.Clear()
	sm.initialized = false
}

// HandleEvents plays the cue for each game event. Music starts with the
// first jump of a run.
func (sm *SoundManager) HandleEvents(events []core.Event) {
	for _, e := range events {
		switch e {
		case core.EventJump:
			sm.PlayJump()
			sm.StartMusic()
		case core.EventCoin:
			sm.PlayCoin()
		case core.EventStomp:
			sm.PlayStomp()
		case core.EventDamage, core.EventGameOver:
			sm.PlayHit()
		}
	}
}

// PlayJump plays a short rising chirp.
func (sm *SoundManager) PlayJump() {
	sm.play(beep.Take(sampleRate.N(120*time.Millisecond), NewSweepGenerator(sampleRate, 300, 700)))
}

// PlayCoin plays a bright two-note blip.
func (sm *SoundManager) PlayCoin() {
	sm.play(beep.Seq(
		beep.Take(sampleRate.N(60*time.Millisecond), NewToneGenerator(sampleRate, 988)),
		beep.Take(sampleRate.N(90*time.Millisecond), NewToneGenerator(sampleRate, 1319)),
	))
}

// PlayStomp plays a falling thud.
func (sm *SoundManager) PlayStomp() {
	sm.play(beep.Take(sampleRate.N(150*time.Millisecond), NewSweepGenerator(sampleRate, 400, 120)))
}

// PlayHit plays a low buzz.
func (sm *SoundManager) PlayHit() {
	sm.play(beep.Take(sampleRate.N(250*time.Millisecond), NewSweepGenerator(sampleRate, 160, 60)))
}

// StartMusic starts the looping background tune unless it is playing.
func (sm *SoundManager) StartMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.music != nil {
		return
	}
	sm.music = &stoppable{Streamer: beep.Loop(-1, NewMelodyGenerator(sampleRate, tune))}
	sm.mixer.Add(sm.music)
}

// StopMusic ends the background tune; the mixer drops it on its next pass.
// The next StartMusic plays it from the top.
func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.music != nil {
		sm.music.Stop()
		sm.music = nil
	}
}

// stoppable ends a stream on request. Unlike a paused beep.Ctrl, a stopped
// stream reports exhaustion, so the mixer removes it.
type stoppable struct {
	beep.Streamer
	stopped atomic.Bool
}

func (s *stoppable) Stream(samples [][2]float64) (int, bool) {
	if s.stopped.Load() {
		return 0, false
	}
	return s.Streamer.Stream(samples)
}

// Stop makes the next Stream call report the end.
func (s *stoppable) Stop() {
	s.stopped.Store(true)
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.mixer.Add(s)
}

// SweepGenerator glides a square-ish tone from one frequency to another
// over the first 150ms, fading out as it goes.
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	phase    float64
	pos      int
}

// NewSweepGenerator creates a frequency sweep.
func NewSweepGenerator(sr beep.SampleRate, from, to float64) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	span := float64(g.sr.N(150 * time.Millisecond))
	for i := range samples {
		progress := math.Min(float64(g.pos)/span, 1)
		freq := g.from + (g.to-g.from)*progress
		g.phase += freq / float64(g.sr)

		sample := 0.2 * math.Tanh(3*math.Sin(2*math.Pi*g.phase)) * (1 - progress*0.8)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// ToneGenerator is a plain sine tone with a short attack.
type ToneGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewToneGenerator creates a sine tone.
func NewToneGenerator(sr beep.SampleRate, freq float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		attack := math.Min(t/0.005, 1)
		sample := 0.18 * attack * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// note is a melody step; zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

// tune is a short loop in C major.
var tune = []note{
	{523.25, 200 * time.Millisecond}, {659.25, 200 * time.Millisecond},
	{783.99, 200 * time.Millisecond}, {659.25, 200 * time.Millisecond},
	{587.33, 200 * time.Millisecond}, {698.46, 200 * time.Millisecond},
	{880.00, 400 * time.Millisecond}, {0, 200 * time.Millisecond},
	{783.99, 200 * time.Millisecond}, {659.25, 200 * time.Millisecond},
	{523.25, 400 * time.Millisecond}, {0, 400 * time.Millisecond},
}

// MelodyGenerator plays a note sequence once, then reports exhaustion so
// beep.Loop can restart it.
type MelodyGenerator struct {
	sr    beep.SampleRate
	notes []note
	idx   int
	pos   int
}

// NewMelodyGenerator creates a one-pass melody.
func NewMelodyGenerator(sr beep.SampleRate, notes []note) *MelodyGenerator {
	return &MelodyGenerator{sr: sr, notes: notes}
}

func (g *MelodyGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if g.idx >= len(g.notes) {
			return n, n > 0
		}
		cur := g.notes[g.idx]
		length := g.sr.N(cur.dur)
		if g.pos >= length {
			g.idx++
			g.pos = 0
			continue
		}

		sample := 0.0
		if cur.freq > 0 {
			t := float64(g.pos) / float64(g.sr)
			// Gentle decay per note
			env := math.Exp(-3 * float64(g.pos) / float64(length))
			sample = 0.08 * env * math.Sin(2*math.Pi*cur.freq*t)
		}
		samples[n][0] = sample
		samples[n][1] = sample
		g.pos++
		n++
	}
	return n, true
}

func (g *MelodyGenerator) Err() error {
	return nil
}

// Position and Len let beep.Loop rewind the melody.
func (g *MelodyGenerator) Len() int {
	total := 0
	for _, nt := range g.notes {
		total += g.sr.N(nt.dur)
	}
	return total
}

func (g *MelodyGenerator) Position() int {
	pos := g.pos
	for i := 0; i < g.idx && i < len(g.notes); i++ {
		pos += g.sr.N(g.notes[i].dur)
	}
	return pos
}

func (g *MelodyGenerator) Seek(p int) error {
	g.idx, g.pos = 0, 0
	for g.idx < len(g.notes) {
		length := g.sr.N(g.notes[g.idx].dur)
		if p < length {
			g.pos = p
			return nil
		}
		p -= length
		g.idx++
	}
	return nil
}
