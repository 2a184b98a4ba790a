package main

import (
	"github.com/massung/CHIP-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	/// SampleRate of the tone output.
	///
	SampleRate = 22050

	/// ToneHz is the pitch of the buzzer.
	///
	ToneHz = 440

	/// Volume is the amplitude of the square wave around the unsigned
	/// 8-bit midpoint.
	///
	Volume = 24
)

/// Buzzer plays a square wave on an SDL audio device while the sound
/// timer is running. Samples are queued a frame at a time so there is
/// no audio callback.
///
type Buzzer struct {
	dev   sdl.AudioDeviceID
	phase int
	frame []byte
}

/// OpenBuzzer opens the default audio device and starts it.
///
func OpenBuzzer() (*Buzzer, error) {
	spec := &sdl.AudioSpec{
		Freq:     SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, err
	}

	sdl.PauseAudioDevice(dev, false)

	return &Buzzer{
		dev:   dev,
		frame: make([]byte, SampleRate/chip8.TimerHz),
	}, nil
}

/// Update queues another frame of tone while sound is active, and
/// silences the device as soon as it isn't.
///
func (b *Buzzer) Update(active bool) {
	if !active {
		sdl.ClearQueuedAudio(b.dev)
		b.phase = 0
		return
	}

	// keep about two frames queued
	if sdl.GetQueuedAudioSize(b.dev) > uint32(2*len(b.frame)) {
		return
	}

	b.phase = SquareWave(b.frame, b.phase, ToneHz, SampleRate)

	sdl.QueueAudio(b.dev, b.frame)
}

/// Close the audio device.
///
func (b *Buzzer) Close() {
	sdl.CloseAudioDevice(b.dev)
}

/// SquareWave fills buf with unsigned 8-bit samples of a square wave,
/// starting phase samples into the wave. Returns the phase to continue
/// from.
///
func SquareWave(buf []byte, phase, hz, rate int) int {
	period := rate / hz
	if period < 2 {
		period = 2
	}

	for i := range buf {
		if (phase+i)%period < period/2 {
			buf[i] = 128 + Volume
		} else {
			buf[i] = 128 - Volume
		}
	}

	return (phase + len(buf)) % period
}
