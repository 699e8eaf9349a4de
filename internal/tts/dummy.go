package tts

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/tahcohcat/voicegen/internal/logger"
	"github.com/tahcohcat/voicegen/internal/persona"
)

const dummySampleRate = 8000

// DummyTts returns a short silent WAV so the rest of the pipeline can run
// without provider credentials.
type DummyTts struct {
	logger *logger.Log
}

func NewDummyTts() *DummyTts {
	return &DummyTts{logger: logger.Named("tts")}
}

func (d *DummyTts) GenerateAudio(_ context.Context, text string, p persona.Persona) (*Audio, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	d.logger.Debug(fmt.Sprintf("no tts configured. returning silence for %s text", p))
	return &Audio{Data: silentWAV(dummySampleRate / 4), ContentType: "audio/wav"}, nil
}

func (d *DummyTts) Name() string {
	return "dummy"
}

// silentWAV encodes n zero samples of 8-bit mono PCM.
func silentWAV(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+n))
	buf.WriteString("WAVEfmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(dummySampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(dummySampleRate))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(8))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(n))
	// 8-bit PCM is unsigned, 128 is silence
	buf.Write(bytes.Repeat([]byte{128}, n))
	return buf.Bytes()
}
