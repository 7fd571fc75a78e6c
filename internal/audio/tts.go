package audio

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rahulverma/legalclarity/internal/llm"
)

// The TTS endpoint streams raw PCM at 24 kHz mono s16le when asked for the
// "pcm" response format.
const (
	pcmSampleRate = 24000
	pcmChannels   = 1
	pcmBitDepth   = 16
)

// Synthesizer turns text into a playable WAV data URI.
type Synthesizer struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

func NewSynthesizer(apiKey, model, voice string) *Synthesizer {
	return &Synthesizer{
		client: openai.NewClient(apiKey),
		model:  openai.SpeechModel(model),
		voice:  openai.SpeechVoice(voice),
	}
}

// SpeechDataURI synthesizes text, wraps the PCM stream in a WAV container,
// and returns it base64-encoded as a data URI.
func (s *Synthesizer) SpeechDataURI(ctx context.Context, text string) (string, error) {
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return "", fmt.Errorf("%w: synthesize speech: %v", llm.ErrModel, err)
	}
	defer resp.Close()

	pcm, err := io.ReadAll(resp)
	if err != nil {
		return "", fmt.Errorf("%w: read audio stream: %v", llm.ErrModel, err)
	}

	wav := WrapPCM(pcm, pcmChannels, pcmSampleRate, pcmBitDepth)
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav), nil
}
