// Package wav encodes sample frames as 16-bit PCM mono WAV.
package wav

import (
	"encoding/binary"
	"io"
	"math"
)

const (
	headerSize    = 44
	bitsPerSample = 16
	numChannels   = 1
)

// Encode writes samples as a RIFF/WAVE stream. Samples are expected in
// [-1, 1]; values outside that range are clipped.
func Encode(w io.Writer, samples []float64, sampleRate int) error {
	dataSize := len(samples) * (bitsPerSample / 8) * numChannels
	byteRate := sampleRate * numChannels * (bitsPerSample / 8)
	blockAlign := numChannels * (bitsPerSample / 8)

	buf := make([]byte, headerSize, headerSize+dataSize)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(headerSize-8+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], numChannels)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	for _, s := range samples {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(Quantize(s)))
	}
	_, err := w.Write(buf)
	return err
}

// Quantize converts one sample in [-1, 1] to a signed 16-bit PCM value,
// clipping out-of-range input.
func Quantize(s float64) int16 {
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	v := math.Round(s * math.MaxInt16)
	if v > math.MaxInt16 {
		v = math.MaxInt16
	} else if v < math.MinInt16 {
		v = math.MinInt16
	}
	return int16(v)
}
