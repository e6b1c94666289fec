// Package audioio decodes audio files into channel-major float samples and
// writes mono 16-bit PCM WAV files.
//
// Decoders are looked up by file extension in a [Registry]. The default
// registry knows WAV (go-audio/wav), MP3 (go-mp3) and Ogg Vorbis
// (oggvorbis).
package audioio
