package audio

import "errors"

// ErrPortAudioUnavailable is returned when the binary was built without PortAudio support.
var ErrPortAudioUnavailable = errors.New("portaudio capture is not available in this build")
