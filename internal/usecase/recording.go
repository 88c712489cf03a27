package usecase

import (
	"sync"
	"time"

	"voicefir/internal/domain"
	"voicefir/internal/ports"
)

// recording is the mutable state behind one domain.Session.
type recording struct {
	id        string
	startedAt time.Time

	cancel    func()
	audio     ports.AudioSession
	audioDone chan struct{}

	mu        sync.Mutex
	status    domain.SessionStatus
	acquiring bool
	abandoned bool
	stopping  bool
	sealed    bool
	chunks    [][]byte
	count     int
	size      int
	result    domain.TranscriptResult
	errMsg    string
	payload   int
}

func newRecording(id string, now time.Time) *recording {
	return &recording{
		id:        id,
		startedAt: now,
		status:    domain.SessionStatusIdle,
		acquiring: true,
		audioDone: make(chan struct{}),
	}
}

// active reports whether the recording still blocks a new Start.
func (r *recording) active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acquiring || r.status.Active()
}

// begin attaches the acquired device. It reports false when the recording
// was abandoned while the device was being acquired.
func (r *recording) begin(cancel func(), audio ports.AudioSession) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.abandoned {
		r.acquiring = false
		return false
	}
	r.cancel = cancel
	r.audio = audio
	r.acquiring = false
	r.status = domain.SessionStatusRecording
	return true
}

// abandon marks a recording whose device is still being acquired as
// discarded. Start releases the device once acquisition returns.
func (r *recording) abandon() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.acquiring || r.abandoned {
		return false
	}
	r.abandoned = true
	return true
}

// append stores a copy of data. Empty chunks and chunks arriving outside
// the recording status are dropped.
func (r *recording) append(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != domain.SessionStatusRecording || r.sealed {
		return false
	}
	r.chunks = append(r.chunks, append([]byte(nil), data...))
	r.count++
	r.size += len(data)
	return true
}

// beginStop claims the stop transition; only the first caller wins.
func (r *recording) beginStop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != domain.SessionStatusRecording || r.stopping {
		return false
	}
	r.stopping = true
	return true
}

// seal moves the recording to uploading and returns the in-order
// concatenation of every accepted chunk. It can only succeed once.
func (r *recording) seal() ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return nil, false
	}

	raw := make([]byte, 0, r.size)
	for _, chunk := range r.chunks {
		raw = append(raw, chunk...)
	}
	r.sealed = true
	r.chunks = nil
	r.status = domain.SessionStatusUploading
	return raw, true
}

func (r *recording) setPayloadSize(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payload = n
}

func (r *recording) complete(result domain.TranscriptResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = domain.SessionStatusDone
	r.result = result
	r.errMsg = ""
}

func (r *recording) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acquiring = false
	r.status = domain.SessionStatusFailed
	r.result = domain.TranscriptResult{}
	r.errMsg = domain.UserMessage(err)
}

// discard drops captured audio and returns the recording to idle.
func (r *recording) discard() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = domain.SessionStatusIdle
	r.sealed = true
	r.chunks = nil
	r.count = 0
	r.size = 0
}

func (r *recording) snapshot() domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := domain.Session{
		ID:           r.id,
		Status:       r.status,
		ResultText:   r.result.Transcript,
		ErrorMessage: r.errMsg,
		ChunkCount:   r.count,
		PayloadBytes: r.payload,
		StartedAt:    r.startedAt,
	}
	if r.result.Language != "" {
		session.DetectedLanguage = r.result.Language
		session.LanguageName = domain.LanguageName(r.result.Language)
	}
	session.WasTranslated = r.result.IsTranslation
	return session
}
