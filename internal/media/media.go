// Package media exposes the external media bridge to plugins as a
// host-owned, read-only state cache. One background worker polls the
// bridge; plugins read the cache on their own frame under a mutex, and
// track-change subscriptions are delivered on the frame thread only.
package media

// PlayerState is a snapshot of the media bridge's playback state.
type PlayerState struct {
	TrackID     string
	Title       string
	Artist      string
	Album       string
	Duration    float64 // seconds
	Elapsed     float64 // seconds
	Playing     bool
	Volume      int // 0..100
	ArtworkData []byte
}

// CommandKind selects a media command.
type CommandKind int

const (
	CmdPlayPause CommandKind = iota
	CmdNext
	CmdPrev
	CmdSeek   // value: absolute seconds
	CmdVolume // value: delta in percent points
)

func (k CommandKind) String() string {
	switch k {
	case CmdPlayPause:
		return "playpause"
	case CmdNext:
		return "next"
	case CmdPrev:
		return "prev"
	case CmdSeek:
		return "seek"
	case CmdVolume:
		return "volume"
	}
	return "unknown"
}

// Bridge is the external media collaborator. FetchState reports ok=false
// when no state is available; SendCommand reports whether the command was
// accepted for delivery.
type Bridge interface {
	FetchState() (PlayerState, bool)
	Connected() bool
	SendCommand(kind CommandKind, value float64) bool
}
