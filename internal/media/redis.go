package media

import (
	"context"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key layout of the media bridge daemon. The bridge mirrors the BLE
// player state into one hash and consumes commands from one list.
const (
	stateKey   = "llz:media:state"
	commandKey = "llz:media:commands"

	opTimeout = 250 * time.Millisecond
)

// RedisBridge is the read-only face of the Redis/BLE media bridge.
type RedisBridge struct {
	client *redis.Client
}

// NewRedisBridge connects to the bridge's Redis instance at addr.
func NewRedisBridge(addr string) *RedisBridge {
	return &RedisBridge{
		client: redis.NewClient(&redis.Options{
			Addr:         addr,
			DialTimeout:  opTimeout,
			ReadTimeout:  opTimeout,
			WriteTimeout: opTimeout,
		}),
	}
}

// Close releases the client.
func (b *RedisBridge) Close() error {
	return b.client.Close()
}

// Connected pings the bridge.
func (b *RedisBridge) Connected() bool {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return b.client.Ping(ctx).Err() == nil
}

// FetchState reads the bridge's state hash.
func (b *RedisBridge) FetchState() (PlayerState, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	fields, err := b.client.HGetAll(ctx, stateKey).Result()
	if err != nil || len(fields) == 0 {
		return PlayerState{}, false
	}

	state := PlayerState{
		TrackID: fields["track_id"],
		Title:   fields["title"],
		Artist:  fields["artist"],
		Album:   fields["album"],
	}
	state.Duration, _ = strconv.ParseFloat(fields["duration"], 64)
	state.Elapsed, _ = strconv.ParseFloat(fields["elapsed"], 64)
	state.Playing = fields["playing"] == "1"
	state.Volume, _ = strconv.Atoi(fields["volume"])
	if art := fields["artwork"]; art != "" {
		if data, err := base64.StdEncoding.DecodeString(art); err == nil {
			state.ArtworkData = data
		}
	}
	return state, true
}

// SendCommand pushes a command onto the bridge's command list.
func (b *RedisBridge) SendCommand(kind CommandKind, value float64) bool {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	payload := kind.String() + ":" + strconv.FormatFloat(value, 'f', -1, 64)
	return b.client.RPush(ctx, commandKey, payload).Err() == nil
}

// NullBridge is the disconnected stand-in used when no bridge address is
// configured.
type NullBridge struct{}

func (NullBridge) FetchState() (PlayerState, bool)       { return PlayerState{}, false }
func (NullBridge) Connected() bool                       { return false }
func (NullBridge) SendCommand(CommandKind, float64) bool { return false }
