package twitch

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/nicklaw5/helix/v2"
)

// ChannelStatus is the broadcast state of one configured channel at poll time.
// Title, Game, ViewerCount and StartedAt are only set when Live is true.
type ChannelStatus struct {
	Name        string
	Live        bool
	Title       string
	Game        string
	ViewerCount int
	StartedAt   time.Time
}

// Snapshot holds one status per configured channel, in configured order.
type Snapshot []ChannelStatus

func (s Snapshot) Live() []ChannelStatus {
	return s.filter(true)
}

func (s Snapshot) Offline() []ChannelStatus {
	return s.filter(false)
}

func (s Snapshot) filter(live bool) []ChannelStatus {
	var out []ChannelStatus
	for _, status := range s {
		if status.Live == live {
			out = append(out, status)
		}
	}
	return out
}

// FetchStatuses asks Helix which of names are live in a single request.
// Names past MaxBatch are still sent; Helix decides what to do with them.
func (c *Client) FetchStatuses(names []string) (Snapshot, error) {
	resp, err := c.helix.GetStreams(&helix.StreamsParams{
		UserLogins: names,
		First:      pageSize(len(names)),
	})
	if err != nil {
		log.Printf("POLL: request error - %v", err)
		return nil, &FetchError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("POLL: status=%d body=%s", resp.StatusCode, errorMessage(resp.ResponseCommon))
		return nil, &FetchError{StatusCode: resp.StatusCode, Message: errorMessage(resp.ResponseCommon)}
	}

	snapshot := buildSnapshot(names, resp.Data.Streams)
	log.Printf("POLL: %d/%d channels live", len(snapshot.Live()), len(snapshot))
	return snapshot, nil
}

func pageSize(n int) int {
	if n > MaxBatch {
		return MaxBatch
	}
	if n < 1 {
		return 1
	}
	return n
}

func buildSnapshot(names []string, streams []helix.Stream) Snapshot {
	live := make(map[string]helix.Stream, len(streams))
	for _, stream := range streams {
		live[strings.ToLower(stream.UserLogin)] = stream
	}

	snapshot := make(Snapshot, 0, len(names))
	for _, name := range names {
		stream, ok := live[strings.ToLower(name)]
		if !ok {
			snapshot = append(snapshot, ChannelStatus{Name: name})
			continue
		}
		snapshot = append(snapshot, ChannelStatus{
			Name:        name,
			Live:        true,
			Title:       stream.Title,
			Game:        stream.GameName,
			ViewerCount: stream.ViewerCount,
			StartedAt:   stream.StartedAt,
		})
	}

	return snapshot
}
