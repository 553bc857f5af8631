package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/dkeye/arena/internal/app"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List rooms open on the relay",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rooms, err := fetchRooms(cmd.Context(), cfg.RelayURL)
		if err != nil {
			return err
		}
		renderRooms(os.Stdout, rooms)
		return nil
	},
}

// roomsURL turns the relay WebSocket URL into its room listing URL.
func roomsURL(relayURL string) (string, error) {
	u, err := url.Parse(relayURL)
	if err != nil {
		return "", fmt.Errorf("relay url: %w", err)
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	case "http", "https":
	default:
		return "", fmt.Errorf("relay url: unsupported scheme %q", u.Scheme)
	}
	u.Path = "/api/rooms"
	u.RawQuery = ""
	return u.String(), nil
}

func fetchRooms(ctx context.Context, relayURL string) ([]app.RoomInfo, error) {
	endpoint, err := roomsURL(relayURL)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list rooms: %s", resp.Status)
	}

	var body struct {
		Rooms []app.RoomInfo `json:"rooms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return body.Rooms, nil
}

func renderRooms(out io.Writer, rooms []app.RoomInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Room", "Status"})
	for _, r := range rooms {
		status := "open"
		if r.Paired {
			status = "in play"
		}
		t.AppendRow(table.Row{r.ID, status})
	}
	t.AppendFooter(table.Row{"Total", len(rooms)})
	t.Render()
}
