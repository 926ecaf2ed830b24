package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// FetchRooms asks a running server for its room snapshot.
func FetchRooms(ctx context.Context, client *http.Client, baseURL string) ([]domain.RoomStats, error) {
	url := strings.TrimRight(baseURL, "/") + "/rooms"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rooms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rooms: unexpected status %s", resp.Status)
	}

	var body struct {
		Rooms []domain.RoomStats `json:"rooms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	return body.Rooms, nil
}

// RoomsTable renders stats as a bordered table.
func RoomsTable(stats []domain.RoomStats) string {
	if len(stats) == 0 {
		return mutedStyle.Render("No active rooms")
	}

	rows := make([][]string, 0, len(stats))
	total := 0
	for _, s := range stats {
		rows = append(rows, []string{s.ID.String(), strconv.Itoa(s.Members)})
		total += s.Members
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Room", "Members").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render() + "\n" + mutedStyle.Render(fmt.Sprintf("%d rooms, %d connections", len(stats), total))
}
