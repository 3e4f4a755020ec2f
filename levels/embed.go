package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// Room is the static environment around the portfolio: a set of flat,
// colored planes.
type Room struct {
	Name   string  `json:"name"`
	Planes []Plane `json:"planes"`
}

type Plane struct {
	Name   string     `json:"name"`
	Center [3]float64 `json:"center"`
	Size   [2]float64 `json:"size"`
	// Facing is one of front, up, left or right.
	Facing string `json:"facing"`
	Color  string `json:"color"`
	Layer  int    `json:"layer"`
}

func LoadRoomFromFS(name string) (*Room, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read room: %w", err)
	}
	return ParseRoom(data)
}

func ParseRoom(data []byte) (*Room, error) {
	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("unmarshal room: %w", err)
	}
	for i, p := range room.Planes {
		switch p.Facing {
		case "front", "up", "left", "right":
		default:
			return nil, fmt.Errorf("room plane %d (%s): unknown facing %q", i, p.Name, p.Facing)
		}
		if p.Size[0] <= 0 || p.Size[1] <= 0 {
			return nil, fmt.Errorf("room plane %d (%s): size must be positive", i, p.Name)
		}
	}
	return &room, nil
}
