package models

import "fmt"

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}

// EntityType mirrors the world runtime's coarse entity classification.
type EntityType string

const (
	EntityPlayer  EntityType = "player"
	EntityMob     EntityType = "mob"
	EntityHostile EntityType = "hostile"
	EntityObject  EntityType = "object"
)

type Entity struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     EntityType `json:"type"`
	Position Vec3       `json:"position"`
}

type Block struct {
	Name     string `json:"name"`
	Position Vec3   `json:"position"`
}

type Item struct {
	Slot  int    `json:"slot"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type AutoEatOptions struct {
	Priority string `json:"priority"`
	StartAt  int    `json:"startAt"`
}

// ConnectOptions are the login parameters the bridge uses to open the game connection.
type ConnectOptions struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Auth     string `json:"auth,omitempty"`
	Version  string `json:"version,omitempty"`
}
