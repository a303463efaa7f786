package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgAuthDone MsgKind = iota
	MsgLoggedOut
	MsgFeedLoaded
	MsgLikeDone
	MsgSamplesLoaded
	MsgPlantCreated
	MsgOwnedLoaded
	MsgLikersArrived
)

type createdPayload struct {
	plant *models.Plant
	err   error
}

type ownedPayload struct {
	plants  []models.Plant
	results <-chan tasks.LikersResult
	err     error
}

type likersPayload struct {
	result  tasks.LikersResult
	results <-chan tasks.LikersResult
	ok      bool
}

// errMsg is the constructor for messages that only carry an outcome
func errMsg(kind MsgKind, err error) Msg {
	return Msg{kind: kind, data: err}
}

// plantCreatedMsg is the constructor for [MsgPlantCreated]
func plantCreatedMsg(plant *models.Plant, err error) Msg {
	return Msg{kind: MsgPlantCreated, data: createdPayload{plant, err}}
}

// ownedLoadedMsg is the constructor for [MsgOwnedLoaded]
func ownedLoadedMsg(plants []models.Plant, results <-chan tasks.LikersResult, err error) Msg {
	return Msg{kind: MsgOwnedLoaded, data: ownedPayload{plants, results, err}}
}

// likersArrivedMsg is the constructor for [MsgLikersArrived]. ok is false once the channel is closed.
func likersArrivedMsg(result tasks.LikersResult, results <-chan tasks.LikersResult, ok bool) Msg {
	return Msg{kind: MsgLikersArrived, data: likersPayload{result, results, ok}}
}

// Err returns the error carried by an outcome message, if any.
func (m Msg) Err() error {
	switch d := m.data.(type) {
	case error:
		return d
	case createdPayload:
		return d.err
	case ownedPayload:
		return d.err
	default:
		return nil
	}
}
