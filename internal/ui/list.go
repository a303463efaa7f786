package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/plantx/internal/models"
)

var (
	_ list.Item = plantItem{}
	_ list.Item = ownedItem{}
)

// plantItem wraps [models.Plant] for the discover list. The like control is omitted when canLike is false.
type plantItem struct {
	plant   models.Plant
	canLike bool
}

func (i plantItem) FilterValue() string { return i.plant.Name }
func (i plantItem) Title() string       { return i.plant.Name }
func (i plantItem) Description() string {
	desc := fmt.Sprintf("%s • by %s • %d likes", i.plant.FormatPrice(), i.plant.OwnerUsername, i.plant.LikesCount)
	if !i.canLike {
		return desc + " • yours"
	}
	if i.plant.LikedByUser {
		return desc + " • ♥ liked"
	}
	return desc + " • ♡ like"
}

// ownedItem wraps an owned [models.Plant] with its likers, once fetched.
type ownedItem struct {
	plant  models.Plant
	loaded bool
}

func (i ownedItem) FilterValue() string { return i.plant.Name }
func (i ownedItem) Title() string       { return i.plant.Name }
func (i ownedItem) Description() string {
	desc := fmt.Sprintf("%s • %d likes", i.plant.FormatPrice(), i.plant.LikesCount)
	switch {
	case !i.loaded:
		return desc + " • loading likers…"
	case len(i.plant.Likers) == 0:
		return desc
	default:
		return desc + " • liked by " + strings.Join(models.Usernames(i.plant.Likers), ", ")
	}
}
