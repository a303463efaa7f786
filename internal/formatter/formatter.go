// package formatter renders plant listings to various formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/shared"
)

// Format is an output format name accepted by --format flags.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{Text, Markdown, CSV, JSON}

// ParseFormat validates a format name. An empty name selects [Text].
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Text, nil
	case Text, Markdown, CSV, JSON:
		return f, nil
	case "md":
		return Markdown, nil
	case "txt":
		return Text, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// Render encodes plants in the given format. The viewer, when known, marks the listings they own.
func Render(format Format, title string, plants []models.Plant, viewer *models.Identity) ([]byte, error) {
	switch format {
	case Text, "":
		return ListingsToText(plants, viewer)
	case Markdown:
		return ListingsToMarkdown(title, plants)
	case CSV:
		return ListingsToCSV(plants)
	case JSON:
		return shared.MarshalJSON(listingsJSON(plants), true)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// ListingsToCSV converts listings to CSV with columns: ID, Name, Owner, Price, Likes, Liked, Photo URL, Likers
func ListingsToCSV(plants []models.Plant) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Owner", "Price", "Likes", "Liked", "Photo URL", "Likers"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range plants {
		record := []string{
			p.ID.String(),
			p.Name,
			p.OwnerUsername,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			strconv.Itoa(p.LikesCount),
			strconv.FormatBool(p.LikedByUser),
			p.PhotoURL,
			strings.Join(models.Usernames(p.Likers), ";"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ListingsToMarkdown renders one section per listing with its photo and likers.
func ListingsToMarkdown(title string, plants []models.Plant) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Plants"
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Listings**: %d\n\n", len(plants))

	for _, p := range plants {
		fmt.Fprintf(&buf, "## %s\n\n", p.Name)
		if p.PhotoURL != "" {
			fmt.Fprintf(&buf, "![%s](%s)\n\n", p.Name, p.PhotoURL)
		}
		if p.Description != "" {
			fmt.Fprintf(&buf, "%s\n\n", p.Description)
		}
		fmt.Fprintf(&buf, "- **Price**: %s\n", p.FormatPrice())
		fmt.Fprintf(&buf, "- **Owner**: %s\n", p.OwnerUsername)
		fmt.Fprintf(&buf, "- **Likes**: %d\n", p.LikesCount)
		if len(p.Likers) > 0 {
			fmt.Fprintf(&buf, "- **Liked by**: %s\n", strings.Join(models.Usernames(p.Likers), ", "))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ListingsToText renders one numbered line per listing.
//
// Listings the viewer owns are tagged "(yours)" instead of showing a like marker.
func ListingsToText(plants []models.Plant, viewer *models.Identity) ([]byte, error) {
	var buf bytes.Buffer

	if len(plants) == 0 {
		buf.WriteString("No plants yet.\n")
		return buf.Bytes(), nil
	}

	for i, p := range plants {
		marker := "♡"
		if p.LikedByUser {
			marker = "♥"
		}
		if viewer != nil && p.OwnedBy(*viewer) {
			marker = "(yours)"
		}

		fmt.Fprintf(&buf, "%d. %s  %s  by %s  %d likes  %s\n", i+1, p.Name, p.FormatPrice(), p.OwnerUsername, p.LikesCount, marker)
		fmt.Fprintf(&buf, "   id: %s\n", p.ID)
		if len(p.Likers) > 0 {
			fmt.Fprintf(&buf, "   liked by: %s\n", strings.Join(models.Usernames(p.Likers), ", "))
		}
	}

	return buf.Bytes(), nil
}

// LikersToText renders a likers list, one username per line.
func LikersToText(likers []models.Liker) []byte {
	if len(likers) == 0 {
		return []byte("No likes yet.\n")
	}
	return []byte(strings.Join(models.Usernames(likers), "\n") + "\n")
}

// listingJSON exposes the likers that the API model hides from JSON.
type listingJSON struct {
	models.Plant
	Likers []models.Liker `json:"likers,omitempty"`
}

func listingsJSON(plants []models.Plant) []listingJSON {
	out := make([]listingJSON, len(plants))
	for i, p := range plants {
		out[i] = listingJSON{Plant: p, Likers: p.Likers}
	}
	return out
}

// Write renders plants and writes them to w.
func Write(w io.Writer, format Format, title string, plants []models.Plant, viewer *models.Identity) error {
	data, err := Render(format, title, plants, viewer)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// WriteFile renders plants to path, creating parent directories as needed.
func WriteFile(path string, format Format, title string, plants []models.Plant, viewer *models.Identity) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := Render(format, title, plants, viewer)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}
