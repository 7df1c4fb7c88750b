package upload

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Icon struct {
	Glyph string `json:"glyph"`
	Color string `json:"color"`
}

// IconFor picks the list icon from the file extension.
func IconFor(fileName string) Icon {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), ".")) {
	case "pdf":
		return Icon{Glyph: "file-text", Color: "red"}
	case "jpg", "jpeg", "png", "gif":
		return Icon{Glyph: "file", Color: "blue"}
	case "doc", "docx":
		return Icon{Glyph: "file-text", Color: "blue-dark"}
	default:
		return Icon{Glyph: "file", Color: "gray"}
	}
}

// SizeLabel renders a byte count as B, KB or MB with one decimal.
func SizeLabel(bytes int64) string {
	switch {
	case bytes <= 0:
		return "Unknown size"
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}
