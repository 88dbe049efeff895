package config

import (
	"os"
	"path/filepath"
	"testing"
)

func BenchmarkLoadFromConfigPaths(b *testing.B) {
	tmpDir := b.TempDir()

	globalConfig := filepath.Join(tmpDir, "global.json")
	localConfig := filepath.Join(tmpDir, "local.json")

	globalContent := []byte(`{
		"feeds": [
			"https://news.ycombinator.com/rss",
			"https://lobste.rs/rss"
		],
		"swipe": {
			"left": "hide",
			"right": "save",
			"cell_width": 8
		},
		"backend": {
			"kind": "http",
			"url": "https://api.example.com",
			"token": "$FLICK_API_TOKEN"
		}
	}`)

	localContent := []byte(`{
		"swipe": {
			"right": "upvote"
		},
		"options": {
			"max_items_per_feed": 20
		}
	}`)

	if err := os.WriteFile(globalConfig, globalContent, 0o644); err != nil {
		b.Fatal(err)
	}
	if err := os.WriteFile(localConfig, localContent, 0o644); err != nil {
		b.Fatal(err)
	}

	configPaths := []string{globalConfig, localConfig}

	b.ReportAllocs()
	for b.Loop() {
		_, err := loadFromConfigPaths(configPaths)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoadFromConfigPaths_MissingFiles(b *testing.B) {
	tmpDir := b.TempDir()

	existingConfig := filepath.Join(tmpDir, "exists.json")
	content := []byte(`{"swipe": {"left": "browser"}}`)
	if err := os.WriteFile(existingConfig, content, 0o644); err != nil {
		b.Fatal(err)
	}

	configPaths := []string{
		filepath.Join(tmpDir, "nonexistent1.json"),
		existingConfig,
		filepath.Join(tmpDir, "nonexistent2.json"),
	}

	b.ReportAllocs()
	for b.Loop() {
		_, err := loadFromConfigPaths(configPaths)
		if err != nil {
			b.Fatal(err)
		}
	}
}
