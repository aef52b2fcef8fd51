package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sandeepkv93/streakd/internal/model"
)

// Document keys of the persisted state. Each is a whole-document snapshot;
// there is no partial update format and no schema version.
const (
	KeyTasks         = "tasks"
	KeyDailyStreak   = "daily_streak"
	KeyJournal       = "journal"
	KeyCustomThemes  = "custom_themes"
	KeySelectedTheme = "selected_theme"
)

// SnapshotKeys lists every document a snapshot is made of.
var SnapshotKeys = []string{KeyTasks, KeyDailyStreak, KeyJournal, KeyCustomThemes, KeySelectedTheme}

// LoadSnapshot reads the state documents. Missing documents become empty
// defaults; malformed ones too, with a warning per document. Only repository
// failures are returned as errors.
func LoadSnapshot(ctx context.Context, repo Repository) (model.State, []string, error) {
	state := model.NewState()
	var warnings []string

	targets := map[string]any{
		KeyTasks:         &state.Tasks,
		KeyDailyStreak:   &state.Streak,
		KeyJournal:       &state.Journal,
		KeyCustomThemes:  &state.Themes,
		KeySelectedTheme: &state.SelectedTheme,
	}
	docs, err := repo.ListDocuments(ctx, DocumentListFilter{})
	if err != nil {
		return model.State{}, nil, fmt.Errorf("list documents: %w", err)
	}
	for _, doc := range docs {
		target, ok := targets[doc.Key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(doc.Body, target); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s document is malformed, using defaults: %v", doc.Key, err))
			resetDocument(&state, doc.Key)
		}
	}

	if !state.Streak.Valid() {
		warnings = append(warnings, "daily_streak document is inconsistent, resetting streak")
	}
	state.Normalize()
	return state, warnings, nil
}

func resetDocument(state *model.State, key string) {
	fresh := model.NewState()
	switch key {
	case KeyTasks:
		state.Tasks = fresh.Tasks
	case KeyDailyStreak:
		state.Streak = fresh.Streak
	case KeyJournal:
		state.Journal = fresh.Journal
	case KeyCustomThemes:
		state.Themes = fresh.Themes
	case KeySelectedTheme:
		state.SelectedTheme = fresh.SelectedTheme
	}
}

// PruneDocuments deletes every stored document that is not part of a
// snapshot and returns the removed keys.
func PruneDocuments(ctx context.Context, repo Repository) ([]string, error) {
	docs, err := repo.ListDocuments(ctx, DocumentListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	var removed []string
	for _, doc := range docs {
		if slices.Contains(SnapshotKeys, doc.Key) {
			continue
		}
		if err := repo.DeleteDocument(ctx, doc.Key); err != nil && !errors.Is(err, ErrNotFound) {
			return removed, fmt.Errorf("delete %s: %w", doc.Key, err)
		}
		removed = append(removed, doc.Key)
	}
	return removed, nil
}

// SaveSnapshot writes every state document in one transaction.
func SaveSnapshot(ctx context.Context, repo Repository, state model.State, now time.Time) error {
	values := map[string]any{
		KeyTasks:         state.Tasks,
		KeyDailyStreak:   state.Streak,
		KeyJournal:       state.Journal,
		KeyCustomThemes:  state.Themes,
		KeySelectedTheme: state.SelectedTheme,
	}
	docs := make([]Document, 0, len(SnapshotKeys))
	for _, key := range SnapshotKeys {
		body, err := json.Marshal(values[key])
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		docs = append(docs, Document{Key: key, Body: body, UpdatedAt: now})
	}
	return repo.SaveDocuments(ctx, docs...)
}
