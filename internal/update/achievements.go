package update

import (
	"github.com/sandeepkv93/streakd/internal/achievements"
	"github.com/sandeepkv93/streakd/internal/views"
)

func (m Model) renderAchievementsView() string {
	p := m.Report.Achievements
	toEntries := func(unlocked bool, defs []achievements.Definition) []views.AchievementEntry {
		out := make([]views.AchievementEntry, 0, len(defs))
		for _, d := range defs {
			out = append(out, views.AchievementEntry{Icon: d.Icon, Title: d.Title, Description: d.Description, Unlocked: unlocked})
		}
		return out
	}
	return views.RenderAchievementsPanel(views.AchievementsPanelData{
		Unlocked: toEntries(true, p.Unlocked),
		Locked:   toEntries(false, p.Locked),
	})
}

func (m Model) renderStreakPane() string {
	return views.RenderStreakPanel(views.StreakPanelData{
		Count:          m.Report.Streak.Count,
		LastCompletion: m.Report.Streak.LastCompletionDate,
		Active:         m.Report.StreakActive,
		Today:          m.Report.TodayProductivity,
	})
}
