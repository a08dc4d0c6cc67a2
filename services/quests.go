package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fishing-game-backend/models"
	"fishing-game-backend/store"
)

// Sampler picks k distinct indices out of n. Injected so quest generation is
// deterministic under test.
type Sampler func(n, k int) []int

// NewSeededSampler returns a Sampler backed by a seeded source.
func NewSeededSampler(seed int64) Sampler {
	rng := rand.New(rand.NewSource(seed))
	return func(n, k int) []int {
		if k > n {
			k = n
		}
		return rng.Perm(n)[:k]
	}
}

// QuestService instantiates quests per calendar period, matches progress
// events against objective filters and pays claims. XP rewards are credited
// to the season pass.
type QuestService struct {
	quests  store.PlayerQuestStore
	users   store.UserStore
	rewards *RewardService
	season  *SeasonPassService

	Sample Sampler
	Now    func() time.Time
}

func NewQuestService(quests store.PlayerQuestStore, users store.UserStore, rewards *RewardService, season *SeasonPassService) *QuestService {
	return &QuestService{
		quests:  quests,
		users:   users,
		rewards: rewards,
		season:  season,
		Sample:  NewSeededSampler(time.Now().UnixNano()),
		Now:     time.Now,
	}
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (s *QuestService) instantiate(userID string, tmpl models.QuestTemplate, periodKey string, now time.Time) *models.PlayerQuest {
	objectives := make([]models.ObjectiveProgress, len(tmpl.Objectives))
	for i, o := range tmpl.Objectives {
		objectives[i] = models.ObjectiveProgress{QuestObjective: o}
	}
	return &models.PlayerQuest{
		ID:         uuid.NewString(),
		UserID:     userID,
		QuestID:    tmpl.ID,
		Type:       tmpl.Type,
		PeriodKey:  periodKey,
		Title:      tmpl.Title,
		Status:     models.QuestActive,
		Chapter:    tmpl.Chapter,
		Objectives: objectives,
		Rewards:    tmpl.Rewards,
		AcceptedAt: now,
	}
}

func (s *QuestService) periodQuests(ctx context.Context, userID string, t models.QuestType, periodKey string, templates []models.QuestTemplate, count int) ([]models.PlayerQuest, error) {
	existing, err := s.quests.ListByPeriod(ctx, userID, t, periodKey)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	now := s.Now().UTC()
	picks := s.Sample(len(templates), count)
	quests := make([]models.PlayerQuest, 0, len(picks))
	for _, idx := range picks {
		q := s.instantiate(userID, templates[idx], periodKey, now)
		if err := s.quests.Create(ctx, q); err != nil {
			return nil, err
		}
		quests = append(quests, *q)
	}
	log.Debug().Str("user_id", userID).Str("period", periodKey).Int("count", len(quests)).Msg("quests generated")
	return quests, nil
}

// Daily returns today's quests, generating three on first access.
func (s *QuestService) Daily(ctx context.Context, userID string) ([]models.PlayerQuest, error) {
	today := s.Now().UTC().Format(dateLayout)
	return s.periodQuests(ctx, userID, models.QuestDaily, today, dailyQuestTemplates, 3)
}

// Weekly returns this week's quests, generating two on first access.
func (s *QuestService) Weekly(ctx context.Context, userID string) ([]models.PlayerQuest, error) {
	return s.periodQuests(ctx, userID, models.QuestWeekly, weekKey(s.Now().UTC()), weeklyQuestTemplates, 2)
}

func objectiveMatches(o *models.ObjectiveProgress, ev models.CatchEvent) bool {
	if o.Type != ev.Type {
		return false
	}
	if o.FishType != "" && ev.FishType != o.FishType {
		return false
	}
	if o.Stage != 0 && ev.Stage != o.Stage {
		return false
	}
	if o.MinRarity != 0 && ev.Rarity < o.MinRarity {
		return false
	}
	if o.MinSize != 0 && ev.Size < o.MinSize {
		return false
	}
	return true
}

type ProgressUpdate struct {
	QuestID   string `json:"quest_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// ReportProgress applies one event to every active quest. Matching objectives
// gain the event amount, clamped to target; a quest whose objectives are all
// at target flips to completed.
func (s *QuestService) ReportProgress(ctx context.Context, userID string, ev models.CatchEvent) ([]ProgressUpdate, error) {
	if ev.Amount <= 0 {
		ev.Amount = 1
	}
	active, err := s.quests.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	var updates []ProgressUpdate
	now := s.Now().UTC()
	for i := range active {
		q := &active[i]
		touched := false
		for j := range q.Objectives {
			o := &q.Objectives[j]
			if !objectiveMatches(o, ev) {
				continue
			}
			o.Progress += ev.Amount
			if o.Progress > o.Target {
				o.Progress = o.Target
			}
			touched = true
		}
		if !touched {
			continue
		}

		done := true
		for j := range q.Objectives {
			if !q.Objectives[j].Done() {
				done = false
				break
			}
		}
		if done {
			q.Status = models.QuestCompleted
			completedAt := now
			q.CompletedAt = &completedAt
		}
		if err := s.quests.Save(ctx, q); err != nil {
			return nil, err
		}
		updates = append(updates, ProgressUpdate{QuestID: q.ID, Title: q.Title, Completed: done})
	}
	return updates, nil
}

// Claim pays a completed quest. XP rewards flow into the season pass; story
// quests additionally advance the user's chapter and unlock the next entry
// in the chain.
func (s *QuestService) Claim(ctx context.Context, userID, playerQuestID string) ([]models.Reward, error) {
	q, err := s.quests.Get(ctx, playerQuestID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("quest not found")
		}
		return nil, err
	}
	if q.UserID != userID {
		return nil, NotFoundf("quest not found")
	}
	if q.Status == models.QuestActive {
		return nil, InvalidStatef("quest not completed yet")
	}
	if q.Status == models.QuestClaimed || q.ClaimedAt != nil {
		return nil, Conflictf("quest reward already claimed")
	}

	if err := s.rewards.Apply(ctx, userID, q.Rewards); err != nil {
		return nil, err
	}
	for _, r := range q.Rewards {
		if r.Type == models.RewardXP {
			if _, err := s.season.AddXP(ctx, userID, r.Amount); err != nil {
				return nil, err
			}
		}
	}

	now := s.Now().UTC()
	q.Status = models.QuestClaimed
	q.ClaimedAt = &now
	if err := s.quests.Save(ctx, q); err != nil {
		return nil, err
	}

	if q.Type == models.QuestStory {
		u, err := s.users.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !containsString(u.CompletedQuests, q.QuestID) {
			u.CompletedQuests = append(u.CompletedQuests, q.QuestID)
		}
		if q.Chapter+1 > u.CurrentChapter {
			u.CurrentChapter = q.Chapter + 1
		}
		if err := s.users.Save(ctx, u); err != nil {
			return nil, err
		}
	}

	log.Info().Str("user_id", userID).Str("quest", q.QuestID).Msg("quest reward claimed")
	return q.Rewards, nil
}

type StoryQuestView struct {
	models.QuestTemplate
	Status string `json:"status"` // locked | available | completed
}

type StoryProgress struct {
	Quests         []StoryQuestView    `json:"quests"`
	Completed      []string            `json:"completed"`
	CurrentChapter int                 `json:"current_chapter"`
	ActiveQuest    *models.PlayerQuest `json:"active_quest,omitempty"`
}

// Story reports the unlock chain state and the currently active story quest.
func (s *QuestService) Story(ctx context.Context, userID string) (*StoryProgress, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("user %s not found", userID)
		}
		return nil, err
	}

	views := make([]StoryQuestView, 0, len(storyQuests))
	for _, tmpl := range storyQuests {
		status := "locked"
		switch {
		case containsString(u.CompletedQuests, tmpl.ID):
			status = "completed"
		case tmpl.Requires == "" || containsString(u.CompletedQuests, tmpl.Requires):
			status = "available"
		}
		views = append(views, StoryQuestView{QuestTemplate: tmpl, Status: status})
	}

	progress := &StoryProgress{
		Quests:         views,
		Completed:      u.CompletedQuests,
		CurrentChapter: u.CurrentChapter,
	}

	active, err := s.quests.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range active {
		if active[i].Type == models.QuestStory {
			progress.ActiveQuest = &active[i]
			break
		}
	}
	return progress, nil
}

// StartStory begins a story quest if the chain allows it. Only one story
// quest may be active at a time.
func (s *QuestService) StartStory(ctx context.Context, userID, questID string) (*models.PlayerQuest, error) {
	var tmpl *models.QuestTemplate
	for i := range storyQuests {
		if storyQuests[i].ID == questID {
			tmpl = &storyQuests[i]
			break
		}
	}
	if tmpl == nil {
		return nil, NotFoundf("story quest %s not found", questID)
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("user %s not found", userID)
		}
		return nil, err
	}
	if containsString(u.CompletedQuests, questID) {
		return nil, Conflictf("story quest already completed")
	}
	if tmpl.Requires != "" && !containsString(u.CompletedQuests, tmpl.Requires) {
		return nil, InvalidStatef("story quest not unlocked yet")
	}

	active, err := s.quests.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range active {
		if active[i].Type == models.QuestStory {
			return nil, Conflictf("another story quest is already active")
		}
	}

	q := s.instantiate(userID, *tmpl, "", s.Now().UTC())
	if err := s.quests.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// CheckAchievements grants every counter achievement the user now qualifies
// for and has not yet unlocked.
func (s *QuestService) CheckAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("user %s not found", userID)
		}
		return nil, err
	}

	var unlocked []models.Achievement
	for _, a := range achievements {
		if containsString(u.Achievements, a.ID) {
			continue
		}
		var value int64
		switch a.Counter {
		case "total_catches":
			value = u.TotalCatches
		case "level":
			value = int64(u.Level)
		case "coins":
			value = u.Coins
		}
		if value < a.Threshold {
			continue
		}

		if err := s.rewards.Apply(ctx, userID, a.Rewards); err != nil {
			return nil, err
		}
		for _, r := range a.Rewards {
			if r.Type == models.RewardXP {
				if _, err := s.season.AddXP(ctx, userID, r.Amount); err != nil {
					return nil, err
				}
			}
		}
		u.Achievements = append(u.Achievements, a.ID)
		unlocked = append(unlocked, a)
	}

	if len(unlocked) > 0 {
		// Re-read so the reward credits above are not overwritten by Save.
		fresh, err := s.users.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		fresh.Achievements = u.Achievements
		if err := s.users.Save(ctx, fresh); err != nil {
			return nil, err
		}
	}
	return unlocked, nil
}

// Achievements lists the catalog with the user's unlock state.
func (s *QuestService) Achievements(ctx context.Context, userID string) ([]AchievementView, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("user %s not found", userID)
		}
		return nil, err
	}
	views := make([]AchievementView, 0, len(achievements))
	for _, a := range achievements {
		views = append(views, AchievementView{Achievement: a, Unlocked: containsString(u.Achievements, a.ID)})
	}
	return views, nil
}

type AchievementView struct {
	models.Achievement
	Unlocked bool `json:"unlocked"`
}
