package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"fishing-game-backend/models"
)

// NewMemoryStores returns a fully in-memory Stores suitable for tests. Every
// document is copied on the way in and out so callers never share state with
// the store.
func NewMemoryStores() *Stores {
	return &Stores{
		Users:             &memUsers{users: map[string]models.User{}},
		Inventories:       &memInventories{inventories: map[string]models.PlayerInventory{}},
		Daily:             &memDaily{daily: map[string]models.PlayerDailyRewards{}},
		Seasons:           &memSeasons{},
		PlayerSeasons:     &memPlayerSeasons{passes: map[string]models.PlayerSeasonPass{}},
		Purchases:         &memPurchases{},
		PlayerQuests:      &memPlayerQuests{quests: map[string]models.PlayerQuest{}},
		Guilds:            &memGuilds{guilds: map[string]models.Guild{}},
		GuildMembers:      &memGuildMembers{members: map[string]models.GuildMember{}},
		GuildApplications: &memGuildApplications{apps: map[string]models.GuildApplication{}},
		GuildChallenges:   &memGuildChallenges{challenges: map[string]models.GuildChallenge{}},
		Tournaments:       &memTournaments{tournaments: map[string]models.Tournament{}},
		TournamentEntries: &memTournamentEntries{entries: map[string]models.TournamentEntry{}},
		TournamentResults: &memTournamentResults{},
		FriendRequests:    &memFriendRequests{requests: map[string]models.FriendRequest{}},
		Friendships:       &memFriendships{friendships: map[string]models.Friendship{}},
		Gifts:             &memGifts{gifts: map[string]models.Gift{}},
		Notifications:     &memNotifications{},
		Activities:        &memActivities{activities: map[string]models.Activity{}},
	}
}

func clone[T any](v *T) *T {
	raw, _ := json.Marshal(v)
	out := new(T)
	_ = json.Unmarshal(raw, out)
	return out
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
	order []string
}

func (s *memUsers) Get(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&u), nil
}

func (s *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return clone(&u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUsers) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *clone(u)
	s.order = append(s.order, u.ID)
	return nil
}

func (s *memUsers) Save(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *clone(u)
	return nil
}

func (s *memUsers) AdjustBalances(_ context.Context, id string, coins, gems int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Coins += coins
	u.Gems += gems
	s.users[id] = u
	return nil
}

func (s *memUsers) Search(_ context.Context, query string, limit int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	q := strings.ToLower(query)
	for _, id := range s.order {
		u := s.users[id]
		if strings.Contains(strings.ToLower(u.Username), q) {
			out = append(out, *clone(&u))
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type memInventories struct {
	mu          sync.Mutex
	inventories map[string]models.PlayerInventory
}

func (s *memInventories) Get(_ context.Context, userID string) (*models.PlayerInventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.inventories[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&inv), nil
}

func (s *memInventories) Save(_ context.Context, inv *models.PlayerInventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventories[inv.UserID] = *clone(inv)
	return nil
}

type memDaily struct {
	mu    sync.Mutex
	daily map[string]models.PlayerDailyRewards
}

func (s *memDaily) Get(_ context.Context, userID string) (*models.PlayerDailyRewards, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.daily[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&d), nil
}

func (s *memDaily) Save(_ context.Context, d *models.PlayerDailyRewards) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daily[d.UserID] = *clone(d)
	return nil
}

type memSeasons struct {
	mu      sync.Mutex
	seasons []models.SeasonPass
}

func (s *memSeasons) Current(_ context.Context) (*models.SeasonPass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.seasons) == 0 {
		return nil, ErrNotFound
	}
	best := s.seasons[0]
	for _, season := range s.seasons[1:] {
		if season.SeasonNumber > best.SeasonNumber {
			best = season
		}
	}
	return clone(&best), nil
}

func (s *memSeasons) Create(_ context.Context, season *models.SeasonPass) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seasons = append(s.seasons, *clone(season))
	return nil
}

type memPlayerSeasons struct {
	mu     sync.Mutex
	passes map[string]models.PlayerSeasonPass
}

func (s *memPlayerSeasons) Get(_ context.Context, userID, seasonID string) (*models.PlayerSeasonPass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.passes {
		if p.UserID == userID && p.SeasonID == seasonID {
			return clone(&p), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memPlayerSeasons) Create(_ context.Context, p *models.PlayerSeasonPass) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passes[p.ID] = *clone(p)
	return nil
}

func (s *memPlayerSeasons) Save(_ context.Context, p *models.PlayerSeasonPass) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passes[p.ID] = *clone(p)
	return nil
}

type memPurchases struct {
	mu        sync.Mutex
	purchases []models.Purchase
}

func (s *memPurchases) Create(_ context.Context, p *models.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchases = append(s.purchases, *clone(p))
	return nil
}

type memPlayerQuests struct {
	mu     sync.Mutex
	quests map[string]models.PlayerQuest
	order  []string
}

func (s *memPlayerQuests) Get(_ context.Context, id string) (*models.PlayerQuest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&q), nil
}

func (s *memPlayerQuests) list(match func(models.PlayerQuest) bool) []models.PlayerQuest {
	var out []models.PlayerQuest
	for _, id := range s.order {
		q := s.quests[id]
		if match(q) {
			out = append(out, *clone(&q))
		}
	}
	return out
}

func (s *memPlayerQuests) ListByPeriod(_ context.Context, userID string, t models.QuestType, periodKey string) ([]models.PlayerQuest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(q models.PlayerQuest) bool {
		return q.UserID == userID && q.Type == t && q.PeriodKey == periodKey
	}), nil
}

func (s *memPlayerQuests) ListByType(_ context.Context, userID string, t models.QuestType) ([]models.PlayerQuest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(q models.PlayerQuest) bool {
		return q.UserID == userID && q.Type == t
	}), nil
}

func (s *memPlayerQuests) ListActive(_ context.Context, userID string) ([]models.PlayerQuest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(q models.PlayerQuest) bool {
		return q.UserID == userID && q.Status == models.QuestActive
	}), nil
}

func (s *memPlayerQuests) Create(_ context.Context, q *models.PlayerQuest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quests[q.ID] = *clone(q)
	s.order = append(s.order, q.ID)
	return nil
}

func (s *memPlayerQuests) Save(_ context.Context, q *models.PlayerQuest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quests[q.ID] = *clone(q)
	return nil
}

type memGuilds struct {
	mu     sync.Mutex
	guilds map[string]models.Guild
}

func (s *memGuilds) Get(_ context.Context, id string) (*models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guilds[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&g), nil
}

func (s *memGuilds) GetByName(_ context.Context, name string) (*models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.guilds {
		if g.Name == name {
			return clone(&g), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memGuilds) GetByTag(_ context.Context, tag string) (*models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.guilds {
		if g.Tag == tag {
			return clone(&g), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memGuilds) Create(_ context.Context, g *models.Guild) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guilds[g.ID] = *clone(g)
	return nil
}

func (s *memGuilds) Save(_ context.Context, g *models.Guild) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guilds[g.ID] = *clone(g)
	return nil
}

func (s *memGuilds) Search(_ context.Context, query string, limit int) ([]models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	var out []models.Guild
	for _, g := range s.guilds {
		if strings.Contains(strings.ToLower(g.Name), q) || strings.Contains(strings.ToLower(g.Tag), q) {
			out = append(out, *clone(&g))
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *memGuilds) List(_ context.Context, limit int) ([]models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Guild
	for _, g := range s.guilds {
		out = append(out, *clone(&g))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level > out[j].Level
		}
		return out[i].Experience > out[j].Experience
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memGuilds) ResetWeeklyContributions(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, g := range s.guilds {
		g.WeeklyContribution = 0
		s.guilds[id] = g
	}
	return nil
}

type memGuildMembers struct {
	mu      sync.Mutex
	members map[string]models.GuildMember
	order   []string
}

func (s *memGuildMembers) Get(_ context.Context, guildID, userID string) (*models.GuildMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.GuildID == guildID && m.UserID == userID {
			return clone(&m), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memGuildMembers) GetByUser(_ context.Context, userID string) (*models.GuildMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.UserID == userID {
			return clone(&m), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memGuildMembers) ListByGuild(_ context.Context, guildID string) ([]models.GuildMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.GuildMember
	for _, id := range s.order {
		m, ok := s.members[id]
		if ok && m.GuildID == guildID {
			out = append(out, *clone(&m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ContributionPoints > out[j].ContributionPoints
	})
	return out, nil
}

func (s *memGuildMembers) Create(_ context.Context, m *models.GuildMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = *clone(m)
	s.order = append(s.order, m.ID)
	return nil
}

func (s *memGuildMembers) Save(_ context.Context, m *models.GuildMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = *clone(m)
	return nil
}

func (s *memGuildMembers) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, id)
	return nil
}

func (s *memGuildMembers) ResetWeeklyPoints(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, m := range s.members {
		m.WeeklyPoints = 0
		s.members[id] = m
	}
	return nil
}

type memGuildApplications struct {
	mu    sync.Mutex
	apps  map[string]models.GuildApplication
	order []string
}

func (s *memGuildApplications) Get(_ context.Context, id string) (*models.GuildApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&a), nil
}

func (s *memGuildApplications) FindPending(_ context.Context, guildID, userID string) (*models.GuildApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.GuildID == guildID && a.UserID == userID && a.Status == models.ApplicationPending {
			return clone(&a), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memGuildApplications) ListByGuild(_ context.Context, guildID string, status models.ApplicationStatus) ([]models.GuildApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.GuildApplication
	for _, id := range s.order {
		a, ok := s.apps[id]
		if ok && a.GuildID == guildID && a.Status == status {
			out = append(out, *clone(&a))
		}
	}
	return out, nil
}

func (s *memGuildApplications) Create(_ context.Context, a *models.GuildApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[a.ID] = *clone(a)
	s.order = append(s.order, a.ID)
	return nil
}

func (s *memGuildApplications) Save(_ context.Context, a *models.GuildApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[a.ID] = *clone(a)
	return nil
}

type memGuildChallenges struct {
	mu         sync.Mutex
	challenges map[string]models.GuildChallenge
	order      []string
}

func (s *memGuildChallenges) Get(_ context.Context, id string) (*models.GuildChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.challenges[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&c), nil
}

func (s *memGuildChallenges) ListForGuild(_ context.Context, guildID string) ([]models.GuildChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.GuildChallenge
	for _, id := range s.order {
		c, ok := s.challenges[id]
		if ok && (c.ChallengerID == guildID || c.DefenderID == guildID) {
			out = append(out, *clone(&c))
		}
	}
	return out, nil
}

func (s *memGuildChallenges) Create(_ context.Context, c *models.GuildChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[c.ID] = *clone(c)
	s.order = append(s.order, c.ID)
	return nil
}

func (s *memGuildChallenges) Save(_ context.Context, c *models.GuildChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[c.ID] = *clone(c)
	return nil
}

type memTournaments struct {
	mu          sync.Mutex
	tournaments map[string]models.Tournament
	order       []string
}

func (s *memTournaments) Get(_ context.Context, id string) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&t), nil
}

func (s *memTournaments) Create(_ context.Context, t *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[t.ID] = *clone(t)
	s.order = append(s.order, t.ID)
	return nil
}

func (s *memTournaments) Save(_ context.Context, t *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[t.ID] = *clone(t)
	return nil
}

func (s *memTournaments) ListByStatus(_ context.Context, status models.TournamentStatus) ([]models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Tournament
	for _, id := range s.order {
		t, ok := s.tournaments[id]
		if ok && t.Status == status {
			out = append(out, *clone(&t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndTime.Before(out[j].EndTime) })
	return out, nil
}

func (s *memTournaments) ExistsTypeSince(_ context.Context, tt models.TournamentType, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tournaments {
		if t.Type == tt && !t.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

type memTournamentEntries struct {
	mu      sync.Mutex
	entries map[string]models.TournamentEntry
	order   []string
}

func (s *memTournamentEntries) Get(_ context.Context, tournamentID, userID string) (*models.TournamentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.TournamentID == tournamentID && e.UserID == userID {
			return clone(&e), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memTournamentEntries) Create(_ context.Context, e *models.TournamentEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = *clone(e)
	s.order = append(s.order, e.ID)
	return nil
}

func (s *memTournamentEntries) ApplyScore(_ context.Context, id string, upd models.ScoreUpdate) (*models.TournamentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.Score += upd.Score
	e.FishCaught += upd.FishCaught
	e.PerfectCatches += upd.PerfectCatches
	if upd.BiggestFish > e.BiggestFish {
		e.BiggestFish = upd.BiggestFish
	}
	if upd.ComboMax > e.ComboMax {
		e.ComboMax = upd.ComboMax
	}
	s.entries[id] = e
	return clone(&e), nil
}

func (s *memTournamentEntries) ListByTournament(_ context.Context, tournamentID string) ([]models.TournamentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.TournamentEntry
	for _, id := range s.order {
		e, ok := s.entries[id]
		if ok && e.TournamentID == tournamentID {
			out = append(out, *clone(&e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].BiggestFish > out[j].BiggestFish
	})
	return out, nil
}

func (s *memTournamentEntries) CountScoreAbove(_ context.Context, tournamentID string, score int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, e := range s.entries {
		if e.TournamentID == tournamentID && e.Score > score {
			count++
		}
	}
	return count, nil
}

type memTournamentResults struct {
	mu      sync.Mutex
	results []models.TournamentResult
}

func (s *memTournamentResults) CreateBatch(_ context.Context, results []models.TournamentResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range results {
		s.results = append(s.results, *clone(&results[i]))
	}
	return nil
}

func (s *memTournamentResults) ListByTournament(_ context.Context, tournamentID string) ([]models.TournamentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.TournamentResult
	for i := range s.results {
		if s.results[i].TournamentID == tournamentID {
			out = append(out, *clone(&s.results[i]))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

type memFriendRequests struct {
	mu       sync.Mutex
	requests map[string]models.FriendRequest
	order    []string
}

func (s *memFriendRequests) Get(_ context.Context, id string) (*models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&r), nil
}

func (s *memFriendRequests) FindPendingBetween(_ context.Context, a, b string) (*models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.Status != models.RequestPending {
			continue
		}
		if (r.FromID == a && r.ToID == b) || (r.FromID == b && r.ToID == a) {
			return clone(&r), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memFriendRequests) ListIncoming(_ context.Context, userID string) ([]models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.FriendRequest
	for _, id := range s.order {
		r, ok := s.requests[id]
		if ok && r.ToID == userID && r.Status == models.RequestPending {
			out = append(out, *clone(&r))
		}
	}
	return out, nil
}

func (s *memFriendRequests) Create(_ context.Context, r *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.ID] = *clone(r)
	s.order = append(s.order, r.ID)
	return nil
}

func (s *memFriendRequests) Save(_ context.Context, r *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.ID] = *clone(r)
	return nil
}

type memFriendships struct {
	mu          sync.Mutex
	friendships map[string]models.Friendship
}

func (s *memFriendships) FindBetween(_ context.Context, a, b string) (*models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.friendships {
		if (f.User1ID == a && f.User2ID == b) || (f.User1ID == b && f.User2ID == a) {
			return clone(&f), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memFriendships) ListByUser(_ context.Context, userID string) ([]models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Friendship
	for _, f := range s.friendships {
		if f.User1ID == userID || f.User2ID == userID {
			out = append(out, *clone(&f))
		}
	}
	return out, nil
}

func (s *memFriendships) Create(_ context.Context, f *models.Friendship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.friendships[f.ID] = *clone(f)
	return nil
}

func (s *memFriendships) Save(_ context.Context, f *models.Friendship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.friendships[f.ID] = *clone(f)
	return nil
}

func (s *memFriendships) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.friendships, id)
	return nil
}

type memGifts struct {
	mu    sync.Mutex
	gifts map[string]models.Gift
	order []string
}

func (s *memGifts) Get(_ context.Context, id string) (*models.Gift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gifts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&g), nil
}

func (s *memGifts) ListPending(_ context.Context, toID string) ([]models.Gift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Gift
	for _, id := range s.order {
		g, ok := s.gifts[id]
		if ok && g.ToID == toID && g.Status == models.GiftPending {
			out = append(out, *clone(&g))
		}
	}
	return out, nil
}

func (s *memGifts) CountSentSince(_ context.Context, fromID string, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, g := range s.gifts {
		if g.FromID == fromID && !g.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *memGifts) ListOverdue(_ context.Context, now time.Time) ([]models.Gift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Gift
	for _, id := range s.order {
		g, ok := s.gifts[id]
		if ok && g.Status == models.GiftPending && g.ExpiresAt.Before(now) {
			out = append(out, *clone(&g))
		}
	}
	return out, nil
}

func (s *memGifts) Create(_ context.Context, g *models.Gift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gifts[g.ID] = *clone(g)
	s.order = append(s.order, g.ID)
	return nil
}

func (s *memGifts) Save(_ context.Context, g *models.Gift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gifts[g.ID] = *clone(g)
	return nil
}

type memNotifications struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func (s *memNotifications) Create(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, *clone(n))
	return nil
}

func (s *memNotifications) ListByUser(_ context.Context, userID string, limit int) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if s.notifications[i].UserID == userID {
			out = append(out, *clone(&s.notifications[i]))
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *memNotifications) MarkRead(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id && s.notifications[i].UserID == userID {
			s.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (s *memNotifications) MarkAllRead(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].UserID == userID {
			s.notifications[i].Read = true
		}
	}
	return nil
}

func (s *memNotifications) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
	return nil
}

type memActivities struct {
	mu         sync.Mutex
	activities map[string]models.Activity
	order      []string
}

func (s *memActivities) Get(_ context.Context, id string) (*models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&a), nil
}

func (s *memActivities) List(_ context.Context, limit int) ([]models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Activity
	for i := len(s.order) - 1; i >= 0; i-- {
		a := s.activities[s.order[i]]
		out = append(out, *clone(&a))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memActivities) Create(_ context.Context, a *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities[a.ID] = *clone(a)
	s.order = append(s.order, a.ID)
	return nil
}

func (s *memActivities) Save(_ context.Context, a *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities[a.ID] = *clone(a)
	return nil
}
