package services

import "fishing-game-backend/models"

// Quest template tables. Daily and weekly instances are sampled from these;
// story quests form a fixed unlock chain.

var dailyQuestTemplates = []models.QuestTemplate{
	{
		ID: "daily_morning_catch", Title: "Morning Catch", Description: "Catch 10 fish to start your day",
		Type:       models.QuestDaily,
		Objectives: []models.QuestObjective{{Type: "catch_fish", Target: 10}},
		Rewards:    []models.Reward{models.CoinReward(200), models.XPReward(50)},
	},
	{
		ID: "daily_big_game", Title: "Big Game Hunter", Description: "Catch a fish larger than 80cm",
		Type:       models.QuestDaily,
		Objectives: []models.QuestObjective{{Type: "catch_size", Target: 1, MinSize: 80}},
		Rewards:    []models.Reward{models.CoinReward(400), models.XPReward(100)},
	},
	{
		ID: "daily_perfect_angler", Title: "Perfect Angler", Description: "Get 5 perfect catches",
		Type:       models.QuestDaily,
		Objectives: []models.QuestObjective{{Type: "perfect_catch", Target: 5}},
		Rewards:    []models.Reward{models.CoinReward(350), models.XPReward(80), models.BaitReward("common_bait", 3)},
	},
	{
		ID: "daily_combo_master", Title: "Combo Master", Description: "Achieve a 10x combo",
		Type:       models.QuestDaily,
		Objectives: []models.QuestObjective{{Type: "combo", Target: 10}},
		Rewards:    []models.Reward{models.CoinReward(600), models.XPReward(150), models.GemReward(5)},
	},
	{
		ID: "daily_score_champion", Title: "Score Champion", Description: "Score 2000 points in a single session",
		Type:       models.QuestDaily,
		Objectives: []models.QuestObjective{{Type: "score", Target: 2000}},
		Rewards:    []models.Reward{models.CoinReward(500), models.XPReward(120)},
	},
	{
		ID: "daily_rare_hunter", Title: "Rare Hunter", Description: "Catch a rare fish",
		Type:       models.QuestDaily,
		Objectives: []models.QuestObjective{{Type: "catch_rarity", Target: 1, MinRarity: 2}},
		Rewards:    []models.Reward{models.CoinReward(750), models.XPReward(200), models.GemReward(10)},
	},
	{
		ID: "daily_deep_sea", Title: "Deep Sea Explorer", Description: "Catch fish in the Deep Ocean stage",
		Type:       models.QuestDaily,
		Objectives: []models.QuestObjective{{Type: "catch_stage", Target: 5, Stage: 2}},
		Rewards:    []models.Reward{models.CoinReward(450), models.XPReward(100)},
	},
	{
		ID: "daily_bass_master", Title: "Bass Master", Description: "Catch 3 Bass",
		Type:       models.QuestDaily,
		Objectives: []models.QuestObjective{{Type: "catch_type", Target: 3, FishType: "Bass"}},
		Rewards:    []models.Reward{models.CoinReward(400), models.XPReward(90)},
	},
}

var weeklyQuestTemplates = []models.QuestTemplate{
	{
		ID: "weekly_warrior", Title: "Weekly Warrior", Description: "Catch 100 fish this week",
		Type:       models.QuestWeekly,
		Objectives: []models.QuestObjective{{Type: "catch_fish", Target: 100}},
		Rewards:    []models.Reward{models.CoinReward(2000), models.XPReward(500), models.GemReward(25)},
	},
	{
		ID: "weekly_contender", Title: "Tournament Contender", Description: "Participate in 3 tournaments",
		Type:       models.QuestWeekly,
		Objectives: []models.QuestObjective{{Type: "tournament_join", Target: 3}},
		Rewards:    []models.Reward{models.CoinReward(1500), models.XPReward(400), models.ItemReward("lucky_ticket", 1)},
	},
	{
		ID: "weekly_social", Title: "Social Butterfly", Description: "Send 5 gifts to friends",
		Type:       models.QuestWeekly,
		Objectives: []models.QuestObjective{{Type: "send_gift", Target: 5}},
		Rewards:    []models.Reward{models.CoinReward(1000), models.XPReward(250)},
	},
	{
		ID: "weekly_legendary", Title: "Legendary Seeker", Description: "Catch a Golden Koi",
		Type:       models.QuestWeekly,
		Objectives: []models.QuestObjective{{Type: "catch_type", Target: 1, FishType: "Golden Koi"}},
		Rewards:    []models.Reward{models.CoinReward(5000), models.XPReward(1000), models.GemReward(100), models.ItemReward("exclusive_lure", 1)},
	},
	{
		ID: "weekly_perfect", Title: "Perfect Week", Description: "Get 50 perfect catches",
		Type:       models.QuestWeekly,
		Objectives: []models.QuestObjective{{Type: "perfect_catch", Target: 50}},
		Rewards:    []models.Reward{models.CoinReward(3000), models.XPReward(750), models.GemReward(50)},
	},
}

var storyQuests = []models.QuestTemplate{
	{
		ID: "story_1", Title: "First Steps", Description: "Learn the basics of fishing",
		Type: models.QuestStory, Chapter: 1,
		Objectives: []models.QuestObjective{{Type: "catch_fish", Target: 5}},
		Rewards:    []models.Reward{models.CoinReward(500), models.XPReward(100)},
	},
	{
		ID: "story_2", Title: "The Perfect Cast", Description: "Master the art of perfect catches",
		Type: models.QuestStory, Chapter: 1, Requires: "story_1",
		Objectives: []models.QuestObjective{{Type: "perfect_catch", Target: 3}},
		Rewards:    []models.Reward{models.CoinReward(750), models.XPReward(150), models.ItemReward("lure_spoon", 1)},
	},
	{
		ID: "story_3", Title: "Sunset Waters", Description: "Explore the Sunset River",
		Type: models.QuestStory, Chapter: 2, Requires: "story_2",
		Objectives: []models.QuestObjective{{Type: "catch_stage", Target: 10, Stage: 1}},
		Rewards:    []models.Reward{models.CoinReward(1000), models.XPReward(200)},
	},
	{
		ID: "story_4", Title: "Into the Deep", Description: "Brave the Deep Ocean at night",
		Type: models.QuestStory, Chapter: 3, Requires: "story_3",
		Objectives: []models.QuestObjective{
			{Type: "catch_stage", Target: 15, Stage: 2},
			{Type: "catch_type", Target: 2, FishType: "Catfish"},
		},
		Rewards: []models.Reward{models.CoinReward(1500), models.XPReward(300), models.ItemReward("rod_carbon", 1)},
	},
	{
		ID: "story_5", Title: "Storm Chaser", Description: "Fish in the stormy seas",
		Type: models.QuestStory, Chapter: 4, Requires: "story_4",
		Objectives: []models.QuestObjective{
			{Type: "catch_stage", Target: 20, Stage: 3},
			{Type: "catch_rarity", Target: 5, MinRarity: 2},
		},
		Rewards: []models.Reward{models.CoinReward(2500), models.XPReward(500), models.GemReward(50)},
	},
	{
		ID: "story_6", Title: "The Golden Legend", Description: "Catch the legendary Golden Koi",
		Type: models.QuestStory, Chapter: 5, Requires: "story_5",
		Objectives: []models.QuestObjective{{Type: "catch_type", Target: 1, FishType: "Golden Koi"}},
		Rewards:    []models.Reward{models.CoinReward(10000), models.XPReward(2000), models.GemReward(200), models.ItemReward("title_legend", 1)},
	},
}

var achievements = []models.Achievement{
	{ID: "first_catch", Title: "First Catch", Counter: "total_catches", Threshold: 1, Rewards: []models.Reward{models.XPReward(50), models.GemReward(5)}},
	{ID: "catch_100", Title: "Century Fisher", Counter: "total_catches", Threshold: 100, Rewards: []models.Reward{models.XPReward(200), models.GemReward(20)}},
	{ID: "catch_1000", Title: "Master Angler", Counter: "total_catches", Threshold: 1000, Rewards: []models.Reward{models.XPReward(1000), models.GemReward(100)}},
	{ID: "catch_10000", Title: "Fishing God", Counter: "total_catches", Threshold: 10000, Rewards: []models.Reward{models.XPReward(5000), models.GemReward(500)}},
	{ID: "level_10", Title: "Rising Star", Counter: "level", Threshold: 10, Rewards: []models.Reward{models.XPReward(100), models.GemReward(10)}},
	{ID: "level_50", Title: "Pro Angler", Counter: "level", Threshold: 50, Rewards: []models.Reward{models.XPReward(500), models.GemReward(50)}},
	{ID: "level_100", Title: "Fishing Legend", Counter: "level", Threshold: 100, Rewards: []models.Reward{models.XPReward(2000), models.GemReward(200)}},
}
